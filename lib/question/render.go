package question

import (
	"strings"

	"ulearning-export/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// MissingTitle marks questions whose title markup produced no text.
const MissingTitle = "(题干缺失)"

func braceToken(answer string) string {
	if answer == "" {
		return "{___}"
	}
	return "{" + answer + "}"
}

func braceTokens(answers []string) string {
	tokens := make([]string, len(answers))
	for i, answer := range answers {
		tokens[i] = braceToken(answer)
	}
	return strings.Join(tokens, " ")
}

// RenderTitle produces the final display text of a question title.
// Fill-blank questions get their answers interpolated into the blank
// positions; everything else renders as plain text.
func RenderTitle(titleHTML string, code TypeCode, answers []string) string {
	if code == TypeFillBlank {
		return RenderFillTitle(titleHTML, answers)
	}
	text := htmlutil.ToPlainText(titleHTML)
	if text == "" {
		return MissingTitle
	}
	return text
}

// RenderFillTitle substitutes the i-th blank placeholder in the title
// markup with the i-th answer, brace-wrapped ({answer}, or {___} when
// no answer exists for that position). Surplus answers are appended
// after the text so no answer value is ever dropped.
func RenderFillTitle(titleHTML string, answers []string) string {
	if titleHTML == "" {
		if len(answers) == 0 {
			return ""
		}
		return braceTokens(answers)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(titleHTML))
	if err != nil {
		return htmlutil.ToPlainText(titleHTML)
	}

	blanks := doc.Find("span.input-wrapper, input")
	blanks.Each(func(i int, blank *goquery.Selection) {
		answer := ""
		if i < len(answers) {
			answer = answers[i]
		}
		blank.ReplaceWithNodes(&html.Node{
			Type: html.TextNode,
			Data: braceToken(answer),
		})
	})

	text := htmlutil.SelectionText(doc.Selection)
	count := blanks.Length()

	if count == 0 && len(answers) > 0 {
		return strings.TrimSpace(text + " " + braceTokens(answers))
	}
	if len(answers) > count {
		return strings.TrimSpace(text + " " + braceTokens(answers[count:]))
	}
	return text
}
