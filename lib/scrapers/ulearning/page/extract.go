package page

import (
	"regexp"
	"strings"

	"ulearning-export/lib/htmlutil"
	"ulearning-export/lib/question"
	"ulearning-export/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// Question is one question recovered from rendered markup.
type Question struct {
	ID       string
	TypeCode question.TypeCode
	TypeName string
	Title    string
	Choices  []question.Choice
}

// questionSelectors in preference order; the first selector that
// matches anything defines the question set for the page.
var questionSelectors = []string{
	".question-element-node",
	".question-item",
	".question-area .question-wrapper",
}

var questionIDPrefix = regexp.MustCompile(`(?i)^question`)

// ExtractQuestions recovers the questions of the current page,
// deduplicated by question id in document order. Nodes without a
// recoverable id are dropped.
func ExtractQuestions(doc *goquery.Document) []Question {
	var nodes *goquery.Selection
	for _, selector := range questionSelectors {
		if found := doc.Find(selector); found.Length() > 0 {
			nodes = found
			break
		}
	}
	if nodes == nil {
		return nil
	}

	var questions []Question
	seen := make(map[string]bool)
	nodes.Each(func(_ int, node *goquery.Selection) {
		extracted, ok := extractQuestion(node)
		if !ok || seen[extracted.ID] {
			return
		}
		seen[extracted.ID] = true
		questions = append(questions, extracted)
	})
	return questions
}

func questionWrapper(node *goquery.Selection) *goquery.Selection {
	if node.HasClass("question-wrapper") {
		return node
	}
	if wrapper := node.Closest(".question-wrapper"); wrapper.Length() > 0 {
		return wrapper
	}
	return node.Find(".question-wrapper").First()
}

func questionID(node, wrapper *goquery.Selection) string {
	if wrapper.Length() == 0 {
		if value, ok := node.Find("input[name='questionId']").First().Attr("value"); ok && value != "" {
			return value
		}
		id, _ := node.Attr("data-question-id")
		return id
	}
	if id, ok := wrapper.Attr("id"); ok && id != "" {
		return questionIDPrefix.ReplaceAllString(id, "")
	}
	id, _ := wrapper.Attr("data-id")
	return id
}

func extractQuestion(node *goquery.Selection) (Question, bool) {
	wrapper := questionWrapper(node)

	id := questionID(node, wrapper)
	if id == "" {
		return Question{}, false
	}

	typeLabelRaw := strings.Join(strings.Fields(htmlutil.SelectionText(node.Find(".question-type-tag, .gray").First())), "")
	typeLabel := textutil.NormalizeTypeLabel(typeLabelRaw)

	titleHTML := questionTitleHTML(node)
	title := htmlutil.ToPlainText(titleHTML)
	if title == "" {
		title = question.MissingTitle
	}

	scope := wrapper
	if scope.Length() == 0 {
		scope = node
	}
	code := question.DetectDOMType(scope, typeLabel)

	name, known := question.LookupName(code)
	if !known {
		name = typeLabelRaw
	}
	if name == "" {
		name = "未知题型"
	}

	return Question{
		ID:       id,
		TypeCode: code,
		TypeName: name,
		Title:    title,
		Choices:  extractChoices(node),
	}, true
}

var titleSelectors = []string{
	".question-title",
	".richtext-container.question-title",
	".question-body",
	".title",
}

func questionTitleHTML(node *goquery.Selection) string {
	for _, selector := range titleSelectors {
		if found := node.Find(selector).First(); found.Length() > 0 {
			if html, err := found.Html(); err == nil {
				return html
			}
		}
	}
	html, err := node.Html()
	if err != nil {
		return ""
	}
	return html
}

var choiceSelectors = []string{
	".choice-list li",
	".choice-item",
	".options li",
	".question-option",
	".option-item",
	"li.option",
	".ul-radio li",
	"label",
}

// extractChoices walks the choice selectors in preference order; the
// first selector yielding any usable item wins. Items are deduplicated
// by a prefix of their text since option markup frequently repeats
// nodes for styling.
func extractChoices(node *goquery.Selection) []question.Choice {
	for _, selector := range choiceSelectors {
		items := node.Find(selector)
		if items.Length() == 0 {
			continue
		}

		var choices []question.Choice
		seen := make(map[string]bool)
		items.Each(func(_ int, item *goquery.Selection) {
			text := htmlutil.SelectionText(item)
			if text == "" {
				return
			}
			signature := text
			if runes := []rune(signature); len(runes) > 120 {
				signature = string(runes[:120])
			}
			if seen[signature] {
				return
			}
			seen[signature] = true

			label := htmlutil.CollapseSpace(item.Find(".option-prefix").First().Text())
			if label == "" {
				label, _ = item.Attr("data-option")
				label = htmlutil.CollapseSpace(label)
			}
			if label == "" {
				label = string(rune('A' + len(choices)))
			}
			choices = append(choices, question.Choice{Label: label, Text: text})
		})
		if len(choices) > 0 {
			return choices
		}
	}
	return nil
}
