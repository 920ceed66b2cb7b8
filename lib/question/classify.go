package question

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// The rendered page and the two API generations disagree about type
// classification more often than they agree for free-text questions.
// Classification is therefore an explicit ordered rule chain, first
// match wins, preferring fill-blank on ambiguity: failing to fill a
// blank is recoverable, rendering a choice question with no choices is
// not.

// ClassifyInput carries every signal available before the answer
// endpoint has been consulted.
type ClassifyInput struct {
	Declared  TypeCode
	TitleHTML string
	Choices   []Choice
}

type fillBlankRule struct {
	name    string
	applies func(in ClassifyInput) bool
}

var fillBlankRules = []fillBlankRule{
	{
		name: "declared fill-blank",
		applies: func(in ClassifyInput) bool {
			return in.Declared == TypeFillBlank
		},
	},
	{
		// a question with nothing selectable cannot be a choice
		// question, whatever its declared code says
		name: "no selectable choices",
		applies: func(in ClassifyInput) bool {
			return len(in.Choices) == 0
		},
	},
	{
		name: "blank markers in title",
		applies: func(in ClassifyInput) bool {
			return LooksLikeFillBlank(in.TitleHTML)
		},
	},
}

// Classify reconciles the declared type code with the title markup and
// the observed choices.
func Classify(declared TypeCode, titleHTML string, choices []Choice) TypeCode {
	in := ClassifyInput{Declared: declared, TitleHTML: titleHTML, Choices: choices}
	for _, rule := range fillBlankRules {
		if rule.applies(in) {
			return TypeFillBlank
		}
	}
	return declared
}

// Reconcile applies the type code reported by the answer endpoint on
// top of a locally classified one. The answer endpoint is the most
// authoritative source once available: a positive code from it wins
// unconditionally.
func Reconcile(base, fromAnswer TypeCode) TypeCode {
	if fromAnswer > 0 {
		return fromAnswer
	}
	return base
}

var (
	underscoreRun        = regexp.MustCompile(`_{3,}`)
	emptyParens          = regexp.MustCompile(`\(\s*\)`)
	emptyFullWidthParens = regexp.MustCompile(`（\s*）`)
	inputElement         = regexp.MustCompile(`<input[^>]*>`)
)

var blankClassTokens = []string{"blank-input", "input-wrapper", "blankquestion"}

// LooksLikeFillBlank reports whether an html fragment carries
// blank-input signals: input elements, known blank wrapper class
// tokens, underscore runs, or empty (full-width) parenthesis pairs.
func LooksLikeFillBlank(html string) bool {
	if html == "" {
		return false
	}
	lower := strings.ToLower(html)
	for _, token := range blankClassTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	if inputElement.MatchString(lower) {
		return true
	}
	return underscoreRun.MatchString(html) ||
		emptyParens.MatchString(html) ||
		emptyFullWidthParens.MatchString(html)
}

var classTypeCode = regexp.MustCompile(`question-type-(\d+)`)

// TypeFromClassAttr digs a numeric type code out of CSS class tokens
// like "question-type-4", checking the node itself and its title
// child.
func TypeFromClassAttr(sel *goquery.Selection) TypeCode {
	if sel == nil {
		return TypeUnknown
	}
	candidates := []*goquery.Selection{sel, sel.Find(".question-title-html").First()}
	for _, c := range candidates {
		class, exists := c.Attr("class")
		if !exists {
			continue
		}
		groups := classTypeCode.FindStringSubmatch(class)
		if len(groups) < 2 {
			continue
		}
		code := 0
		for _, d := range groups[1] {
			code = code*10 + int(d-'0')
		}
		if code > 0 {
			return TypeCode(code)
		}
	}
	return TypeUnknown
}

// HasBlankInputs reports whether a rendered question node contains
// blank-input elements, inspecting both dedicated input markup and the
// raw html of the title area.
func HasBlankInputs(sel *goquery.Selection) bool {
	if sel == nil {
		return false
	}
	if sel.Find(".blank-input, .input-wrapper input, input[type='text']").Length() > 0 {
		return true
	}
	if sel.Find("input").Length() > 0 {
		return true
	}

	scopes := []*goquery.Selection{sel}
	if title := sel.Find(".question-title-html"); title.Length() > 0 {
		scopes = append(scopes, title)
	}
	sel.Find(".fill-blank").Each(func(_ int, blank *goquery.Selection) {
		scopes = append(scopes, blank)
	})

	for _, scope := range scopes {
		html, err := scope.Html()
		if err != nil {
			continue
		}
		if LooksLikeFillBlank(html) {
			return true
		}
	}
	return false
}

// DetectDOMType classifies a rendered question node when no API data
// backs it: blank inputs first, then the displayed type label, then an
// embedded class-token code, else unknown.
func DetectDOMType(sel *goquery.Selection, typeLabel string) TypeCode {
	if HasBlankInputs(sel) {
		return TypeFillBlank
	}
	if code := TypeFromLabel(typeLabel); code != TypeUnknown {
		return code
	}
	return TypeFromClassAttr(sel)
}
