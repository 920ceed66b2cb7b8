package htmlutil

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CollapseSpace replaces non-breaking spaces with regular ones, folds
// runs of whitespace into a single space and trims the ends.
func CollapseSpace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	var out strings.Builder
	out.Grow(len(s))
	space := false
	for _, c := range s {
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			space = true
			continue
		}
		if space && out.Len() > 0 {
			out.WriteByte(' ')
		}
		space = false
		out.WriteRune(c)
	}
	return out.String()
}

// ToPlainText extracts the visible text of an html fragment. Malformed
// markup is tolerated, empty input yields an empty string, and the
// function is idempotent over its own output.
func ToPlainText(fragment string) string {
	if fragment == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return CollapseSpace(fragment)
	}
	return CollapseSpace(doc.Text())
}

// SelectionText is ToPlainText over an already-parsed selection.
func SelectionText(sel *goquery.Selection) string {
	if sel == nil {
		return ""
	}
	return CollapseSpace(sel.Text())
}
