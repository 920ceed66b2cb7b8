// Package page reads the platform's rendered course player DOM. It
// backs the interactive export mode, where no API payloads exist and
// everything must be recovered from markup.
package page

import (
	"regexp"
	"strings"

	"ulearning-export/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// UntitledPage names pages whose navigation entry carries no text.
const UntitledPage = "未命名页面"

// NextPageSelector matches the player's next-page control when it is
// clickable.
const NextPageSelector = ".next-page-btn.cursor"

var pageIDPrefix = regexp.MustCompile(`(?i)^page`)

func activeEntry(doc *goquery.Document) *goquery.Selection {
	return doc.Find(".page-name.active").First()
}

// ActivePageID identifies the currently shown page: the id of the
// enclosing list item, else a data-id attribute, else the entry text.
func ActivePageID(doc *goquery.Document) string {
	active := activeEntry(doc)
	if active.Length() == 0 {
		return ""
	}
	if li := active.Closest("li[id]"); li.Length() > 0 {
		if id, ok := li.Attr("id"); ok && id != "" {
			return id
		}
	}
	if id, ok := active.Attr("data-id"); ok && id != "" {
		return id
	}
	return strings.TrimSpace(active.Text())
}

// ActivePageTitle returns the visible title of the current page.
func ActivePageTitle(doc *goquery.Document) string {
	active := activeEntry(doc)
	if active.Length() == 0 {
		return UntitledPage
	}
	if title := htmlutil.CollapseSpace(active.Text()); title != "" {
		return title
	}
	return UntitledPage
}

// ActiveParentID derives the answer-endpoint parent id from the active
// page's list-item id, which carries a "page" prefix in the markup.
func ActiveParentID(doc *goquery.Document) string {
	active := activeEntry(doc)
	if active.Length() == 0 {
		return ""
	}
	li := active.Closest("li[id]")
	if li.Length() == 0 {
		return ""
	}
	id, _ := li.Attr("id")
	return pageIDPrefix.ReplaceAllString(id, "")
}

// CourseName reads the displayed course title, falling back to the
// document title.
func CourseName(doc *goquery.Document) string {
	for _, selector := range []string{".course-title", ".course-name", ".class-name"} {
		if text := htmlutil.CollapseSpace(doc.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	if text := htmlutil.CollapseSpace(doc.Find("title").First().Text()); text != "" {
		return text
	}
	return "课件"
}

// CanAdvance reports whether the next-page control exists and is not
// disabled.
func CanAdvance(doc *goquery.Document) bool {
	control := doc.Find(NextPageSelector).First()
	if control.Length() == 0 {
		return false
	}
	if control.HasClass("disabled") {
		return false
	}
	if _, disabled := control.Attr("disabled"); disabled {
		return false
	}
	if aria, _ := control.Attr("aria-disabled"); aria == "true" {
		return false
	}
	return true
}

// OverlayDismissSelector finds the dismiss control of an open modal
// overlay, most specific candidate first. The player interrupts
// navigation with stat and alert dialogs that must be closed before
// the next-page control works.
func OverlayDismissSelector(doc *goquery.Document) (string, bool) {
	modal := doc.Find(".modal.fade.in").First()
	if modal.Length() == 0 {
		return "", false
	}

	id, _ := modal.Attr("id")
	var candidates []string
	switch id {
	case "statModal":
		candidates = []string{"#statModal .btn-hollow"}
	case "alertModal":
		candidates = []string{"#alertModal .btn-hollow", "#alertModal .btn-submit"}
	}
	for _, candidate := range candidates {
		if doc.Find(candidate).Length() > 0 {
			return candidate, true
		}
	}

	for _, button := range []string{".btn-hollow", ".btn-submit", ".close", "[data-dismiss='modal']"} {
		if modal.Find(button).Length() > 0 {
			return ".modal.fade.in " + button, true
		}
	}
	return "", false
}
