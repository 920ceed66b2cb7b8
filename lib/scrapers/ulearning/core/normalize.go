package core

import (
	"encoding/json"
	"fmt"

	"ulearning-export/lib/htmlutil"
)

// NormalizeDirectory reduces any course-directory payload generation to
// the canonical Directory. A node missing its id or its title keeps its
// place so document ordering survives; only nodes with neither are
// dropped.
func NormalizeDirectory(data json.RawMessage) (Directory, error) {
	var raw RawDirectory
	if err := json.Unmarshal(data, &raw); err != nil {
		return Directory{}, fmt.Errorf("decode course directory: %w", err)
	}

	nodes := raw.Chapters
	if len(nodes) == 0 {
		nodes = raw.Items
	}

	dir := Directory{
		CourseName: firstString(raw.CourseName, raw.CourseNameAlt),
	}
	for _, node := range nodes {
		id := firstID(node.NodeID, node.NodeIDAlt, node.LegacyID)
		title := htmlutil.CollapseSpace(firstString(node.NodeTitle, node.Title))
		if id == "" && title == "" {
			continue
		}
		dir.Chapters = append(dir.Chapters, Chapter{ID: id.String(), Title: title})
	}
	return dir, nil
}

// NormalizeChapterContent reduces any chapter-content payload
// generation to a flat list of items, each carrying its units in the
// order the platform delivers them.
func NormalizeChapterContent(data json.RawMessage) ([]Item, error) {
	var raw RawChapterContent
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode chapter content: %w", err)
	}

	if len(raw.WholepageItems) > 0 {
		items := make([]Item, 0, len(raw.WholepageItems))
		for _, wpItem := range raw.WholepageItems {
			item := Item{}
			for _, wp := range wpItem.Wholepages {
				item.Units = append(item.Units, Unit{
					ContentType: wp.ContentType,
					ID:          wp.ID.String(),
					Title:       htmlutil.ToPlainText(wp.Content),
					Pages:       wp.Coursepages,
				})
			}
			items = append(items, item)
		}
		return items, nil
	}

	if len(raw.Items) > 0 {
		items := make([]Item, 0, len(raw.Items))
		for _, contentItem := range raw.Items {
			items = append(items, Item{Units: pagesToUnits(contentItem.Coursepages)})
		}
		return items, nil
	}

	if len(raw.Coursepages) > 0 {
		return []Item{{Units: pagesToUnits(raw.Coursepages)}}, nil
	}
	return nil, nil
}

// pagesToUnits lifts top-level coursepages into units. Older payloads
// skip the wholepage layer and attach question groups directly, so each
// page doubles as a unit holding itself.
func pagesToUnits(pages []RawCoursepage) []Unit {
	units := make([]Unit, 0, len(pages))
	for _, page := range pages {
		unit := Unit{
			ContentType: page.ContentType,
			ID:          firstID(page.ID, page.RelationID).String(),
			Title:       htmlutil.CollapseSpace(page.Title),
		}
		switch {
		case len(page.Coursepages) > 0:
			unit.Pages = page.Coursepages
		case len(page.Children) > 0:
			unit.Pages = page.Children
		default:
			unit.Pages = []RawCoursepage{page}
		}
		units = append(units, unit)
	}
	return units
}

// NormalizeQuestions flattens a question group into its questions,
// recursing through whichever nesting field this payload generation
// uses. Order is preserved.
func NormalizeQuestions(page RawCoursepage) []RawQuestion {
	var out []RawQuestion
	collectQuestions(page, &out)
	return out
}

func collectQuestions(page RawCoursepage, out *[]RawQuestion) {
	*out = append(*out, page.QuestionDTOs...)
	*out = append(*out, page.PlainQuestions...)
	for _, child := range page.Children {
		collectQuestions(child, out)
	}
	for _, child := range page.Coursepages {
		collectQuestions(child, out)
	}
}
