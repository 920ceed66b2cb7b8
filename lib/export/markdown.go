package export

import (
	"fmt"
	"strings"
)

func writeQuestionMarkdown(b *strings.Builder, heading string, n int, q Question) {
	fmt.Fprintf(b, "%s %d. (%s) QID: %s\n", heading, n, q.TypeName, orDash(q.ID))
	fmt.Fprintf(b, "**题干:**\n%s\n\n", q.RenderedTitle)

	if !q.IsFillBlank && len(q.Options) > 0 {
		b.WriteString("**选项:**\n")
		for _, option := range q.Options {
			fmt.Fprintf(b, "- %s. %s\n", option.Label, orEmpty(option.Text))
		}
		b.WriteString("\n")
	}

	answer := q.Answer
	if answer == "" {
		answer = "未获取到"
	}
	fmt.Fprintf(b, "**正确答案:**\n%s\n---\n\n", answer)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func orEmpty(s string) string {
	if s == "" {
		return "(无内容)"
	}
	return s
}

// CourseMarkdown renders a bulk export as a markdown document.
// Question numbering runs through the whole course.
func CourseMarkdown(course Course) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s - 课件题目\n\n", course.CourseName)

	counter := 0
	for _, chapter := range course.Chapters {
		fmt.Fprintf(&b, "## %s\n\n", chapter.Title)
		if chapter.Note != "" {
			fmt.Fprintf(&b, "> %s\n\n", chapter.Note)
		}
		for _, unit := range chapter.Units {
			fmt.Fprintf(&b, "### %s\n\n", unit.Title)
			if unit.Note != "" {
				fmt.Fprintf(&b, "> %s\n\n", unit.Note)
			}
			for _, q := range unit.Questions {
				counter++
				writeQuestionMarkdown(&b, "####", counter, q)
			}
		}
	}

	if counter == 0 {
		b.WriteString("未找到练习题\n\n")
	}
	return b.String()
}

// PagesMarkdown renders an interactive export, grouped by visited
// page.
func PagesMarkdown(courseName string, exportTime string, pages []Page) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s - 自动导出题目\n\n", courseName)
	fmt.Fprintf(&b, "导出时间: %s\n\n", exportTime)

	counter := 0
	for _, p := range pages {
		title := p.Title
		if title == "" {
			title = "未命名页面"
		}
		fmt.Fprintf(&b, "## %s\n\n", title)
		for _, q := range p.Questions {
			counter++
			writeQuestionMarkdown(&b, "###", counter, q)
		}
	}
	return b.String()
}
