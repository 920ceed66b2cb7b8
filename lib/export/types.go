// Package export defines the serializable course tree and its three
// output formats: human-readable markdown, a generic JSON document,
// and a flashcard bank.
package export

import (
	"time"

	"ulearning-export/lib/question"
)

// Question is one fully resolved question record.
type Question struct {
	ID            string            `json:"question_id"`
	Type          question.TypeCode `json:"question_type"`
	TypeName      string            `json:"question_type_name"`
	Title         string            `json:"title"`
	RenderedTitle string            `json:"rendered_title"`
	Options       []question.Choice `json:"options"`
	Answer        string            `json:"answer"`
	AnswerList    []string          `json:"answer_list"`
	IsFillBlank   bool              `json:"is_fill_question"`
}

// Unit is a question-bearing page group inside a chapter.
type Unit struct {
	ID        string     `json:"unit_id"`
	Title     string     `json:"unit_title"`
	Note      string     `json:"note,omitempty"`
	Questions []Question `json:"questions"`
}

// Chapter keeps its units plus a note when its content could not be
// retrieved.
type Chapter struct {
	ID    string `json:"chapter_id"`
	Title string `json:"chapter_title"`
	Note  string `json:"note,omitempty"`
	Units []Unit `json:"units"`
}

// Course is the root of a bulk export.
type Course struct {
	CourseID       string    `json:"course_id"`
	CourseName     string    `json:"course_name"`
	ExportTime     time.Time `json:"export_time"`
	Chapters       []Chapter `json:"chapters"`
	TotalQuestions int       `json:"total_questions"`
}

// Page is one visited page of an interactive export.
type Page struct {
	ID        string     `json:"page_id"`
	Title     string     `json:"page_title"`
	Questions []Question `json:"questions"`
}

// CountQuestions tallies the questions across the whole tree.
func (c Course) CountQuestions() int {
	total := 0
	for _, chapter := range c.Chapters {
		for _, unit := range chapter.Units {
			total += len(unit.Questions)
		}
	}
	return total
}
