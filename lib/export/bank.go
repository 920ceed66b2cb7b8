package export

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"ulearning-export/lib/question"
)

// BankEntry is one flashcard in the question-bank format. Field names
// are the Chinese keys the downstream drill tools expect.
type BankEntry struct {
	Category string   `json:"题型"`
	Title    string   `json:"题干"`
	Options  []string `json:"选项,omitempty"`
	Answer   string   `json:"答案"`
	Analysis string   `json:"解析"`
}

func isChoice(q Question) bool {
	if q.IsFillBlank {
		return false
	}
	switch q.Type {
	case question.TypeSingleChoice, question.TypeMultipleChoice, question.TypeIndefiniteChoice:
		return true
	}
	return false
}

func isBlank(q Question) bool {
	return q.IsFillBlank || q.Type == question.TypeFillBlank || q.Type == question.TypeWordFill
}

var nonLetters = regexp.MustCompile(`[^A-Za-z]`)

// collapseChoiceAnswer reduces answers like "B | D" to the bare letter
// sequence "BD".
func collapseChoiceAnswer(raw string) string {
	collapsed := strings.ToUpper(nonLetters.ReplaceAllString(raw, ""))
	if collapsed == "" {
		return raw
	}
	return collapsed
}

var (
	judgeTrue  = regexp.MustCompile(`(?i)^(T|对|正确)`)
	judgeFalse = regexp.MustCompile(`(?i)^(F|错|错误)`)
)

func normalizeJudgeAnswer(raw string) string {
	switch {
	case judgeTrue.MatchString(raw):
		return "正确"
	case judgeFalse.MatchString(raw):
		return "错误"
	}
	return raw
}

var blankSeparators = regexp.MustCompile(`[\|；;，,]+`)

func blankParts(q Question) []string {
	if len(q.AnswerList) > 0 {
		return q.AnswerList
	}
	var parts []string
	for _, part := range blankSeparators.Split(q.Answer, -1) {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

func bankEntry(q Question) (BankEntry, bool) {
	title := q.RenderedTitle
	if title == "" {
		title = q.Title
	}
	answer := strings.TrimSpace(q.Answer)

	switch {
	case isChoice(q):
		options := make([]string, len(q.Options))
		for i, option := range q.Options {
			options[i] = option.Text
		}
		return BankEntry{
			Category: "选择题",
			Title:    title,
			Options:  options,
			Answer:   collapseChoiceAnswer(answer),
		}, true

	case q.Type == question.TypeJudgment:
		return BankEntry{
			Category: "判断题",
			Title:    title,
			Answer:   normalizeJudgeAnswer(answer),
		}, true

	case isBlank(q):
		parts := blankParts(q)
		var braces strings.Builder
		for _, part := range parts {
			braces.WriteString("{" + part + "}")
		}
		joined := strings.Join(parts, " | ")
		if joined == "" {
			joined = answer
		}
		return BankEntry{
			Category: "填空题",
			Title:    title + braces.String(),
			Answer:   joined,
		}, true

	case q.Type == question.TypeShortAnswer:
		return BankEntry{
			Category: "问答题",
			Title:    title,
			Answer:   answer,
		}, true
	}
	return BankEntry{}, false
}

// CourseBank flattens a course tree into the flashcard list. Question
// categories outside the four bank shapes are skipped.
func CourseBank(course Course) []BankEntry {
	entries := []BankEntry{}
	for _, chapter := range course.Chapters {
		for _, unit := range chapter.Units {
			for _, q := range unit.Questions {
				if entry, ok := bankEntry(q); ok {
					entries = append(entries, entry)
				}
			}
		}
	}
	return entries
}

// PagesBank flattens an interactive export into the flashcard list.
func PagesBank(pages []Page) []BankEntry {
	entries := []BankEntry{}
	for _, p := range pages {
		for _, q := range p.Questions {
			if entry, ok := bankEntry(q); ok {
				entries = append(entries, entry)
			}
		}
	}
	return entries
}

// BankJSON encodes the flashcard list.
func BankJSON(entries []BankEntry) ([]byte, error) {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode bank json: %w", err)
	}
	return data, nil
}
