package export

import (
	"encoding/json"
	"fmt"
)

// CourseJSON encodes the whole course tree, indented for human
// inspection.
func CourseJSON(course Course) ([]byte, error) {
	data, err := json.MarshalIndent(course, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode course json: %w", err)
	}
	return data, nil
}

// DecodeCourse is the inverse of CourseJSON.
func DecodeCourse(data []byte) (Course, error) {
	var course Course
	if err := json.Unmarshal(data, &course); err != nil {
		return Course{}, fmt.Errorf("decode course json: %w", err)
	}
	return course, nil
}

// PageDocument is the JSON root of an interactive export.
type PageDocument struct {
	CourseName     string `json:"course_name"`
	ExportTime     string `json:"export_time"`
	Pages          []Page `json:"pages"`
	TotalQuestions int    `json:"total_questions"`
}

// PagesJSON encodes an interactive export.
func PagesJSON(doc PageDocument) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode pages json: %w", err)
	}
	return data, nil
}
