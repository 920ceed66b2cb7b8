package core

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ID tolerates the platform's habit of serializing identifiers as
// either JSON numbers or strings depending on the API generation.
type ID string

func (id *ID) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*id = ""
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

func firstID(ids ...ID) ID {
	for _, id := range ids {
		if id != "" {
			return id
		}
	}
	return ""
}

func firstString(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// Response is the canonical envelope every endpoint variant reduces
// to.
type Response struct {
	Success bool
	Message string
	Data    json.RawMessage
}

// RawDirectory decodes every known course-directory response shape at
// once; NormalizeDirectory picks whichever fields are populated.
type RawDirectory struct {
	CourseName    string         `json:"coursename"`
	CourseNameAlt string         `json:"courseName"`
	Chapters      []RawDirectoryNode `json:"chapters"`
	Items         []RawDirectoryNode `json:"items"`
}

type RawDirectoryNode struct {
	NodeTitle string `json:"nodetitle"`
	Title     string `json:"title"`
	NodeID    ID     `json:"nodeid"`
	NodeIDAlt ID     `json:"nodeId"`
	LegacyID  ID     `json:"id"`
}

// Directory is the canonical course directory.
type Directory struct {
	CourseName string
	Chapters   []Chapter
}

type Chapter struct {
	ID    string
	Title string
}

// RawChapterContent decodes every known chapter-content response
// shape.
type RawChapterContent struct {
	WholepageItems []RawWholepageItem `json:"wholepageItemDTOList"`
	Items          []RawContentItem   `json:"items"`
	Coursepages    []RawCoursepage    `json:"coursepages"`
}

type RawWholepageItem struct {
	Wholepages []RawWholepage `json:"wholepageDTOList"`
}

type RawWholepage struct {
	ContentType int             `json:"contentType"`
	ID          ID              `json:"id"`
	Content     string          `json:"content"`
	Coursepages []RawCoursepage `json:"coursepageDTOList"`
}

type RawContentItem struct {
	Coursepages []RawCoursepage `json:"coursepages"`
}

// RawCoursepage is a question group; depending on the generation it
// carries questions directly or nests further groups.
type RawCoursepage struct {
	ContentType int             `json:"contentType"`
	ID          ID              `json:"id"`
	RelationID  ID              `json:"relationid"`
	Title       string          `json:"title"`
	Children    []RawCoursepage `json:"children"`
	Coursepages []RawCoursepage `json:"coursepages"`
	QuestionDTOs   []RawQuestion `json:"questionDTOList"`
	PlainQuestions []RawQuestion `json:"questions"`
}

// QuestionUnitContentType marks the units that carry question groups;
// units with any other content type are skipped.
const QuestionUnitContentType = 7

// Unit is the canonical content-bearing page of a chapter.
type Unit struct {
	ContentType int
	ID          string
	Title       string
	Pages       []RawCoursepage
}

// Item groups the units of one chapter section.
type Item struct {
	Units []Unit
}

type RawQuestion struct {
	QuestionID ID          `json:"questionid"`
	Type       int         `json:"type"`
	Title      string      `json:"title"`
	Choices    []RawChoice `json:"choiceitemModels"`
}

type RawChoice struct {
	Option string `json:"option"`
	Title  string `json:"title"`
}
