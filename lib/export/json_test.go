package export

import (
	"testing"
	"time"

	"ulearning-export/lib/question"

	"github.com/stretchr/testify/require"
)

func TestCourseJSONRoundTrip(t *testing.T) {
	course := Course{
		CourseID:   "123",
		CourseName: "操作系统",
		ExportTime: time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC),
		Chapters: []Chapter{
			{
				ID:    "c1",
				Title: "进程",
				Units: []Unit{
					{
						ID:    "u1",
						Title: "自测",
						Questions: []Question{
							{
								ID:            "q1",
								Type:          question.TypeFillBlank,
								TypeName:      "填空题",
								Title:         "调度单位是{进程}",
								RenderedTitle: "调度单位是{进程}",
								Answer:        "进程",
								AnswerList:    []string{"进程"},
								IsFillBlank:   true,
							},
						},
					},
				},
			},
			{ID: "c2", Title: "空章节", Note: "获取章节内容失败"},
		},
	}
	course.TotalQuestions = course.CountQuestions()
	require.Equal(t, 1, course.TotalQuestions)

	data, err := CourseJSON(course)
	require.NoError(t, err)

	decoded, err := DecodeCourse(data)
	require.NoError(t, err)
	require.Equal(t, course, decoded)
}

func TestParseFormat(t *testing.T) {
	for raw, expect := range map[string]Format{
		"":         FormatMarkdown,
		"1":        FormatMarkdown,
		"md":       FormatMarkdown,
		"markdown": FormatMarkdown,
		"2":        FormatJSON,
		"json":     FormatJSON,
		"3":        FormatBank,
		"bank":     FormatBank,
	} {
		format, err := ParseFormat(raw)
		require.NoError(t, err)
		require.Equal(t, expect, format, raw)
	}

	_, err := ParseFormat("xml")
	require.Error(t, err)
}

func TestFilename(t *testing.T) {
	require.Equal(t, "高等数学_课件题目.md", Filename("高等数学", FormatMarkdown))
	require.Equal(t, "高等数学_课件题目.json", Filename("高等数学", FormatJSON))
	require.Equal(t, "题库.json", Filename("高等数学", FormatBank))
	require.Equal(t, "a_b_课件题目.md", Filename("a/b", FormatMarkdown))
	require.Equal(t, "高数_导出.md", AutoFilename("高数"))
}
