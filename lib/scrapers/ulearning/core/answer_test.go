package core

import (
	"encoding/json"
	"testing"

	"ulearning-export/lib/question"

	"github.com/stretchr/testify/require"
)

func parseAnswerPayload(t *testing.T, payload string) Answer {
	t.Helper()
	return ParseAnswer(Response{Success: true, Data: json.RawMessage(payload)})
}

func TestParseAnswerCorrectAnswerList(t *testing.T) {
	ans := parseAnswerPayload(t, `{"correctAnswerList": ["<p>A</p>", "C", ""]}`)
	require.Equal(t, []string{"A", "C"}, ans.Values)
	require.Equal(t, "A | C", ans.Joined())
	require.Equal(t, question.TypeUnknown, ans.TypeCode)
}

func TestParseAnswerScalarFallback(t *testing.T) {
	// the scalar answer only applies when the list is absent
	ans := parseAnswerPayload(t, `{"answer": "<p>正确</p>", "questionType": 4}`)
	require.Equal(t, []string{"正确"}, ans.Values)
	require.Equal(t, question.TypeJudgment, ans.TypeCode)

	ans = parseAnswerPayload(t, `{"correctAnswerList": ["B"], "answer": "ignored"}`)
	require.Equal(t, []string{"B"}, ans.Values)

	ans = parseAnswerPayload(t, `{"answer": 42}`)
	require.Equal(t, []string{"42"}, ans.Values)
}

func TestParseAnswerSubQuestions(t *testing.T) {
	ans := parseAnswerPayload(t, `{
		"answer": "总述",
		"subQuestionAnswerDTOList": [
			{"correctAnswerList": ["<p>x</p>", "y"]},
			{"answer": "z"},
			{}
		]
	}`)
	require.Equal(t, []string{"总述", "子题1: x | y", "子题2: z"}, ans.Values)
}

func TestParseAnswerTypeCodeSpellings(t *testing.T) {
	cases := []struct {
		payload string
		expect  question.TypeCode
	}{
		{`{"questiontype": 2}`, question.TypeMultipleChoice},
		{`{"type": "5"}`, question.TypeFillBlank},
		{`{"questionTypeCode": 17}`, question.TypeWordFill},
		{`{"questionDto": {"questionType": 1}}`, question.TypeSingleChoice},
		{`{"question": {"type": 6}}`, question.TypeShortAnswer},
		{`{"questionType": 0}`, question.TypeUnknown},
		{`{"questionType": -2}`, question.TypeUnknown},
		{`{}`, question.TypeUnknown},
	}
	for _, test := range cases {
		require.Equal(t, test.expect, parseAnswerPayload(t, test.payload).TypeCode, test.payload)
	}
}

func TestParseAnswerNeverErrors(t *testing.T) {
	require.Empty(t, ParseAnswer(Response{Success: false, Data: json.RawMessage(`{"answer": "x"}`)}).Values)
	require.Empty(t, ParseAnswer(Response{Success: true}).Values)
	require.Empty(t, ParseAnswer(Response{Success: true, Data: json.RawMessage(`"not an object"`)}).Values)
}
