package core

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"ulearning-export/lib/htmlutil"
	"ulearning-export/lib/question"
)

// Answer is the distilled result of a question-answer lookup. Values
// holds the plain-text answers in platform order; TypeCode is the
// authoritative type code when the endpoint reported one, else
// TypeUnknown.
type Answer struct {
	Values   []string
	TypeCode question.TypeCode
}

// Joined renders the values the way the markdown and bank formats
// expect them.
func (a Answer) Joined() string {
	return strings.Join(a.Values, " | ")
}

type rawSubAnswer struct {
	Answer            scalar            `json:"answer"`
	CorrectAnswerList []json.RawMessage `json:"correctAnswerList"`
}

type rawAnswerData struct {
	Answer            scalar            `json:"answer"`
	CorrectAnswerList []json.RawMessage `json:"correctAnswerList"`
	SubAnswers        []rawSubAnswer    `json:"subQuestionAnswerDTOList"`

	QuestionType     scalar      `json:"questionType"`
	QuestionTypeAlt  scalar      `json:"questiontype"`
	Type             scalar      `json:"type"`
	QuestionTypeCode scalar      `json:"questionTypeCode"`
	QuestionDTO      *rawTypeRef `json:"questionDto"`
	Question         *rawTypeRef `json:"question"`
}

type rawTypeRef struct {
	QuestionType scalar `json:"questionType"`
	Type         scalar `json:"type"`
}

// scalar accepts the answer field whatever JSON type the platform
// serialized it as and keeps its text form.
type scalar struct {
	set  bool
	text string
}

func (s *scalar) UnmarshalJSON(raw []byte) error {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	s.set = true
	if trimmed[0] == '"' {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return err
		}
		s.text = str
		return nil
	}
	s.text = trimmed
	return nil
}

func rawToText(raw json.RawMessage) string {
	var s scalar
	if err := s.UnmarshalJSON(raw); err != nil || !s.set {
		return ""
	}
	return htmlutil.ToPlainText(s.text)
}

// collectAnswerValues extracts the plain-text answers from an answer
// payload: the correct-answer list when present, else the scalar
// answer field, plus per-sub-question summaries appended at the end.
func collectAnswerValues(data rawAnswerData) []string {
	var values []string

	if len(data.CorrectAnswerList) > 0 {
		for _, item := range data.CorrectAnswerList {
			if text := rawToText(item); text != "" {
				values = append(values, text)
			}
		}
	} else if data.Answer.set {
		if text := htmlutil.ToPlainText(data.Answer.text); text != "" {
			values = append(values, text)
		}
	}

	for i, sub := range data.SubAnswers {
		var subValues []string
		for _, item := range sub.CorrectAnswerList {
			if text := rawToText(item); text != "" {
				subValues = append(subValues, text)
			}
		}
		if len(subValues) == 0 && sub.Answer.set {
			if text := htmlutil.ToPlainText(sub.Answer.text); text != "" {
				subValues = append(subValues, text)
			}
		}
		if len(subValues) == 0 {
			continue
		}
		values = append(values, fmt.Sprintf("子题%d: %s", i+1, strings.Join(subValues, " | ")))
	}

	return values
}

func numberToCode(s scalar) question.TypeCode {
	if !s.set {
		return question.TypeUnknown
	}
	v, err := strconv.Atoi(strings.TrimSpace(s.text))
	if err != nil || v <= 0 {
		return question.TypeUnknown
	}
	return question.TypeCode(v)
}

// answerTypeCode walks the field spellings different payload
// generations use for the question type, first positive hit wins.
func answerTypeCode(data rawAnswerData) question.TypeCode {
	candidates := []scalar{
		data.QuestionType,
		data.QuestionTypeAlt,
		data.Type,
		data.QuestionTypeCode,
	}
	if data.QuestionDTO != nil {
		candidates = append(candidates, data.QuestionDTO.QuestionType, data.QuestionDTO.Type)
	}
	if data.Question != nil {
		candidates = append(candidates, data.Question.QuestionType, data.Question.Type)
	}
	for _, candidate := range candidates {
		if code := numberToCode(candidate); code != question.TypeUnknown {
			return code
		}
	}
	return question.TypeUnknown
}

// ResolveAnswer fetches and distills the answer for one question.
// Transport failures surface as errors so callers can degrade; a
// successful but empty or odd payload yields an empty Answer.
func (c *Client) ResolveAnswer(ctx context.Context, questionID, parentID string) (Answer, error) {
	resp, err := c.Request(ctx, OpQuestionAnswer, Params{
		QuestionID: questionID,
		ParentID:   parentID,
	})
	if err != nil {
		return Answer{}, err
	}
	return ParseAnswer(resp), nil
}

// ParseAnswer distills an answer-endpoint response. Unsuccessful or
// undecodable responses yield an empty Answer rather than an error; a
// question without a retrievable answer still exports.
func ParseAnswer(resp Response) Answer {
	if !resp.Success || len(resp.Data) == 0 {
		return Answer{}
	}
	var data rawAnswerData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return Answer{}
	}
	return Answer{
		Values:   collectAnswerValues(data),
		TypeCode: answerTypeCode(data),
	}
}
