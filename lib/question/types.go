package question

import (
	"fmt"

	"ulearning-export/lib/textutil"
)

// TypeCode is the canonical question category used by the learning
// platform. Zero means the category could not be determined.
type TypeCode int

const (
	TypeUnknown          TypeCode = 0
	TypeSingleChoice     TypeCode = 1
	TypeMultipleChoice   TypeCode = 2
	TypeIndefiniteChoice TypeCode = 3
	TypeJudgment         TypeCode = 4
	TypeFillBlank        TypeCode = 5
	TypeShortAnswer      TypeCode = 6
	TypeFileUpload       TypeCode = 7
	TypeReading          TypeCode = 11
	TypeOrdering         TypeCode = 12
	TypeWordFill         TypeCode = 17
	TypeComposite        TypeCode = 24
)

var typeNames = map[TypeCode]string{
	TypeSingleChoice:     "单选题",
	TypeMultipleChoice:   "多选题",
	TypeIndefiniteChoice: "不定项选择题",
	TypeJudgment:         "判断题",
	TypeFillBlank:        "填空题",
	TypeShortAnswer:      "简答题/论述题",
	TypeFileUpload:       "文件题",
	TypeReading:          "阅读理解",
	TypeOrdering:         "排序题",
	TypeWordFill:         "选词填空",
	TypeComposite:        "综合题",
}

// LookupName reports the display name for a known type code.
func LookupName(code TypeCode) (string, bool) {
	name, ok := typeNames[code]
	return name, ok
}

// Name returns the display name of the type, or a 未知题型 marker for
// codes outside the known table.
func (code TypeCode) Name() string {
	if name, ok := typeNames[code]; ok {
		return name
	}
	return fmt.Sprintf("未知题型(%d)", int(code))
}

var labelCodes = func() map[string]TypeCode {
	out := make(map[string]TypeCode, len(typeNames)*2)
	for code, name := range typeNames {
		out[name] = code
		if normalized := textutil.NormalizeTypeLabel(name); normalized != "" {
			out[normalized] = code
		}
	}
	return out
}()

// TypeFromLabel maps a rendered type label (possibly carrying score
// qualifiers like 单选题（2分）) back to its code. Unknown labels map to
// TypeUnknown.
func TypeFromLabel(label string) TypeCode {
	if label == "" {
		return TypeUnknown
	}
	if code, ok := labelCodes[label]; ok {
		return code
	}
	if code, ok := labelCodes[textutil.NormalizeTypeLabel(label)]; ok {
		return code
	}
	return TypeUnknown
}

// Choice is one selectable option of a choice question.
type Choice struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}
