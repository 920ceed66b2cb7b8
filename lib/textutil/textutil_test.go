package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		input  string
		expect string
	}{
		{input: "", expect: "untitled"},
		{input: "数据结构与算法", expect: "数据结构与算法"},
		{input: `a/b\c:d*e?f"g<h>i|j`, expect: "a_b_c_d_e_f_g_h_i_j"},
		{input: "two  words   here", expect: "two_words_here"},
		{input: "already___collapsed", expect: "already_collapsed"},
	}
	for _, test := range cases {
		require.Equal(t, test.expect, SanitizeFilename(test.input))
	}
}

func TestSanitizeFilenameCapsLength(t *testing.T) {
	long := strings.Repeat("课", 300)
	out := SanitizeFilename(long)
	require.Len(t, []rune(out), 120)
}

func TestNormalizeTypeLabel(t *testing.T) {
	cases := []struct {
		input  string
		expect string
	}{
		{input: "", expect: ""},
		{input: "单选题", expect: "单选题"},
		{input: "单选题（2分）", expect: "单选题"},
		{input: "判断题(1分)", expect: "判断题"},
		{input: "【多选题】", expect: ""},
		{input: " 填空题 ", expect: "填空题"},
	}
	for _, test := range cases {
		require.Equal(t, test.expect, NormalizeTypeLabel(test.input))
	}
}
