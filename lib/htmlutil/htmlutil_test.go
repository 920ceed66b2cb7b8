package htmlutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToPlainText(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "empty", input: "", expect: ""},
		{name: "plain", input: "hello world", expect: "hello world"},
		{
			name:   "nested tags",
			input:  "<div><p>first</p><p>second</p></div>",
			expect: "firstsecond",
		},
		{
			name:   "nbsp collapsed",
			input:  "<p>a  b</p>",
			expect: "a b",
		},
		{
			name:   "surrounding whitespace trimmed",
			input:  "  <span>\n\ttext\n</span>  ",
			expect: "text",
		},
		{
			name:   "malformed markup tolerated",
			input:  "<div><p>unclosed",
			expect: "unclosed",
		},
		{
			name:   "entities decoded",
			input:  "<p>a &amp; b</p>",
			expect: "a & b",
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expect, ToPlainText(test.input))
		})
	}
}

func TestToPlainTextIdempotent(t *testing.T) {
	inputs := []string{
		"<div>第一题：<b>填空</b> 题</div>",
		"plain   text   with   runs",
		"",
	}
	for _, input := range inputs {
		once := ToPlainText(input)
		require.Equal(t, once, ToPlainText(once))
	}
}
