package question

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderTitlePlain(t *testing.T) {
	require.Equal(t, "地球是圆的。", RenderTitle("<p>地球是圆的。</p>", TypeJudgment, nil))
	require.Equal(t, MissingTitle, RenderTitle("", TypeSingleChoice, nil))
	require.Equal(t, MissingTitle, RenderTitle("<div><img src='x.png'></div>", TypeSingleChoice, nil))
}

func TestRenderFillTitle(t *testing.T) {
	cases := []struct {
		name    string
		title   string
		answers []string
		expect  string
	}{
		{
			name:    "answers interpolated in document order",
			title:   `<p>水的化学式是<span class="input-wrapper"></span>，盐是<span class="input-wrapper"></span>。</p>`,
			answers: []string{"H2O", "NaCl"},
			expect:  "水的化学式是{H2O}，盐是{NaCl}。",
		},
		{
			name:    "missing answers render placeholders",
			title:   `<p>a<input>b<input>c</p>`,
			answers: []string{"1"},
			expect:  "a{1}b{___}c",
		},
		{
			name:    "surplus answers appended",
			title:   `<p>结果是<input>。</p>`,
			answers: []string{"42", "extra"},
			expect:  "结果是{42}。 {extra}",
		},
		{
			name:    "no placeholders appends everything",
			title:   "<p>请填空。</p>",
			answers: []string{"甲", "乙"},
			expect:  "请填空。 {甲} {乙}",
		},
		{
			name:    "empty title renders tokens alone",
			title:   "",
			answers: []string{"only"},
			expect:  "{only}",
		},
		{
			name:    "empty everything",
			title:   "",
			answers: nil,
			expect:  "",
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expect, RenderFillTitle(test.title, test.answers))
		})
	}
}

// for N placeholders and M answers the output carries exactly
// max(0, M-N) trailing extra tokens and N-M {___} placeholders when
// M < N
func TestRenderFillTitleNeverDropsAnswers(t *testing.T) {
	title := `<p>x<input>y<input>z</p>`

	out := RenderFillTitle(title, []string{"a", "b", "c", "d"})
	require.Equal(t, 4, strings.Count(out, "{"))

	require.Contains(t, out, "{a}")
	require.Contains(t, out, "{b}")
	require.Contains(t, out, "{c}")
	require.Contains(t, out, "{d}")

	out = RenderFillTitle(title, []string{"a"})
	require.Equal(t, 1, strings.Count(out, "{___}"))
}
