package page

import (
	"strings"
	"testing"

	"ulearning-export/lib/question"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

const navFixture = `
<html><head><title>课程播放器</title></head><body>
	<div class="course-title">高等数学</div>
	<ul>
		<li id="page1001"><span class="page-name">第一页</span></li>
		<li id="page1002"><span class="page-name active">第二页  测验</span></li>
	</ul>
	<div class="next-page-btn cursor"></div>
</body></html>`

func TestActivePageReaders(t *testing.T) {
	doc := parseDoc(t, navFixture)
	require.Equal(t, "page1002", ActivePageID(doc))
	require.Equal(t, "第二页 测验", ActivePageTitle(doc))
	require.Equal(t, "1002", ActiveParentID(doc))
	require.Equal(t, "高等数学", CourseName(doc))
	require.True(t, CanAdvance(doc))
}

func TestActivePageReadersEmptyDoc(t *testing.T) {
	doc := parseDoc(t, `<html><head><title>  </title></head><body></body></html>`)
	require.Equal(t, "", ActivePageID(doc))
	require.Equal(t, UntitledPage, ActivePageTitle(doc))
	require.Equal(t, "", ActiveParentID(doc))
	require.Equal(t, "课件", CourseName(doc))
	require.False(t, CanAdvance(doc))
}

func TestCanAdvanceDisabledStates(t *testing.T) {
	cases := []string{
		`<div class="next-page-btn cursor disabled"></div>`,
		`<div class="next-page-btn cursor" disabled></div>`,
		`<div class="next-page-btn cursor" aria-disabled="true"></div>`,
		`<div class="next-page-btn"></div>`,
	}
	for _, fixture := range cases {
		require.False(t, CanAdvance(parseDoc(t, fixture)), fixture)
	}
}

func TestOverlayDismissSelector(t *testing.T) {
	doc := parseDoc(t, `<div class="modal fade in" id="statModal"><button class="btn-hollow">关闭</button></div>`)
	selector, ok := OverlayDismissSelector(doc)
	require.True(t, ok)
	require.Equal(t, "#statModal .btn-hollow", selector)

	doc = parseDoc(t, `<div class="modal fade in" id="alertModal"><button class="btn-submit">确定</button></div>`)
	selector, ok = OverlayDismissSelector(doc)
	require.True(t, ok)
	require.Equal(t, "#alertModal .btn-submit", selector)

	doc = parseDoc(t, `<div class="modal fade in" id="otherModal"><button class="close">x</button></div>`)
	selector, ok = OverlayDismissSelector(doc)
	require.True(t, ok)
	require.Equal(t, ".modal.fade.in .close", selector)

	_, ok = OverlayDismissSelector(parseDoc(t, `<div class="modal fade"></div>`))
	require.False(t, ok)
}

const questionsFixture = `
<div class="question-area">
	<div class="question-element-node">
		<div class="question-wrapper" id="question501">
			<span class="question-type-tag">单选题（2分）</span>
			<div class="question-title"><p>1+1 等于几？</p></div>
			<ul class="choice-list">
				<li><span class="option-prefix">A</span> 1</li>
				<li><span class="option-prefix">B</span> 2</li>
				<li><span class="option-prefix">B</span> 2</li>
			</ul>
		</div>
	</div>
	<div class="question-element-node">
		<div class="question-wrapper" id="question502">
			<span class="gray">判断题</span>
			<div class="question-title"><p>地球是平的。</p></div>
		</div>
	</div>
	<div class="question-element-node">
		<div class="question-wrapper" id="question501">
			<div class="question-title"><p>重复节点</p></div>
		</div>
	</div>
	<div class="question-element-node">
		<div class="question-wrapper">
			<div class="question-title"><p>无法识别 id</p></div>
		</div>
	</div>
</div>`

func TestExtractQuestions(t *testing.T) {
	questions := ExtractQuestions(parseDoc(t, questionsFixture))
	require.Len(t, questions, 2)

	first := questions[0]
	require.Equal(t, "501", first.ID)
	require.Equal(t, question.TypeSingleChoice, first.TypeCode)
	require.Equal(t, "单选题", first.TypeName)
	require.Equal(t, "1+1 等于几？", first.Title)
	// styling duplicates collapse
	require.Len(t, first.Choices, 2)
	require.Equal(t, question.Choice{Label: "A", Text: "A 1"}, first.Choices[0])

	second := questions[1]
	require.Equal(t, "502", second.ID)
	// no choices at all forces the fill-blank heuristic off here since
	// the label is authoritative for rendered questions
	require.Equal(t, question.TypeJudgment, second.TypeCode)
	require.Equal(t, "地球是平的。", second.Title)
	require.Empty(t, second.Choices)
}

func TestExtractQuestionsSelectorPrecedence(t *testing.T) {
	// .question-item is ignored once .question-element-node matches
	doc := parseDoc(t, `
		<div class="question-element-node"><div class="question-wrapper" id="question1">
			<div class="question-title">from element node</div>
		</div></div>
		<div class="question-item"><div class="question-wrapper" id="question2">
			<div class="question-title">from item</div>
		</div></div>`)
	questions := ExtractQuestions(doc)
	require.Len(t, questions, 1)
	require.Equal(t, "1", questions[0].ID)

	doc = parseDoc(t, `
		<div class="question-item"><div class="question-wrapper" id="question2">
			<div class="question-title">from item</div>
		</div></div>`)
	questions = ExtractQuestions(doc)
	require.Len(t, questions, 1)
	require.Equal(t, "2", questions[0].ID)

	require.Empty(t, ExtractQuestions(parseDoc(t, `<div class="content"></div>`)))
}

func TestExtractQuestionFallbackIDs(t *testing.T) {
	doc := parseDoc(t, `
		<div class="question-item" data-question-id="via-data">
			<div class="question-title">t</div>
		</div>`)
	questions := ExtractQuestions(doc)
	require.Len(t, questions, 1)
	require.Equal(t, "via-data", questions[0].ID)

	doc = parseDoc(t, `
		<div class="question-item">
			<input name="questionId" value="via-input">
			<div class="question-title">t</div>
		</div>`)
	questions = ExtractQuestions(doc)
	require.Len(t, questions, 1)
	require.Equal(t, "via-input", questions[0].ID)
}

func TestExtractQuestionBlankDetection(t *testing.T) {
	doc := parseDoc(t, `
		<div class="question-element-node">
			<div class="question-wrapper" id="question9">
				<span class="question-type-tag">单选题</span>
				<div class="question-title">首都是<span class="blank-input"></span></div>
			</div>
		</div>`)
	questions := ExtractQuestions(doc)
	require.Len(t, questions, 1)
	require.Equal(t, question.TypeFillBlank, questions[0].TypeCode)
	require.Equal(t, "填空题", questions[0].TypeName)
}
