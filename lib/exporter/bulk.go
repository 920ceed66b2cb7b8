// Package exporter drives the two export modes: bulk, walking the
// platform API from the course directory down, and interactive,
// following the rendered player page by page.
package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ulearning-export/lib/export"
	"ulearning-export/lib/htmlutil"
	"ulearning-export/lib/question"
	"ulearning-export/lib/scrapers/ulearning/core"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("lib/exporter")

// API is the platform surface the exporters consume.
type API interface {
	Request(ctx context.Context, op core.Operation, params core.Params) (core.Response, error)
}

// ProgressFunc receives coarse progress updates. done/total refer to
// chapters in bulk mode and collected questions in interactive mode;
// total is 0 when unknown.
type ProgressFunc func(done, total int, message string)

// Bulk exports a course through the platform API.
type Bulk struct {
	Client   API
	Progress ProgressFunc
}

func (b *Bulk) progress(done, total int, message string) {
	if b.Progress != nil {
		b.Progress(done, total, message)
	}
}

// Export walks the course directory and resolves every question of
// every question unit. Directory-level failures abort; chapter and
// answer level failures degrade to notes on the output tree.
func (b *Bulk) Export(ctx context.Context, courseID, classID string) (export.Course, error) {
	ctx, span := tracer.Start(ctx, "exporter.Bulk.Export", trace.WithAttributes(
		attribute.String("ulearning.course_id", courseID),
	))
	defer span.End()

	fail := func(err error) (export.Course, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, "bulk export failed")
		return export.Course{}, err
	}

	if courseID == "" || classID == "" {
		return fail(fmt.Errorf("both a course id and a class id are required"))
	}

	b.progress(0, 0, "获取课程目录...")
	resp, err := b.Client.Request(ctx, core.OpCourseDirectory, core.Params{CourseID: courseID, ClassID: classID})
	if err != nil {
		return fail(fmt.Errorf("fetch course directory: %w", err))
	}
	if !resp.Success {
		return fail(fmt.Errorf("fetch course directory: %s", orUnknown(resp.Message)))
	}

	dir, err := core.NormalizeDirectory(resp.Data)
	if err != nil {
		return fail(err)
	}
	if len(dir.Chapters) == 0 {
		return fail(fmt.Errorf("course directory has no chapters"))
	}

	course := export.Course{
		CourseID:   courseID,
		CourseName: dir.CourseName,
		ExportTime: time.Now(),
	}
	if course.CourseName == "" {
		course.CourseName = "course_" + courseID
	}

	for i, chapter := range dir.Chapters {
		b.progress(i+1, len(dir.Chapters), fmt.Sprintf("处理: %s", chapter.Title))
		course.Chapters = append(course.Chapters, b.exportChapter(ctx, chapter))
	}

	course.TotalQuestions = course.CountQuestions()
	span.SetAttributes(attribute.Int("ulearning.total_questions", course.TotalQuestions))
	return course, nil
}

func (b *Bulk) exportChapter(ctx context.Context, chapter core.Chapter) export.Chapter {
	out := export.Chapter{ID: chapter.ID, Title: orDefault(chapter.Title, "未命名章节")}

	if chapter.ID == "" {
		out.Note = "未找到章节 ID，跳过"
		return out
	}

	resp, err := b.Client.Request(ctx, core.OpChapterContent, core.Params{NodeID: chapter.ID})
	if err != nil || len(resp.Data) == 0 {
		slog.WarnContext(ctx, "chapter content fetch failed",
			"chapter_id", chapter.ID, "error", err)
		out.Note = "获取章节内容失败"
		return out
	}

	items, err := core.NormalizeChapterContent(resp.Data)
	if err != nil {
		slog.WarnContext(ctx, "chapter content undecodable",
			"chapter_id", chapter.ID, "error", err)
		out.Note = "获取章节内容失败"
		return out
	}

	for _, item := range items {
		for _, unit := range item.Units {
			if unit.ContentType != core.QuestionUnitContentType {
				continue
			}
			out.Units = append(out.Units, b.exportUnit(ctx, unit))
		}
	}
	return out
}

func (b *Bulk) exportUnit(ctx context.Context, unit core.Unit) export.Unit {
	out := export.Unit{ID: unit.ID, Title: orDefault(unit.Title, "未命名单元")}

	for _, page := range unit.Pages {
		for _, raw := range core.NormalizeQuestions(page) {
			out.Questions = append(out.Questions, b.buildRecord(ctx, raw, unit.ID))
		}
	}
	if len(out.Questions) == 0 {
		out.Note = "当前单元未检测到题目"
	}
	return out
}

func rawChoices(raw core.RawQuestion) []question.Choice {
	if len(raw.Choices) == 0 {
		return nil
	}
	choices := make([]question.Choice, len(raw.Choices))
	for i, c := range raw.Choices {
		label := c.Option
		if label == "" {
			label = string(rune('A' + i))
		}
		choices[i] = question.Choice{
			Label: label,
			Text:  orDefault(htmlutil.ToPlainText(c.Title), "(无内容)"),
		}
	}
	return choices
}

// buildRecord resolves one question: local classification first, then
// the answer endpoint's type code as the final override.
func (b *Bulk) buildRecord(ctx context.Context, raw core.RawQuestion, parentID string) export.Question {
	choices := rawChoices(raw)
	base := question.Classify(question.TypeCode(raw.Type), raw.Title, choices)

	var ans core.Answer
	if raw.QuestionID != "" && parentID != "" {
		resp, err := b.Client.Request(ctx, core.OpQuestionAnswer, core.Params{
			QuestionID: raw.QuestionID.String(),
			ParentID:   parentID,
		})
		if err != nil {
			slog.DebugContext(ctx, "answer fetch failed",
				"question_id", raw.QuestionID.String(), "error", err)
		} else {
			ans = core.ParseAnswer(resp)
		}
	}

	final := question.Reconcile(base, ans.TypeCode)
	isFill := final == question.TypeFillBlank

	answerText := ans.Joined()
	renderAnswers := ans.Values
	if len(renderAnswers) == 0 && answerText != "" {
		renderAnswers = []string{answerText}
	}

	record := export.Question{
		ID:          raw.QuestionID.String(),
		Type:        final,
		TypeName:    final.Name(),
		Answer:      answerText,
		AnswerList:  renderAnswers,
		IsFillBlank: isFill,
	}
	record.RenderedTitle = question.RenderTitle(raw.Title, final, renderAnswers)
	record.Title = record.RenderedTitle
	if !isFill {
		record.Options = choices
	}
	return record
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func orUnknown(message string) string {
	return orDefault(message, "未知错误")
}
