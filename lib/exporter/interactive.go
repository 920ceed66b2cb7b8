package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"ulearning-export/lib/export"
	"ulearning-export/lib/question"
	"ulearning-export/lib/scrapers/ulearning/core"
	"ulearning-export/lib/scrapers/ulearning/page"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
)

// PageDriver abstracts the rendered course player the interactive
// exporter walks. Document returns the current DOM; Click activates
// the first element the selector matches.
type PageDriver interface {
	Document(ctx context.Context) (*goquery.Document, error)
	Click(ctx context.Context, selector string) error
}

// AnswerResolver looks up the authoritative answer for one rendered
// question.
type AnswerResolver interface {
	Resolve(ctx context.Context, questionID, parentID string) (core.Answer, error)
}

// APIResolver resolves answers through the platform API.
type APIResolver struct {
	Client *core.Client
}

func (r APIResolver) Resolve(ctx context.Context, questionID, parentID string) (core.Answer, error) {
	return r.Client.ResolveAnswer(ctx, questionID, parentID)
}

// Interactive walks the player page by page, collecting rendered
// questions until the next-page control runs out or Stop is called.
type Interactive struct {
	Driver   PageDriver
	Resolver AnswerResolver
	Progress ProgressFunc

	// MaxIterations caps the walk in case the player keeps offering a
	// next page. PollAttempts and PollInterval bound the wait for a page
	// transition; SettleDelay gives the new page time to render.
	MaxIterations int
	PollAttempts  int
	PollInterval  time.Duration
	SettleDelay   time.Duration

	running atomic.Bool
}

const (
	defaultMaxIterations = 600
	defaultPollAttempts  = 40
	defaultPollInterval  = 250 * time.Millisecond
	defaultSettleDelay   = 200 * time.Millisecond
)

func (iv *Interactive) maxIterations() int {
	if iv.MaxIterations > 0 {
		return iv.MaxIterations
	}
	return defaultMaxIterations
}

func (iv *Interactive) pollAttempts() int {
	if iv.PollAttempts > 0 {
		return iv.PollAttempts
	}
	return defaultPollAttempts
}

func (iv *Interactive) pollInterval() time.Duration {
	if iv.PollInterval > 0 {
		return iv.PollInterval
	}
	return defaultPollInterval
}

func (iv *Interactive) settleDelay() time.Duration {
	if iv.SettleDelay > 0 {
		return iv.SettleDelay
	}
	return defaultSettleDelay
}

func (iv *Interactive) progress(done, total int, message string) {
	if iv.Progress != nil {
		iv.Progress(done, total, message)
	}
}

// Stop requests a graceful halt after the current page.
func (iv *Interactive) Stop() {
	iv.running.Store(false)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Run walks the player until no further page exists, the iteration
// cap trips, Stop is called, or ctx is done. Every visited page id is
// reported at most once.
func (iv *Interactive) Run(ctx context.Context) ([]export.Page, error) {
	ctx, span := tracer.Start(ctx, "exporter.Interactive.Run")
	defer span.End()

	iv.running.Store(true)
	defer iv.running.Store(false)

	var pages []export.Page
	visited := make(map[string]bool)
	totalQuestions := 0

	for iteration := 0; iv.running.Load(); iteration++ {
		if err := ctx.Err(); err != nil {
			return pages, err
		}
		if iteration >= iv.maxIterations() {
			slog.WarnContext(ctx, "interactive walk hit iteration cap", "iterations", iteration)
			break
		}

		doc, err := iv.Driver.Document(ctx)
		if err != nil {
			return pages, fmt.Errorf("read page document: %w", err)
		}
		doc, err = iv.dismissOverlays(ctx, doc)
		if err != nil {
			return pages, err
		}

		pageID := page.ActivePageID(doc)
		if !visited[pageID] {
			visited[pageID] = true
			iv.progress(totalQuestions, 0, fmt.Sprintf("扫描第 %d 页...", len(visited)))

			collected := iv.collectPage(ctx, doc, pageID)
			if len(collected.Questions) > 0 {
				totalQuestions += len(collected.Questions)
				pages = append(pages, collected)
				iv.progress(totalQuestions, 0, "")
			}
		}

		if !page.CanAdvance(doc) {
			break
		}
		if err := iv.Driver.Click(ctx, page.NextPageSelector); err != nil {
			return pages, fmt.Errorf("advance to next page: %w", err)
		}
		if err := iv.awaitPageChange(ctx, pageID); err != nil {
			return pages, err
		}
	}

	span.SetAttributes(
		attribute.Int("ulearning.pages", len(pages)),
		attribute.Int("ulearning.total_questions", totalQuestions),
	)
	return pages, nil
}

// dismissOverlays closes blocking modal dialogs one at a time,
// re-reading the DOM after each click. Bounded so a modal that
// refuses to close cannot wedge the walk.
func (iv *Interactive) dismissOverlays(ctx context.Context, doc *goquery.Document) (*goquery.Document, error) {
	for attempt := 0; attempt < 5; attempt++ {
		selector, found := page.OverlayDismissSelector(doc)
		if !found {
			return doc, nil
		}
		slog.DebugContext(ctx, "dismissing overlay", "selector", selector)
		if err := iv.Driver.Click(ctx, selector); err != nil {
			return nil, fmt.Errorf("dismiss overlay: %w", err)
		}
		if err := sleepCtx(ctx, iv.settleDelay()); err != nil {
			return nil, err
		}
		var err error
		doc, err = iv.Driver.Document(ctx)
		if err != nil {
			return nil, fmt.Errorf("read page document: %w", err)
		}
	}
	return doc, nil
}

func (iv *Interactive) collectPage(ctx context.Context, doc *goquery.Document, pageID string) export.Page {
	out := export.Page{
		ID:    pageID,
		Title: page.ActivePageTitle(doc),
	}
	parentID := page.ActiveParentID(doc)

	for _, rendered := range page.ExtractQuestions(doc) {
		out.Questions = append(out.Questions, iv.buildRecord(ctx, rendered, parentID))
	}
	return out
}

// buildRecord resolves one rendered question. A choice code with no
// rendered choices downgrades to fill-blank before the answer
// endpoint gets the final word.
func (iv *Interactive) buildRecord(ctx context.Context, rendered page.Question, parentID string) export.Question {
	code := rendered.TypeCode
	if (code == question.TypeSingleChoice || code == question.TypeMultipleChoice) && len(rendered.Choices) == 0 {
		code = question.TypeFillBlank
	}

	var ans core.Answer
	if iv.Resolver != nil && rendered.ID != "" {
		resolved, err := iv.Resolver.Resolve(ctx, rendered.ID, parentID)
		if err != nil {
			slog.DebugContext(ctx, "answer fetch failed",
				"question_id", rendered.ID, "error", err)
		} else {
			ans = resolved
		}
	}

	final := question.Reconcile(code, ans.TypeCode)
	isFill := final == question.TypeFillBlank

	typeName := final.Name()
	if _, known := question.LookupName(final); !known && rendered.TypeName != "" {
		typeName = rendered.TypeName
	}

	record := export.Question{
		ID:            rendered.ID,
		Type:          final,
		TypeName:      typeName,
		Title:         rendered.Title,
		RenderedTitle: rendered.Title,
		Answer:        ans.Joined(),
		AnswerList:    ans.Values,
		IsFillBlank:   isFill,
	}
	if !isFill {
		record.Options = rendered.Choices
	}
	return record
}

// awaitPageChange polls until the active page id moves away from
// previous. Timing out is not an error; the loop's visited set keeps
// a stuck page from being collected twice.
func (iv *Interactive) awaitPageChange(ctx context.Context, previous string) error {
	for attempt := 0; attempt < iv.pollAttempts(); attempt++ {
		if err := sleepCtx(ctx, iv.pollInterval()); err != nil {
			return err
		}
		doc, err := iv.Driver.Document(ctx)
		if err != nil {
			return fmt.Errorf("read page document: %w", err)
		}
		current := page.ActivePageID(doc)
		if current != "" && current != previous {
			return sleepCtx(ctx, iv.settleDelay())
		}
	}
	slog.DebugContext(ctx, "page did not change within timeout", "page_id", previous)
	return nil
}
