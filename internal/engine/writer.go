package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/oks-citadel/Apply-sub014/internal/dom"
	"github.com/oks-citadel/Apply-sub014/internal/types"
)

// FieldWriter performs the concrete element interactions for a run. The
// synthetic writer operates on the in-memory document; the chrome writer
// drives a live browser. The engine is agnostic to which one it holds.
type FieldWriter interface {
	FillText(ctx context.Context, el *dom.Element, value string) error
	SelectOption(ctx context.Context, el *dom.Element, optionValue string) error
	SetChecked(ctx context.Context, el *dom.Element, checked bool) error
	UploadFile(ctx context.Context, el *dom.Element, file *types.ResumeFile) error
	Highlight(ctx context.Context, el *dom.Element, state string) error
	ClickSubmit(ctx context.Context, el *dom.Element) error
}

// SyntheticWriter mutates the in-memory document, recording the same
// event sequence a live fill produces so tests can assert on it.
type SyntheticWriter struct {
	// TypingDelay paces per-character typing. Zero means no pacing.
	TypingDelay time.Duration
}

// NewSyntheticWriter returns a writer over the in-memory document.
func NewSyntheticWriter(typingDelay time.Duration) *SyntheticWriter {
	return &SyntheticWriter{TypingDelay: typingDelay}
}

// FillText types value into el character by character, then dispatches
// input, change and blur. React and similar frameworks track inputs
// through the native value setter, so the value is written once more
// through it followed by a final input event.
func (w *SyntheticWriter) FillText(ctx context.Context, el *dom.Element, value string) error {
	el.Dispatch("focus")

	typed := ""
	for _, r := range value {
		typed += string(r)
		el.SetValue(typed)
		el.Dispatch("input")
		if !sleepCtx(ctx, w.TypingDelay) {
			return ctx.Err()
		}
	}

	el.Dispatch("input")
	el.Dispatch("change")
	el.Dispatch("blur")

	// Native setter bypass pass.
	el.SetValue(value)
	el.Dispatch("input")

	return nil
}

// SelectOption sets a select's value to a concrete option value resolved
// by the engine beforehand.
func (w *SyntheticWriter) SelectOption(ctx context.Context, el *dom.Element, optionValue string) error {
	el.SetValue(optionValue)
	el.Dispatch("input")
	el.Dispatch("change")
	el.Dispatch("blur")
	return nil
}

// SetChecked toggles a checkbox or radio to the desired state.
func (w *SyntheticWriter) SetChecked(ctx context.Context, el *dom.Element, checked bool) error {
	el.SetChecked(checked)
	el.Dispatch("click")
	el.Dispatch("change")
	return nil
}

// UploadFile attaches the resume file to a file input.
func (w *SyntheticWriter) UploadFile(ctx context.Context, el *dom.Element, file *types.ResumeFile) error {
	if file == nil {
		return fmt.Errorf("no file to upload")
	}
	el.SetUploadedFile(file.Name)
	el.Dispatch("change")
	return nil
}

// Highlight records the visual state on the element.
func (w *SyntheticWriter) Highlight(ctx context.Context, el *dom.Element, state string) error {
	el.SetHighlight(state)
	return nil
}

// ClickSubmit records a click on the submit control.
func (w *SyntheticWriter) ClickSubmit(ctx context.Context, el *dom.Element) error {
	el.Dispatch("click")
	return nil
}

// sleepCtx sleeps for d unless the context is canceled first. It reports
// whether the full duration elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
