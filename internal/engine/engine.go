// Package engine orchestrates the autofill pipeline: field detection,
// resume-to-field matching, filling, resume upload, screening questions,
// validation and submission. One generic engine runs every platform; all
// vendor behavior comes in through the platform spec.
package engine

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/oks-citadel/Apply-sub014/internal/detect"
	"github.com/oks-citadel/Apply-sub014/internal/dom"
	"github.com/oks-citadel/Apply-sub014/internal/match"
	"github.com/oks-citadel/Apply-sub014/internal/platform"
	"github.com/oks-citadel/Apply-sub014/internal/questions"
	"github.com/oks-citadel/Apply-sub014/internal/types"
)

// Engine runs the autofill pipeline for one platform spec.
type Engine struct {
	spec      *platform.Spec
	config    types.AutofillConfig
	writer    FieldWriter
	tracker   *Tracker
	questions *questions.Handler
	verbose   bool
}

// New creates an engine for the given platform spec, run configuration
// and field writer.
func New(spec *platform.Spec, config types.AutofillConfig, writer FieldWriter) *Engine {
	e := &Engine{
		spec:    spec,
		config:  config,
		writer:  writer,
		tracker: NewTracker(),
	}
	e.questions = questions.NewHandler(&answerWriter{engine: e})
	return e
}

// Questions exposes the screening question handler so callers can seed
// cached answers or attach a generator.
func (e *Engine) Questions() *questions.Handler { return e.questions }

// Tracker exposes run state for callers that poll instead of
// subscribing.
func (e *Engine) Tracker() *Tracker { return e.tracker }

// OnProgress subscribes a callback to lifecycle and progress events.
// When the run configuration disables ShowProgress the subscription is
// dropped; the tracker still records state for Current().
func (e *Engine) OnProgress(cb ProgressCallback) {
	if !e.config.ShowProgress {
		return
	}
	e.tracker.Subscribe(cb)
}

// SetVerbose enables diagnostic logging.
func (e *Engine) SetVerbose(verbose bool) {
	e.verbose = verbose
	e.questions.SetVerbose(verbose)
}

// Autofill runs the full pipeline against the document and returns an
// aggregate result. Field-level failures are recorded and the run
// continues; only an invalid form or a panic aborts it.
func (e *Engine) Autofill(ctx context.Context, doc *dom.Document, resume *types.ResumeData) (result *types.AutofillResult) {
	// Named return so the recover branch below still hands the caller a
	// result after a panic unwinds past the return statement.
	result = &types.AutofillResult{
		RunID:    uuid.NewString(),
		Errors:   []types.AutofillError{},
		Warnings: []string{},
	}

	defer func() {
		if r := recover(); r != nil {
			result.Success = false
			result.FilledFields = 0
			result.TotalFields = 0
			result.Errors = []types.AutofillError{{
				Field:    "general",
				Message:  fmt.Sprintf("autofill run panicked: %v", r),
				Type:     types.ErrorGeneral,
				Severity: types.SeverityFatal,
			}}
			e.tracker.Error("autofill failed")
		}
	}()

	e.tracker.UpdateStatus(StatusDetecting, fmt.Sprintf("Detecting %s application form", e.spec.Metadata.Name))

	if e.spec.Initialize != nil {
		if err := e.spec.Initialize(ctx, doc); err != nil {
			result.Errors = append(result.Errors, types.AutofillError{
				Field:    "general",
				Message:  fmt.Sprintf("platform initialization failed: %v", err),
				Type:     types.ErrorGeneral,
				Severity: types.SeverityFatal,
			})
			e.tracker.Error("initialization failed")
			return result
		}
	}
	if e.spec.Cleanup != nil {
		defer func() {
			if err := e.spec.Cleanup(ctx, doc); err != nil && e.verbose {
				log.Printf("[ENGINE] cleanup: %v", err)
			}
		}()
	}

	if e.spec.Valid != nil && !e.spec.Valid(doc.URL(), doc) {
		result.Errors = append(result.Errors, types.AutofillError{
			Field:    "general",
			Message:  fmt.Sprintf("page does not look like a %s application form", e.spec.Metadata.Name),
			Type:     types.ErrorFormInvalid,
			Severity: types.SeverityFatal,
		})
		e.tracker.Error("form validation failed")
		return result
	}

	fields := e.detectFields(ctx, doc)
	result.TotalFields = len(fields)
	e.tracker.Start(len(fields))

	e.tracker.UpdateStatus(StatusFilling, "Filling detected fields")
	for i := range fields {
		e.fillOne(ctx, &fields[i], resume, result)
		e.tracker.UpdateProgress(i+1, len(fields))
		if !sleepCtx(ctx, e.config.FillDelay) {
			break
		}
	}

	if e.config.HandleFileUploads && resume.ResumeFile != nil {
		e.tracker.UpdateStatus(StatusUploading, "Uploading resume")
		if err := UploadResume(ctx, doc, e.spec, e.writer, resume.ResumeFile); err != nil {
			result.Errors = append(result.Errors, types.AutofillError{
				Field:    "resume",
				Message:  err.Error(),
				Type:     types.ErrorUploadFailed,
				Severity: types.SeverityError,
			})
		}
	}

	if !e.config.SkipCustomQuestions {
		e.tracker.UpdateStatus(StatusAnsweringQuestions, "Answering screening questions")
		result.CustomQuestions = e.questions.DetectAndAnswerQuestions(ctx, doc, resume)
	}

	e.tracker.UpdateStatus(StatusValidating, "Validating required fields")
	result.MissingRequired = ValidateForm(fields)
	result.Success = len(result.MissingRequired) == 0

	if e.config.AutoSubmit && result.Success {
		e.tracker.UpdateStatus(StatusSubmitting, "Submitting application")
		sub, err := SubmitForm(ctx, doc, e.spec, e.writer)
		if err != nil {
			result.Errors = append(result.Errors, types.AutofillError{
				Field:    "submit",
				Message:  err.Error(),
				Type:     types.ErrorInteractionFailed,
				Severity: types.SeverityError,
			})
		}
		result.Submitted = sub.Submitted
	}

	e.tracker.Complete(fmt.Sprintf("Filled %d of %d fields", result.FilledFields, result.TotalFields))
	return result
}

// detectFields waits for any form container to appear, then collects
// fields across all container selectors, deduplicating elements that
// match more than one container.
func (e *Engine) detectFields(ctx context.Context, doc *dom.Document) []types.FormField {
	e.waitForAny(ctx, doc, e.spec.FormSelectors)

	seen := map[*html.Node]bool{}
	var fields []types.FormField
	for _, selector := range e.spec.FormSelectors {
		for _, container := range doc.Find(selector) {
			for _, field := range detect.DetectAllFields(container) {
				node := field.Element.Node()
				if seen[node] {
					continue
				}
				seen[node] = true
				fields = append(fields, field)
			}
		}
	}

	if e.verbose {
		log.Printf("[ENGINE] detected %d fields", len(fields))
	}
	return fields
}

// waitForAny polls until at least one selector matches or the wait
// budget runs out. Absence is not an error; detection proceeds with
// whatever is present.
func (e *Engine) waitForAny(ctx context.Context, doc *dom.Document, selectors []string) {
	if !e.config.WaitForElements {
		return
	}

	deadline := time.Now().Add(e.config.MaxWaitTime)
	for {
		for _, selector := range selectors {
			if doc.Has(selector) {
				return
			}
		}
		if time.Now().After(deadline) {
			return
		}
		if !sleepCtx(ctx, e.config.PollInterval) {
			return
		}
	}
}

// fillOne matches and fills a single field, recording the outcome on the
// result. Failures never abort the run.
func (e *Engine) fillOne(ctx context.Context, field *types.FormField, resume *types.ResumeData, result *types.AutofillResult) {
	e.tracker.SetCurrentField(field.Label)

	if field.Type == types.FieldFile {
		// Handled in the upload stage.
		return
	}

	m := match.FieldToData(field, resume, e.spec.Mappings)
	if m != nil && m.Source == match.SourceKeyword &&
		(field.Type == types.FieldRadio || field.Type == types.FieldCheckbox) {
		// Keyword matches are too weak to drive toggles; the screening
		// question handler owns those controls.
		m = nil
	}
	if m == nil {
		if field.Required {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Could not find data for required field: %s", field.Label))
			e.highlight(ctx, field.Element, "warning")
		}
		return
	}

	if err := e.writeValue(ctx, field, m.Value); err != nil {
		result.Errors = append(result.Errors, types.AutofillError{
			Field:    field.Label,
			Message:  err.Error(),
			Type:     types.ErrorInteractionFailed,
			Severity: types.SeverityError,
		})
		e.highlight(ctx, field.Element, "error")
		return
	}

	result.FilledFields++
	e.highlight(ctx, field.Element, "success")
}

// writeValue dispatches the matched value to the writer according to the
// field's control type.
func (e *Engine) writeValue(ctx context.Context, field *types.FormField, value string) error {
	el := field.Element

	switch field.Type {
	case types.FieldSelect:
		optionValue, err := resolveSelectOption(el, value)
		if err != nil {
			return err
		}
		return e.writer.SelectOption(ctx, el, optionValue)
	case types.FieldCheckbox:
		desired := parseAffirmative(value)
		if el.Checked() == desired {
			return nil
		}
		return e.writer.SetChecked(ctx, el, desired)
	case types.FieldRadio:
		return e.fillRadio(ctx, el, value)
	default:
		return e.writer.FillText(ctx, el, value)
	}
}

// fillRadio picks the radio in el's group whose value or label matches
// and checks it.
func (e *Engine) fillRadio(ctx context.Context, el *dom.Element, value string) error {
	group := []*dom.Element{el}
	if name := el.Name(); name != "" {
		group = el.Document().Find(fmt.Sprintf("input[type='radio'][name=%q]", name))
	}
	labels := detect.RadioOptions(el)

	want := strings.ToLower(strings.TrimSpace(value))
	for i, radio := range group {
		val := strings.ToLower(strings.TrimSpace(radio.Attr("value")))
		label := ""
		if i < len(labels) {
			label = strings.ToLower(strings.TrimSpace(labels[i]))
		}
		matched := val == want || label == want ||
			(val != "" && strings.Contains(val, want)) ||
			(label != "" && strings.Contains(label, want))
		if !matched {
			continue
		}
		if radio.Checked() {
			return nil
		}
		return e.writer.SetChecked(ctx, radio, true)
	}
	return fmt.Errorf("no radio option matching %q", value)
}

func (e *Engine) highlight(ctx context.Context, el *dom.Element, state string) {
	if !e.config.HighlightFields || el == nil {
		return
	}
	if err := e.writer.Highlight(ctx, el, state); err != nil && e.verbose {
		log.Printf("[ENGINE] highlight: %v", err)
	}
}

// resolveSelectOption maps a desired value onto a concrete option value,
// trying exact value or text first, then a case-insensitive substring
// match in either direction.
func resolveSelectOption(el *dom.Element, desired string) (string, error) {
	options := el.SelectOptions()

	for _, opt := range options {
		if opt.Value == desired || opt.Text == desired {
			return opt.Value, nil
		}
	}

	want := strings.ToLower(strings.TrimSpace(desired))
	for _, opt := range options {
		text := strings.ToLower(strings.TrimSpace(opt.Text))
		if text == "" {
			continue
		}
		if strings.Contains(text, want) || strings.Contains(want, text) {
			return opt.Value, nil
		}
	}

	return "", fmt.Errorf("no option matching %q", desired)
}

// parseAffirmative interprets a matched value as a checkbox state.
func parseAffirmative(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "true", "1", "on", "checked":
		return true
	}
	return false
}

// answerWriter adapts the engine's field writer to the screening
// question handler.
type answerWriter struct {
	engine *Engine
}

func (w *answerWriter) WriteAnswer(ctx context.Context, q *types.CustomQuestion) error {
	e := w.engine
	switch q.Type {
	case types.FieldSelect:
		optionValue, err := resolveSelectOption(q.Element, q.Answer)
		if err != nil {
			return err
		}
		return e.writer.SelectOption(ctx, q.Element, optionValue)
	case types.FieldRadio:
		return e.fillRadio(ctx, q.Element, q.Answer)
	case types.FieldCheckbox:
		return e.writer.SetChecked(ctx, q.Element, parseAffirmative(q.Answer))
	default:
		return e.writer.FillText(ctx, q.Element, q.Answer)
	}
}
