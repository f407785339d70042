package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/oks-citadel/Apply-sub014/internal/dom"
	"github.com/oks-citadel/Apply-sub014/internal/platform"
	"github.com/oks-citadel/Apply-sub014/internal/types"
)

// ValidateForm returns the labels of required fields that are still
// empty. Radio groups are checked once per group.
func ValidateForm(fields []types.FormField) []string {
	var missing []string
	seenRadioGroups := map[string]bool{}

	for _, field := range fields {
		if !field.Required || field.Element == nil {
			continue
		}

		switch field.Type {
		case types.FieldCheckbox:
			if !field.Element.Checked() {
				missing = append(missing, field.Label)
			}
		case types.FieldRadio:
			name := field.Element.Name()
			if name != "" && seenRadioGroups[name] {
				continue
			}
			seenRadioGroups[name] = true
			if !radioGroupChecked(field.Element) {
				missing = append(missing, field.Label)
			}
		case types.FieldFile:
			if field.Element.UploadedFile() == "" && strings.TrimSpace(field.Element.Value()) == "" {
				missing = append(missing, field.Label)
			}
		default:
			if strings.TrimSpace(field.Element.Value()) == "" {
				missing = append(missing, field.Label)
			}
		}
	}

	return missing
}

func radioGroupChecked(el *dom.Element) bool {
	name := el.Name()
	if name == "" {
		return el.Checked()
	}
	group := el.Document().Find(fmt.Sprintf("input[type='radio'][name=%q]", name))
	for _, radio := range group {
		if radio.Checked() {
			return true
		}
	}
	return false
}

// SubmitForm locates the submit control from the spec's selectors and
// clicks it through the writer.
func SubmitForm(ctx context.Context, doc *dom.Document, spec *platform.Spec, writer FieldWriter) (*types.FormSubmissionResult, error) {
	var control *dom.Element
	for _, selector := range spec.SubmitSelectors {
		if el := doc.First(selector); el != nil {
			control = el
			break
		}
	}
	if control == nil {
		return &types.FormSubmissionResult{Submitted: false, Message: "no submit control found"},
			fmt.Errorf("no submit control matched any of %d selectors", len(spec.SubmitSelectors))
	}

	if err := writer.ClickSubmit(ctx, control); err != nil {
		return &types.FormSubmissionResult{Submitted: false, Message: err.Error()},
			fmt.Errorf("submit click failed: %w", err)
	}

	return &types.FormSubmissionResult{Submitted: true, Message: "application submitted"}, nil
}
