// Package detect scans a DOM subtree and produces typed, labeled FormField
// records. ATS vendors never expose a shared schema, so classification and
// labeling degrade through many signal sources rather than trusting any
// single one.
package detect

import (
	"strings"

	"github.com/oks-citadel/Apply-sub014/internal/dom"
	"github.com/oks-citadel/Apply-sub014/internal/types"
)

// excludedInputTypes are input types that are never fillable form fields.
var excludedInputTypes = map[string]bool{
	"hidden": true,
	"submit": true,
	"button": true,
	"reset":  true,
	"image":  true,
}

// DetectAllFields scans all input, textarea and select descendants of the
// container and returns one FormField per visible, non-excluded element,
// in document order. Results are never cached; callers must re-detect
// after significant page mutations.
func DetectAllFields(container *dom.Element) []types.FormField {
	if container == nil {
		return nil
	}

	fields := make([]types.FormField, 0)
	for _, el := range container.Find("input, textarea, select") {
		if el.Tag() == "input" && excludedInputTypes[el.InputType()] {
			continue
		}
		if !el.Visible() {
			continue
		}
		fields = append(fields, buildField(el))
	}
	return fields
}

// DetectDocument is a convenience wrapper that scans the whole page body.
func DetectDocument(doc *dom.Document) []types.FormField {
	if doc == nil {
		return nil
	}
	body := doc.First("body")
	if body == nil {
		body = doc.Root()
	}
	return DetectAllFields(body)
}

func buildField(el *dom.Element) types.FormField {
	rawLabel := FieldLabel(el)
	field := types.FormField{
		Element:     el,
		Type:        ClassifyField(el, rawLabel),
		Label:       CleanLabel(rawLabel),
		Name:        el.Name(),
		ID:          el.ID(),
		Placeholder: el.Attr("placeholder"),
		Required:    IsRequired(el, rawLabel),
	}

	switch field.Type {
	case types.FieldSelect:
		for _, opt := range el.SelectOptions() {
			if opt.Text != "" || opt.Value != "" {
				field.Options = append(field.Options, opt.Text)
			}
		}
	case types.FieldRadio:
		field.Options = radioGroupOptions(el)
	}

	return field
}

// ClassifyField determines the field type. Declared input types are
// trusted when unambiguous; generic text inputs fall back to keyword
// inference over the field's context string.
func ClassifyField(el *dom.Element, label string) types.FieldType {
	switch el.Tag() {
	case "textarea":
		return types.FieldTextarea
	case "select":
		return types.FieldSelect
	}

	switch el.InputType() {
	case "email":
		return types.FieldEmail
	case "tel":
		return types.FieldPhone
	case "url":
		return types.FieldURL
	case "file":
		return types.FieldFile
	case "checkbox":
		return types.FieldCheckbox
	case "radio":
		return types.FieldRadio
	case "date", "datetime-local", "month", "week":
		return types.FieldDate
	case "number":
		return types.FieldNumber
	}

	return inferFieldType(contextString(el, label))
}

// contextString concatenates every textual signal about the field so
// keyword inference can match any of them.
func contextString(el *dom.Element, label string) string {
	parts := []string{
		label,
		el.Name(),
		el.ID(),
		el.Attr("placeholder"),
		el.Attr("data-label"),
		el.Attr("data-field-name"),
		el.Attr("data-automation-id"),
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// inferFieldType resolves generic text inputs by keyword, checked in
// priority order so a "phone or email" label classifies as email.
func inferFieldType(context string) types.FieldType {
	switch {
	case containsAny(context, "email", "e-mail"):
		return types.FieldEmail
	case containsAny(context, "phone", "mobile", "telephone", "tel "):
		return types.FieldPhone
	case containsAny(context, "url", "website", "linkedin", "github", "portfolio", "twitter"):
		return types.FieldURL
	case containsAny(context, "date", "dob", "birth"):
		return types.FieldDate
	case containsAny(context, "number", "salary", "amount", "age", "years of"):
		return types.FieldNumber
	default:
		return types.FieldText
	}
}

func containsAny(haystack string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

// RadioOptions exposes the radio-group option labels for a single radio
// element.
func RadioOptions(el *dom.Element) []string {
	return radioGroupOptions(el)
}

// radioGroupOptions derives the options of a radio group from the
// resolved labels of all same-named radios, falling back to the raw value
// attribute when no label resolves.
func radioGroupOptions(el *dom.Element) []string {
	name := el.Name()
	if name == "" {
		if label := CleanLabel(FieldLabel(el)); label != "" {
			return []string{label}
		}
		return nil
	}

	group := el.Document().Find(`input[type="radio"][name="` + name + `"]`)
	options := make([]string, 0, len(group))
	for _, radio := range group {
		label := CleanLabel(radioOptionLabel(radio))
		if label == "" {
			label = radio.Attr("value")
		}
		if label != "" {
			options = append(options, label)
		}
	}
	return options
}

// radioOptionLabel resolves a single radio's own label. The shared group
// name is deliberately not a fallback here; it would label every option
// identically.
func radioOptionLabel(el *dom.Element) string {
	if id := el.ID(); id != "" {
		if label := el.Document().First(`label[for="` + id + `"]`); label != nil {
			if text := strings.TrimSpace(label.Text()); text != "" {
				return text
			}
		}
	}
	if ancestor := el.Closest("label"); ancestor != nil {
		if text := ancestor.TextExcluding(el); text != "" {
			return text
		}
	}
	return strings.TrimSpace(el.Attr("aria-label"))
}

// IsRequired reports whether the field is mandatory: a native
// required/aria-required attribute, an asterisk or the word "required" in
// the raw resolved label, or a required-tagged class on the element or an
// ancestor.
func IsRequired(el *dom.Element, rawLabel string) bool {
	if el.HasAttr("required") {
		return true
	}
	if strings.EqualFold(el.Attr("aria-required"), "true") {
		return true
	}

	lower := strings.ToLower(rawLabel)
	if strings.Contains(rawLabel, "*") || strings.Contains(lower, "required") {
		return true
	}

	for cur := el; cur != nil; cur = cur.Parent() {
		if strings.Contains(strings.ToLower(cur.Attr("class")), "required") {
			return true
		}
	}
	return false
}
