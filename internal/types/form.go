package types

import (
	"github.com/oks-citadel/Apply-sub014/internal/dom"
)

// FieldType classifies a detected form input.
type FieldType string

// Field type constants cover every input shape the detector emits.
const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldPhone    FieldType = "phone"
	FieldURL      FieldType = "url"
	FieldDate     FieldType = "date"
	FieldNumber   FieldType = "number"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
	FieldCheckbox FieldType = "checkbox"
	FieldRadio    FieldType = "radio"
	FieldFile     FieldType = "file"
)

// FormField is one detected input. The Element reference is weak: the
// engine only reads and writes attributes, it never creates or destroys
// nodes. Fields are created fresh on every detection pass and must not be
// cached across page mutations.
type FormField struct {
	Element     *dom.Element `json:"-"`
	Type        FieldType    `json:"type"`
	Label       string       `json:"label"`
	Name        string       `json:"name,omitempty"`
	ID          string       `json:"id,omitempty"`
	Placeholder string       `json:"placeholder,omitempty"`
	Required    bool         `json:"required"`
	Options     []string     `json:"options,omitempty"`
}

// FieldMapping is a platform-declared rule binding a resume attribute to
// candidate form-field selectors. Selectors are tried in declaration order.
type FieldMapping struct {
	// Field tags the mapping with a field type or semantic name
	// (e.g. "email", "first_name").
	Field string
	// Selectors are CSS selector candidates matched against the detected
	// element.
	Selectors []string
	// GetValue resolves the value from resume data. An empty return means
	// the mapping does not apply to this candidate.
	GetValue func(*ResumeData) string
}

// CustomQuestion is a detected screening question not covered by standard
// mappings. It is mutated in place when an answer is generated and
// discarded at the end of the run.
type CustomQuestion struct {
	Question   string       `json:"question"`
	Element    *dom.Element `json:"-"`
	Type       FieldType    `json:"type"`
	Options    []string     `json:"options,omitempty"`
	Answer     string       `json:"answer,omitempty"`
	Category   string       `json:"category,omitempty"`
	Confidence float64      `json:"confidence"`
}
