package types

import "time"

// ErrorType categorizes an autofill failure.
type ErrorType string

// Error type constants; the taxonomy is extensible.
const (
	ErrorInteractionFailed ErrorType = "interaction_failed"
	ErrorUploadFailed      ErrorType = "upload_failed"
	ErrorFormInvalid       ErrorType = "form_invalid"
	ErrorGeneral           ErrorType = "general"
)

// ErrorSeverity grades how damaging an error was to the run.
type ErrorSeverity string

// Severity constants. Only fatal errors abort a run.
const (
	SeverityFatal   ErrorSeverity = "fatal"
	SeverityError   ErrorSeverity = "error"
	SeverityWarning ErrorSeverity = "warning"
)

// AutofillError describes one failure recorded during a run.
type AutofillError struct {
	Field    string        `json:"field"`
	Message  string        `json:"message"`
	Type     ErrorType     `json:"type"`
	Severity ErrorSeverity `json:"severity"`
}

// AutofillConfig is the configuration for one autofill run, merged over
// defaults by DefaultAutofillConfig.
type AutofillConfig struct {
	// FillDelay is the pacing delay between fields.
	FillDelay time.Duration `json:"fill_delay"`
	// TypingDelay is the per-character delay when typing into text inputs.
	TypingDelay time.Duration `json:"typing_delay"`
	// WaitForElements enables polling for form containers to appear.
	WaitForElements bool `json:"wait_for_elements"`
	// MaxWaitTime bounds the element-wait polling.
	MaxWaitTime time.Duration `json:"max_wait_time"`
	// PollInterval is the fixed polling interval while waiting.
	PollInterval        time.Duration `json:"poll_interval"`
	SkipCustomQuestions bool          `json:"skip_custom_questions"`
	AutoSubmit          bool          `json:"auto_submit"`
	HighlightFields     bool          `json:"highlight_fields"`
	ShowProgress        bool          `json:"show_progress"`
	HandleFileUploads   bool          `json:"handle_file_uploads"`
}

// DefaultAutofillConfig returns the documented defaults.
func DefaultAutofillConfig() AutofillConfig {
	return AutofillConfig{
		FillDelay:         100 * time.Millisecond,
		TypingDelay:       0,
		WaitForElements:   true,
		MaxWaitTime:       10 * time.Second,
		PollInterval:      250 * time.Millisecond,
		HighlightFields:   true,
		ShowProgress:      true,
		HandleFileUploads: true,
	}
}

// AutofillResult is the terminal output of a run. It is built
// incrementally during the run and never mutated after return.
type AutofillResult struct {
	RunID           string           `json:"run_id,omitempty"`
	Success         bool             `json:"success"`
	FilledFields    int              `json:"filled_fields"`
	TotalFields     int              `json:"total_fields"`
	Errors          []AutofillError  `json:"errors"`
	Warnings        []string         `json:"warnings"`
	CustomQuestions []CustomQuestion `json:"custom_questions,omitempty"`
	MissingRequired []string         `json:"missing_required,omitempty"`
	Submitted       bool             `json:"submitted"`
}

// FormSubmissionResult reports the outcome of a submit attempt.
type FormSubmissionResult struct {
	Submitted bool   `json:"submitted"`
	Message   string `json:"message,omitempty"`
}
