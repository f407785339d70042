// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oks-citadel/Apply-sub014/internal/types"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	Resume     string `json:"resume,omitempty"`      // Path to resume JSON file
	ResumeFile string `json:"resume_file,omitempty"` // Path to resume document to upload (pdf/docx)
	Page       string `json:"page,omitempty"`        // Path to a saved application page HTML file
	PageURL    string `json:"page_url,omitempty"`    // URL of the application page

	// Platform override; empty means auto-detect.
	Platform string `json:"platform,omitempty"`

	// Fill behavior, durations in milliseconds.
	FillDelayMs         int  `json:"fill_delay_ms,omitempty"`
	TypingDelayMs       int  `json:"typing_delay_ms,omitempty"`
	MaxWaitMs           int  `json:"max_wait_ms,omitempty"`
	PollIntervalMs      int  `json:"poll_interval_ms,omitempty"`
	SkipCustomQuestions bool `json:"skip_custom_questions,omitempty"`
	AutoSubmit          bool `json:"auto_submit,omitempty"`
	NoUploads           bool `json:"no_uploads,omitempty"`

	// Behavior
	APIKey     string `json:"api_key,omitempty"`     // Gemini API key for answer generation
	UseBrowser bool   `json:"use_browser,omitempty"` // Drive a live headless browser
	Verbose    bool   `json:"verbose,omitempty"`     // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	// Validate mutually exclusive fields
	if c.Page != "" && c.PageURL != "" {
		return fmt.Errorf("config error: 'page' and 'page_url' are mutually exclusive")
	}

	// Validate numeric ranges
	if c.FillDelayMs < 0 {
		return fmt.Errorf("config error: 'fill_delay_ms' must be non-negative")
	}
	if c.TypingDelayMs < 0 {
		return fmt.Errorf("config error: 'typing_delay_ms' must be non-negative")
	}
	if c.MaxWaitMs < 0 {
		return fmt.Errorf("config error: 'max_wait_ms' must be non-negative")
	}
	if c.PollIntervalMs < 0 {
		return fmt.Errorf("config error: 'poll_interval_ms' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}
	if c.ResumeFile != "" {
		if _, err := os.Stat(c.ResumeFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume upload file not found: %s", c.ResumeFile)
		}
	}
	if c.Page != "" {
		if _, err := os.Stat(c.Page); os.IsNotExist(err) {
			return fmt.Errorf("config error: page file not found: %s", c.Page)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.ResumeFile == "" {
		result.ResumeFile = defaults.ResumeFile
	}
	if result.Page == "" {
		result.Page = defaults.Page
	}
	if result.PageURL == "" {
		result.PageURL = defaults.PageURL
	}
	if result.Platform == "" {
		result.Platform = defaults.Platform
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}

	// Int fields: use default if zero
	if result.FillDelayMs == 0 {
		result.FillDelayMs = defaults.FillDelayMs
	}
	if result.TypingDelayMs == 0 {
		result.TypingDelayMs = defaults.TypingDelayMs
	}
	if result.MaxWaitMs == 0 {
		result.MaxWaitMs = defaults.MaxWaitMs
	}
	if result.PollIntervalMs == 0 {
		result.PollIntervalMs = defaults.PollIntervalMs
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ToAutofillConfig converts the CLI configuration into engine run options,
// applying documented defaults for anything unset.
func (c *Config) ToAutofillConfig() types.AutofillConfig {
	cfg := types.DefaultAutofillConfig()

	if c.FillDelayMs > 0 {
		cfg.FillDelay = time.Duration(c.FillDelayMs) * time.Millisecond
	}
	if c.TypingDelayMs > 0 {
		cfg.TypingDelay = time.Duration(c.TypingDelayMs) * time.Millisecond
	}
	if c.MaxWaitMs > 0 {
		cfg.MaxWaitTime = time.Duration(c.MaxWaitMs) * time.Millisecond
	}
	if c.PollIntervalMs > 0 {
		cfg.PollInterval = time.Duration(c.PollIntervalMs) * time.Millisecond
	}

	cfg.SkipCustomQuestions = c.SkipCustomQuestions
	cfg.AutoSubmit = c.AutoSubmit
	cfg.HandleFileUploads = !c.NoUploads

	return cfg
}
