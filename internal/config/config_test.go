package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"page_url": "https://boards.greenhouse.io/acme/jobs/1",
		"platform": "greenhouse",
		"fill_delay_ms": 50,
		"auto_submit": true,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://boards.greenhouse.io/acme/jobs/1", cfg.PageURL)
	assert.Equal(t, "greenhouse", cfg.Platform)
	assert.Equal(t, 50, cfg.FillDelayMs)
	assert.True(t, cfg.AutoSubmit)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_MutuallyExclusive(t *testing.T) {
	cfg := &Config{
		Page:    "page.html",
		PageURL: "https://boards.greenhouse.io/acme/jobs/1",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestValidate_NegativeValues(t *testing.T) {
	cfg := &Config{
		FillDelayMs: -1,
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fill_delay_ms")
}

func TestValidate_MissingResume(t *testing.T) {
	cfg := &Config{
		Resume: "/nonexistent/resume.json",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "resume file not found")
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		PageURL:     "https://jobs.lever.co/acme/abc",
		FillDelayMs: 100,
		MaxWaitMs:   5000,
	}

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		Resume:      "resume.json",
		APIKey:      "default-key",
		Platform:    "lever",
		FillDelayMs: 200,
		MaxWaitMs:   5000,
	}

	partial := Config{
		Platform: "greenhouse",
		PageURL:  "https://boards.greenhouse.io/acme/jobs/1",
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "greenhouse", merged.Platform)
	assert.Equal(t, "https://boards.greenhouse.io/acme/jobs/1", merged.PageURL)

	// Default values should fill in empty fields
	assert.Equal(t, "resume.json", merged.Resume)
	assert.Equal(t, "default-key", merged.APIKey)
	assert.Equal(t, 200, merged.FillDelayMs)
	assert.Equal(t, 5000, merged.MaxWaitMs)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{
		Resume:  "mine.json",
		PageURL: "https://jobs.lever.co/acme/abc",
	}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "mine.json", merged.Resume)
	assert.Equal(t, "https://jobs.lever.co/acme/abc", merged.PageURL)
}

func TestToAutofillConfig_Defaults(t *testing.T) {
	cfg := Config{}
	run := cfg.ToAutofillConfig()

	assert.Equal(t, 100*time.Millisecond, run.FillDelay)
	assert.Equal(t, 10*time.Second, run.MaxWaitTime)
	assert.True(t, run.HandleFileUploads)
	assert.False(t, run.AutoSubmit)
}

func TestToAutofillConfig_Overrides(t *testing.T) {
	cfg := Config{
		FillDelayMs:         10,
		TypingDelayMs:       5,
		MaxWaitMs:           2000,
		PollIntervalMs:      100,
		SkipCustomQuestions: true,
		AutoSubmit:          true,
		NoUploads:           true,
	}
	run := cfg.ToAutofillConfig()

	assert.Equal(t, 10*time.Millisecond, run.FillDelay)
	assert.Equal(t, 5*time.Millisecond, run.TypingDelay)
	assert.Equal(t, 2*time.Second, run.MaxWaitTime)
	assert.Equal(t, 100*time.Millisecond, run.PollInterval)
	assert.True(t, run.SkipCustomQuestions)
	assert.True(t, run.AutoSubmit)
	assert.False(t, run.HandleFileUploads)
}
