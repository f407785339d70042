package main

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommand_MissingResume(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "run")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "--resume is required")
}

func TestRunCommand_MissingPage(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "run",
		"--resume", "testdata/resume.json")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "either --page or --page-url must be provided")
}

func TestRunCommand_PageFlagsMutuallyExclusive(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "run",
		"--resume", "testdata/resume.json",
		"--page", "testdata/greenhouse_page.html",
		"--page-url", "https://boards.greenhouse.io/example/jobs/123")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "mutually exclusive")
}

func TestRunCommand_UnknownPlatform(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "run",
		"--resume", "testdata/resume.json",
		"--page", "testdata/greenhouse_page.html",
		"--platform", "taleo")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "unknown platform")
}

func TestRunCommand_LocalGreenhousePage(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "run",
		"--resume", "testdata/resume.json",
		"--page", "testdata/greenhouse_page.html",
		"--json")
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, "run failed: %s", string(output))
	assert.Contains(t, string(output), `"success": true`)
	assert.Contains(t, string(output), `"filled_fields": 4`)
	assert.Contains(t, string(output), `"submitted": false`)
}

func TestRunCommand_SummaryOutput(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "run",
		"--resume", "testdata/resume.json",
		"--page", "testdata/greenhouse_page.html")
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, "run failed: %s", string(output))
	assert.Contains(t, string(output), "Greenhouse")
	assert.Contains(t, string(output), "AUTOFILL RESULT")
}

func TestDetectCommand_MissingFlags(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "detect")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "either --page or --page-url must be provided")
}

func TestDetectCommand_LocalGreenhousePage(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "detect",
		"--page", "testdata/greenhouse_page.html",
		"--json")
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, "detect failed: %s", string(output))
	assert.Contains(t, string(output), `"platform": "greenhouse"`)
	assert.Contains(t, string(output), `"label": "Email"`)
}

func TestVersionCommand(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "version")
	output, err := cmd.CombinedOutput()

	require.NoError(t, err)
	assert.Contains(t, string(output), "autofill")
}
