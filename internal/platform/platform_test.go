package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oks-citadel/Apply-sub014/internal/dom"
	"github.com/oks-citadel/Apply-sub014/internal/types"
)

func parseDoc(t *testing.T, markup string) *dom.Document {
	t.Helper()
	doc, err := dom.Parse(markup)
	require.NoError(t, err)
	return doc
}

func TestDetect_ByHost(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected Platform
	}{
		{
			name:     "greenhouse boards URL",
			url:      "https://boards.greenhouse.io/acme/jobs/123",
			expected: PlatformGreenhouse,
		},
		{
			name:     "lever jobs URL",
			url:      "https://jobs.lever.co/acme/abc-def",
			expected: PlatformLever,
		},
		{
			name:     "workday URL",
			url:      "https://acme.wd5.myworkdayjobs.com/careers/job/123",
			expected: PlatformWorkday,
		},
		{
			name:     "workday.com URL",
			url:      "https://acme.workday.com/careers",
			expected: PlatformWorkday,
		},
		{
			name:     "unrelated host with no document",
			url:      "https://careers.acme.com/apply",
			expected: PlatformUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Detect(tt.url, nil))
		})
	}
}

func TestDetect_ByDOM(t *testing.T) {
	tests := []struct {
		name     string
		markup   string
		expected Platform
	}{
		{
			name:     "embedded greenhouse widget",
			markup:   `<html><body><div id="grnhse_app"></div></body></html>`,
			expected: PlatformGreenhouse,
		},
		{
			name:     "greenhouse application form",
			markup:   `<html><body><form id="application_form"></form></body></html>`,
			expected: PlatformGreenhouse,
		},
		{
			name:     "lever application form",
			markup:   `<html><body><div class="application-form"></div></body></html>`,
			expected: PlatformLever,
		},
		{
			name:     "workday apply flow",
			markup:   `<html><body><div data-automation-id="applyFlowPage"></div></body></html>`,
			expected: PlatformWorkday,
		},
		{
			name:     "plain form falls back to generic",
			markup:   `<html><body><form><input name="email"></form></body></html>`,
			expected: PlatformGeneric,
		},
		{
			name:     "no form at all",
			markup:   `<html><body><p>About us</p></body></html>`,
			expected: PlatformUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, tt.markup)
			assert.Equal(t, tt.expected, Detect("https://careers.acme.com/apply", doc))
		})
	}
}

func TestDetect_HostBeatsDOM(t *testing.T) {
	// A greenhouse hostname wins even when the page embeds lever markup.
	doc := parseDoc(t, `<html><body><div class="application-form"></div></body></html>`)
	assert.Equal(t, PlatformGreenhouse, Detect("https://boards.greenhouse.io/acme/jobs/1", doc))
}

func TestFor_KnownPlatforms(t *testing.T) {
	for _, p := range []Platform{PlatformGreenhouse, PlatformLever, PlatformWorkday, PlatformGeneric} {
		spec := For(p)
		require.NotNil(t, spec, "spec for %s", p)
		assert.Equal(t, p, spec.Platform)
		assert.NotEmpty(t, spec.FormSelectors)
		assert.NotEmpty(t, spec.Metadata.Name)
		assert.NotNil(t, spec.Valid)
	}
}

func TestFor_UnknownFallsBackToGeneric(t *testing.T) {
	spec := For(PlatformUnknown)
	require.NotNil(t, spec)
	assert.Equal(t, PlatformGeneric, spec.Platform)
}

func TestSpec_MappingsResolveValues(t *testing.T) {
	resume := &types.ResumeData{
		PersonalInfo: types.PersonalInfo{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
		},
	}

	spec := For(PlatformGreenhouse)
	byField := map[string]string{}
	for _, m := range spec.Mappings {
		byField[m.Field] = m.GetValue(resume)
	}

	assert.Equal(t, "Ada", byField["first_name"])
	assert.Equal(t, "Lovelace", byField["last_name"])
	assert.Equal(t, "ada@example.com", byField["email"])
}

func TestSpec_LeverFullName(t *testing.T) {
	resume := &types.ResumeData{
		PersonalInfo: types.PersonalInfo{FirstName: "Ada", LastName: "Lovelace"},
	}

	spec := For(PlatformLever)
	var got string
	for _, m := range spec.Mappings {
		if m.Field == "full_name" {
			got = m.GetValue(resume)
		}
	}
	assert.Equal(t, "Ada Lovelace", got)
}

func TestSpec_ValidPredicates(t *testing.T) {
	tests := []struct {
		name     string
		platform Platform
		url      string
		markup   string
		valid    bool
	}{
		{
			name:     "greenhouse valid by URL alone",
			platform: PlatformGreenhouse,
			url:      "https://boards.greenhouse.io/acme/jobs/1",
			markup:   `<html><body></body></html>`,
			valid:    true,
		},
		{
			name:     "greenhouse valid by DOM on white-label host",
			platform: PlatformGreenhouse,
			url:      "https://careers.acme.com",
			markup:   `<html><body><div id="grnhse_app"></div></body></html>`,
			valid:    true,
		},
		{
			name:     "greenhouse invalid on empty page",
			platform: PlatformGreenhouse,
			url:      "https://careers.acme.com",
			markup:   `<html><body></body></html>`,
			valid:    false,
		},
		{
			name:     "generic requires a form",
			platform: PlatformGeneric,
			url:      "https://careers.acme.com",
			markup:   `<html><body><p>no form here</p></body></html>`,
			valid:    false,
		},
		{
			name:     "generic valid with a form",
			platform: PlatformGeneric,
			url:      "https://careers.acme.com",
			markup:   `<html><body><form></form></body></html>`,
			valid:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, tt.markup)
			assert.Equal(t, tt.valid, For(tt.platform).Valid(tt.url, doc))
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Platform
		ok    bool
	}{
		{"exact", "greenhouse", PlatformGreenhouse, true},
		{"mixed case", "Lever", PlatformLever, true},
		{"surrounding whitespace", "  workday ", PlatformWorkday, true},
		{"generic", "generic", PlatformGeneric, true},
		{"unrecognized", "taleo", PlatformUnknown, false},
		{"empty", "", PlatformUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
