package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oks-citadel/Apply-sub014/internal/detect"
	"github.com/oks-citadel/Apply-sub014/internal/dom"
	"github.com/oks-citadel/Apply-sub014/internal/types"
)

func sampleResume() *types.ResumeData {
	return &types.ResumeData{
		PersonalInfo: types.PersonalInfo{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
			Phone:     "555-0100",
			LinkedIn:  "https://linkedin.com/in/ada",
			Address: types.Address{
				City:  "London",
				State: "England",
			},
		},
		Summary: "Engineer of analytical machines.",
		Skills:  []string{"Go", "Mathematics"},
		Experience: []types.Experience{
			{Company: "Analytical Engines Ltd", Position: "Principal Engineer", StartDate: "2020-01", Current: true},
		},
	}
}

func detectFields(t *testing.T, page string) []types.FormField {
	t.Helper()
	doc, err := dom.Parse(page)
	require.NoError(t, err)
	fields := detect.DetectDocument(doc)
	require.NotEmpty(t, fields)
	return fields
}

func TestFieldToData_MappingBySelector(t *testing.T) {
	fields := detectFields(t, `<body><input id="candidate-email" type="text" aria-label="Contact"></body>`)

	mappings := []types.FieldMapping{
		{Field: "email", Selectors: []string{"#candidate-email"}, GetValue: func(r *types.ResumeData) string { return r.PersonalInfo.Email }},
	}

	m := FieldToData(&fields[0], sampleResume(), mappings)
	require.NotNil(t, m)
	assert.Equal(t, "ada@example.com", m.Value)
	assert.Equal(t, SourceMapping, m.Source)
	assert.Equal(t, 1.0, m.Confidence)
}

func TestFieldToData_MappingDeclarationOrderWins(t *testing.T) {
	fields := detectFields(t, `<body><input id="f" type="email"></body>`)

	mappings := []types.FieldMapping{
		{Field: "email", GetValue: func(*types.ResumeData) string { return "first@example.com" }},
		{Field: "email", GetValue: func(*types.ResumeData) string { return "second@example.com" }},
	}

	m := FieldToData(&fields[0], sampleResume(), mappings)
	require.NotNil(t, m)
	assert.Equal(t, "first@example.com", m.Value)
}

func TestFieldToData_EmptyMappingValueFallsThrough(t *testing.T) {
	fields := detectFields(t, `<body><input id="f" type="email"></body>`)

	mappings := []types.FieldMapping{
		{Field: "email", GetValue: func(*types.ResumeData) string { return "" }},
		{Field: "email", GetValue: func(r *types.ResumeData) string { return r.PersonalInfo.Email }},
	}

	m := FieldToData(&fields[0], sampleResume(), mappings)
	require.NotNil(t, m)
	assert.Equal(t, "ada@example.com", m.Value)
}

func TestFieldToData_KeywordFallback(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{"first name", `<label for="f">First Name</label><input id="f" type="text">`, "Ada"},
		{"last name", `<input type="text" name="last_name">`, "Lovelace"},
		{"full name", `<input type="text" aria-label="Full Name">`, "Ada Lovelace"},
		{"bare name maps to full name", `<input type="text" name="name">`, "Ada Lovelace"},
		{"email", `<input type="text" name="email">`, "ada@example.com"},
		{"city", `<input type="text" aria-label="City">`, "London"},
		{"linkedin", `<input type="text" name="linkedin_url">`, "https://linkedin.com/in/ada"},
		{"current company", `<input type="text" aria-label="Current Company">`, "Analytical Engines Ltd"},
		{"summary", `<textarea name="summary"></textarea>`, "Engineer of analytical machines."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := detectFields(t, "<body>"+tt.html+"</body>")
			m := FieldToData(&fields[0], sampleResume(), nil)
			require.NotNil(t, m)
			assert.Equal(t, tt.expected, m.Value)
			assert.Equal(t, SourceKeyword, m.Source)
		})
	}
}

func TestFieldToData_NoMatchReturnsNil(t *testing.T) {
	fields := detectFields(t, `<body><input type="text" aria-label="Favorite dinosaur"></body>`)

	m := FieldToData(&fields[0], sampleResume(), nil)
	assert.Nil(t, m)
}

func TestFieldToData_MissingDataReturnsNil(t *testing.T) {
	resume := sampleResume()
	resume.PersonalInfo.Phone = ""

	fields := detectFields(t, `<body><input type="text" name="phone"></body>`)
	// Classified as phone; keyword rule matches but the value is empty.
	m := FieldToData(&fields[0], resume, nil)
	assert.Nil(t, m)
}
