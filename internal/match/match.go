// Package match resolves detected form fields to resume values. Vendor
// field mappings are tried first in declaration order; generic keyword
// matching over the field's label and name is the fallback. A nil result
// means the field is intentionally left blank.
package match

import (
	"strings"

	"github.com/oks-citadel/Apply-sub014/internal/types"
)

// Match is a resolved value with a confidence score. Confidence is binary
// in the base design: any resolved value is trusted, an unresolved field
// yields no Match at all.
type Match struct {
	Value      string
	Confidence float64
	Source     string
}

// Match sources.
const (
	SourceMapping = "mapping"
	SourceKeyword = "keyword"
)

// FieldToData resolves a value for one detected field. Mappings are
// checked in declaration order and the first one whose selector candidates
// match the field's element (or whose field tag matches the detected type)
// and whose GetValue yields a non-empty value wins. Ordering is
// behavior-defining; never re-sort mappings by match quality.
func FieldToData(field *types.FormField, resume *types.ResumeData, mappings []types.FieldMapping) *Match {
	if field == nil || resume == nil {
		return nil
	}

	for _, mapping := range mappings {
		if !mappingApplies(&mapping, field) {
			continue
		}
		if mapping.GetValue == nil {
			continue
		}
		if value := strings.TrimSpace(mapping.GetValue(resume)); value != "" {
			return &Match{Value: value, Confidence: 1.0, Source: SourceMapping}
		}
	}

	if value := keywordValue(field, resume); value != "" {
		return &Match{Value: value, Confidence: 1.0, Source: SourceKeyword}
	}

	return nil
}

func mappingApplies(mapping *types.FieldMapping, field *types.FormField) bool {
	if field.Element != nil {
		for _, selector := range mapping.Selectors {
			if field.Element.Is(selector) {
				return true
			}
		}
	}
	return mapping.Field == string(field.Type)
}

// keywordRule binds context keywords to a resume accessor. Rules are
// checked top to bottom; more specific phrases come before generic ones
// ("first name" before "name").
type keywordRule struct {
	keywords []string
	value    func(*types.ResumeData) string
}

var keywordRules = []keywordRule{
	{[]string{"first name", "given name", "firstname", "first_name"}, func(r *types.ResumeData) string { return r.PersonalInfo.FirstName }},
	{[]string{"last name", "family name", "surname", "lastname", "last_name"}, func(r *types.ResumeData) string { return r.PersonalInfo.LastName }},
	{[]string{"full name", "your name", "legal name"}, func(r *types.ResumeData) string { return r.PersonalInfo.FullName() }},
	{[]string{"email", "e-mail"}, func(r *types.ResumeData) string { return r.PersonalInfo.Email }},
	{[]string{"phone", "mobile", "telephone"}, func(r *types.ResumeData) string { return r.PersonalInfo.Phone }},
	{[]string{"linkedin"}, func(r *types.ResumeData) string { return r.PersonalInfo.LinkedIn }},
	{[]string{"github"}, func(r *types.ResumeData) string { return r.PersonalInfo.GitHub }},
	{[]string{"website", "portfolio", "personal site"}, func(r *types.ResumeData) string { return r.PersonalInfo.Website }},
	{[]string{"street", "address line"}, func(r *types.ResumeData) string { return r.PersonalInfo.Address.Street }},
	{[]string{"city"}, func(r *types.ResumeData) string { return r.PersonalInfo.Address.City }},
	{[]string{"state", "province", "region"}, func(r *types.ResumeData) string { return r.PersonalInfo.Address.State }},
	{[]string{"zip", "postal"}, func(r *types.ResumeData) string { return r.PersonalInfo.Address.ZipCode }},
	{[]string{"country"}, func(r *types.ResumeData) string { return r.PersonalInfo.Address.Country }},
	{[]string{"address", "location"}, func(r *types.ResumeData) string { return r.PersonalInfo.Address.FullAddress() }},
	{[]string{"current company", "employer", "company"}, func(r *types.ResumeData) string {
		if exp := r.CurrentExperience(); exp != nil {
			return exp.Company
		}
		return ""
	}},
	{[]string{"current title", "job title", "current role", "position"}, func(r *types.ResumeData) string {
		if exp := r.CurrentExperience(); exp != nil {
			return exp.Position
		}
		return ""
	}},
	{[]string{"skills"}, func(r *types.ResumeData) string { return strings.Join(r.Skills, ", ") }},
	{[]string{"summary", "about you", "about yourself"}, func(r *types.ResumeData) string { return r.Summary }},
	{[]string{"name"}, func(r *types.ResumeData) string { return r.PersonalInfo.FullName() }},
}

// keywordValue matches the field's label and name against known resume
// attributes. First rule whose keyword appears in the context and whose
// accessor yields a non-empty value wins.
func keywordValue(field *types.FormField, resume *types.ResumeData) string {
	context := strings.ToLower(field.Label + " " + field.Name + " " + field.ID)
	if strings.TrimSpace(context) == "" {
		return ""
	}

	for _, rule := range keywordRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(context, keyword) {
				if value := strings.TrimSpace(rule.value(resume)); value != "" {
					return value
				}
				break
			}
		}
	}
	return ""
}
