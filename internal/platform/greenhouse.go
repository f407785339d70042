package platform

import (
	"strings"

	"github.com/oks-citadel/Apply-sub014/internal/dom"
	"github.com/oks-citadel/Apply-sub014/internal/types"
)

func greenhouseSpec() *Spec {
	return &Spec{
		Platform: PlatformGreenhouse,
		Metadata: Metadata{
			Name:     "Greenhouse",
			Version:  "1.0",
			Features: []string{"fill", "upload", "custom_questions", "submit"},
		},
		FormSelectors: []string{
			"#application_form",
			"#grnhse_app",
			"#main_fields",
			"form[action*='greenhouse']",
		},
		Mappings: []types.FieldMapping{
			{
				Field:     "first_name",
				Selectors: []string{"#first_name", "input[name='job_application[first_name]']"},
				GetValue:  func(r *types.ResumeData) string { return r.PersonalInfo.FirstName },
			},
			{
				Field:     "last_name",
				Selectors: []string{"#last_name", "input[name='job_application[last_name]']"},
				GetValue:  func(r *types.ResumeData) string { return r.PersonalInfo.LastName },
			},
			{
				Field:     "email",
				Selectors: []string{"#email", "input[name='job_application[email]']"},
				GetValue:  func(r *types.ResumeData) string { return r.PersonalInfo.Email },
			},
			{
				Field:     "phone",
				Selectors: []string{"#phone", "input[name='job_application[phone]']"},
				GetValue:  func(r *types.ResumeData) string { return r.PersonalInfo.Phone },
			},
			{
				Field:     "location",
				Selectors: []string{"#job_application_location", "input[name='job_application[location]']"},
				GetValue:  func(r *types.ResumeData) string { return r.PersonalInfo.Address.FullAddress() },
			},
			{
				Field:     "linkedin",
				Selectors: []string{"input[name*='linkedin']", "input[id*='linkedin']"},
				GetValue:  func(r *types.ResumeData) string { return r.PersonalInfo.LinkedIn },
			},
			{
				Field:     "website",
				Selectors: []string{"input[name*='website']", "input[id*='website']"},
				GetValue:  func(r *types.ResumeData) string { return r.PersonalInfo.Website },
			},
		},
		SubmitSelectors: []string{
			"#submit_app",
			"input[type='submit']",
			"button[type='submit']",
		},
		FileInputSelectors: []string{
			"#resume",
			"input[name='job_application[resume]']",
			"input[type='file']",
		},
		PasteFallbackSelector: "#resume_text",
		Valid: func(url string, doc *dom.Document) bool {
			if strings.Contains(strings.ToLower(url), "greenhouse.io") {
				return true
			}
			return doc != nil && doc.Has("#application_form, #grnhse_app, #main_fields")
		},
	}
}
