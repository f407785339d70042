package platform

import (
	"strings"

	"github.com/oks-citadel/Apply-sub014/internal/dom"
	"github.com/oks-citadel/Apply-sub014/internal/types"
)

func leverSpec() *Spec {
	return &Spec{
		Platform: PlatformLever,
		Metadata: Metadata{
			Name:     "Lever",
			Version:  "1.0",
			Features: []string{"fill", "upload", "custom_questions", "submit"},
		},
		FormSelectors: []string{
			".application-form",
			".posting-apply form",
			"form[action*='lever']",
		},
		Mappings: []types.FieldMapping{
			// Lever uses a single full-name input rather than split fields.
			{
				Field:     "full_name",
				Selectors: []string{"input[name='name']", ".application-form input[name='name']"},
				GetValue:  func(r *types.ResumeData) string { return r.PersonalInfo.FullName() },
			},
			{
				Field:     "email",
				Selectors: []string{"input[name='email']"},
				GetValue:  func(r *types.ResumeData) string { return r.PersonalInfo.Email },
			},
			{
				Field:     "phone",
				Selectors: []string{"input[name='phone']"},
				GetValue:  func(r *types.ResumeData) string { return r.PersonalInfo.Phone },
			},
			{
				Field:     "company",
				Selectors: []string{"input[name='org']"},
				GetValue: func(r *types.ResumeData) string {
					if exp := r.CurrentExperience(); exp != nil {
						return exp.Company
					}
					return ""
				},
			},
			{
				Field:     "location",
				Selectors: []string{"input[name='location']"},
				GetValue:  func(r *types.ResumeData) string { return r.PersonalInfo.Address.FullAddress() },
			},
			{
				Field:     "linkedin",
				Selectors: []string{"input[name='urls[LinkedIn]']"},
				GetValue:  func(r *types.ResumeData) string { return r.PersonalInfo.LinkedIn },
			},
			{
				Field:     "github",
				Selectors: []string{"input[name='urls[GitHub]']"},
				GetValue:  func(r *types.ResumeData) string { return r.PersonalInfo.GitHub },
			},
			{
				Field:     "website",
				Selectors: []string{"input[name='urls[Portfolio]']", "input[name='urls[Other]']"},
				GetValue:  func(r *types.ResumeData) string { return r.PersonalInfo.Website },
			},
		},
		SubmitSelectors: []string{
			".template-btn-submit",
			"button[type='submit']",
			"input[type='submit']",
		},
		FileInputSelectors: []string{
			"input[name='resume']",
			"#resume-upload-input",
			"input[type='file']",
		},
		Valid: func(url string, doc *dom.Document) bool {
			if strings.Contains(strings.ToLower(url), "lever.co") {
				return true
			}
			return doc != nil && doc.Has(".application-form, .posting-apply")
		},
	}
}
