package platform

import (
	"strings"

	"github.com/oks-citadel/Apply-sub014/internal/dom"
	"github.com/oks-citadel/Apply-sub014/internal/types"
)

func workdaySpec() *Spec {
	return &Spec{
		Platform: PlatformWorkday,
		Metadata: Metadata{
			Name:     "Workday",
			Version:  "1.0",
			Features: []string{"fill", "upload", "custom_questions", "submit"},
		},
		FormSelectors: []string{
			"[data-automation-id='applyFlowPage']",
			"[data-automation-id='jobApplication']",
			"form",
		},
		Mappings: []types.FieldMapping{
			{
				Field:     "first_name",
				Selectors: []string{"[data-automation-id='legalNameSection_firstName']"},
				GetValue:  func(r *types.ResumeData) string { return r.PersonalInfo.FirstName },
			},
			{
				Field:     "last_name",
				Selectors: []string{"[data-automation-id='legalNameSection_lastName']"},
				GetValue:  func(r *types.ResumeData) string { return r.PersonalInfo.LastName },
			},
			{
				Field:     "email",
				Selectors: []string{"[data-automation-id='email']"},
				GetValue:  func(r *types.ResumeData) string { return r.PersonalInfo.Email },
			},
			{
				Field:     "phone",
				Selectors: []string{"[data-automation-id='phone-number']"},
				GetValue:  func(r *types.ResumeData) string { return r.PersonalInfo.Phone },
			},
			{
				Field:     "street",
				Selectors: []string{"[data-automation-id='addressSection_addressLine1']"},
				GetValue:  func(r *types.ResumeData) string { return r.PersonalInfo.Address.Street },
			},
			{
				Field:     "city",
				Selectors: []string{"[data-automation-id='addressSection_city']"},
				GetValue:  func(r *types.ResumeData) string { return r.PersonalInfo.Address.City },
			},
			{
				Field:     "state",
				Selectors: []string{"[data-automation-id='addressSection_countryRegion']"},
				GetValue:  func(r *types.ResumeData) string { return r.PersonalInfo.Address.State },
			},
			{
				Field:     "zip",
				Selectors: []string{"[data-automation-id='addressSection_postalCode']"},
				GetValue:  func(r *types.ResumeData) string { return r.PersonalInfo.Address.ZipCode },
			},
			{
				Field:     "country",
				Selectors: []string{"[data-automation-id='countryDropdown']"},
				GetValue:  func(r *types.ResumeData) string { return r.PersonalInfo.Address.Country },
			},
		},
		SubmitSelectors: []string{
			"[data-automation-id='bottom-navigation-next-button']",
			"[data-automation-id='submitButton']",
			"button[type='submit']",
		},
		FileInputSelectors: []string{
			"[data-automation-id='file-upload-input-ref']",
			"input[type='file']",
		},
		Valid: func(url string, doc *dom.Document) bool {
			lower := strings.ToLower(url)
			if strings.Contains(lower, "workday.com") || strings.Contains(lower, "myworkdayjobs.com") {
				return true
			}
			return doc != nil && doc.Has("[data-automation-id]")
		},
	}
}
