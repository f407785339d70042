package platform

import (
	"github.com/oks-citadel/Apply-sub014/internal/dom"
	"github.com/oks-citadel/Apply-sub014/internal/types"
)

// genericSpec is the best-effort fallback for unrecognized sites. It has
// no vendor selectors to offer, so mappings bind by detected field type
// and the keyword matcher carries the rest.
func genericSpec() *Spec {
	return &Spec{
		Platform: PlatformGeneric,
		Metadata: Metadata{
			Name:     "Generic",
			Version:  "1.0",
			Features: []string{"fill", "upload", "custom_questions"},
		},
		FormSelectors: []string{
			"form",
			"[role='form']",
			".application-form",
		},
		Mappings: []types.FieldMapping{
			{
				Field:    "email",
				GetValue: func(r *types.ResumeData) string { return r.PersonalInfo.Email },
			},
			{
				Field:    "phone",
				GetValue: func(r *types.ResumeData) string { return r.PersonalInfo.Phone },
			},
		},
		SubmitSelectors: []string{
			"button[type='submit']",
			"input[type='submit']",
		},
		FileInputSelectors: []string{
			"input[type='file']",
		},
		PasteFallbackSelector: "textarea[name*='resume']",
		Valid: func(url string, doc *dom.Document) bool {
			return doc != nil && doc.Has("form, [role='form']")
		},
	}
}
