// Package types provides type definitions for structured data used throughout the autofill engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// ResumeData is the candidate's structured profile. It is owned by the
// caller and treated as read-only input to a single autofill run.
type ResumeData struct {
	PersonalInfo   PersonalInfo `json:"personal_info" validate:"required"`
	Summary        string       `json:"summary,omitempty"`
	Experience     []Experience `json:"experience,omitempty"`
	Education      []Education  `json:"education,omitempty"`
	Skills         []string     `json:"skills,omitempty"`
	Certifications []string     `json:"certifications,omitempty"`
	ResumeFile     *ResumeFile  `json:"resume_file,omitempty"`
}

// PersonalInfo holds contact details and public profile links.
type PersonalInfo struct {
	FirstName string  `json:"first_name" validate:"required,min=1"`
	LastName  string  `json:"last_name" validate:"required,min=1"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     string  `json:"phone,omitempty"`
	Address   Address `json:"address,omitempty"`
	LinkedIn  string  `json:"linkedin,omitempty" validate:"omitempty,url"`
	GitHub    string  `json:"github,omitempty" validate:"omitempty,url"`
	Website   string  `json:"website,omitempty" validate:"omitempty,url"`
}

// Address is a postal address broken into the components application
// forms typically ask for separately.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`
	Country string `json:"country,omitempty"`
}

// Experience represents a single work experience entry.
// StartDate and EndDate use "YYYY-MM" format; EndDate is empty when
// Current is true.
type Experience struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date,omitempty"`
	Current      bool     `json:"current,omitempty"`
	Description  string   `json:"description,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// Education represents a single education entry.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	GPA         string `json:"gpa,omitempty"`
}

// ResumeFile points at the attachable resume document.
type ResumeFile struct {
	Name     string `json:"name"`
	Path     string `json:"path,omitempty"`
	URL      string `json:"url,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
	// Text is a plain-text rendering used by paste-as-text upload fallbacks.
	Text string `json:"text,omitempty"`
}

// FullName returns the candidate's display name.
func (p *PersonalInfo) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// FullAddress joins the non-empty address components with commas.
func (a *Address) FullAddress() string {
	parts := make([]string, 0, 5)
	for _, part := range []string{a.Street, a.City, a.State, a.ZipCode, a.Country} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}

// CurrentExperience returns the most recent experience entry, preferring
// one flagged as current. Returns nil when the resume has no experience.
func (r *ResumeData) CurrentExperience() *Experience {
	if len(r.Experience) == 0 {
		return nil
	}
	for i := range r.Experience {
		if r.Experience[i].Current {
			return &r.Experience[i]
		}
	}
	return &r.Experience[0]
}

// Validate validates the ResumeData using the validator.
func (r *ResumeData) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
