// Package questions detects screening questions that standard field
// mappings do not cover, matches them against an ordered pattern library
// and synthesizes answers from resume data.
package questions

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/oks-citadel/Apply-sub014/internal/types"
)

// AnswerStrategy synthesizes an answer for a matched question. The clock
// is injected so date-based answers stay deterministic in tests.
type AnswerStrategy func(resume *types.ResumeData, question string, now time.Time) string

// Pattern is one static screening-question rule.
type Pattern struct {
	Regex    *regexp.Regexp
	Category string
	Answer   AnswerStrategy
}

// Question categories.
const (
	CategoryWorkAuthorization = "work_authorization"
	CategorySponsorship       = "sponsorship"
	CategorySalary            = "salary"
	CategoryStartDate         = "start_date"
	CategoryYearsExperience   = "years_experience"
	CategoryRelocation        = "relocation"
	CategoryReferralSource    = "referral_source"
	CategoryCoverLetter       = "cover_letter"
)

// startDateLeadDays is how far out the default start date is placed.
const startDateLeadDays = 14

// DefaultPatterns returns the built-in pattern library. The list is
// checked top to bottom and the first matching pattern wins; declaration
// order defines behavior, so never re-sort it.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{
			Regex:    regexp.MustCompile(`(?i)authorized to work|work authorization|legally (able|eligible) to work|eligible to work`),
			Category: CategoryWorkAuthorization,
			Answer: func(*types.ResumeData, string, time.Time) string {
				return "Yes"
			},
		},
		{
			Regex:    regexp.MustCompile(`(?i)sponsorship|require.{0,20}(visa|sponsor)|visa (status|sponsorship)`),
			Category: CategorySponsorship,
			Answer: func(*types.ResumeData, string, time.Time) string {
				return "No"
			},
		},
		{
			Regex:    regexp.MustCompile(`(?i)salary|compensation|desired pay|pay (expectation|range)`),
			Category: CategorySalary,
			Answer: func(*types.ResumeData, string, time.Time) string {
				return "I am seeking a competitive salary commensurate with my experience and the responsibilities of the role."
			},
		},
		{
			Regex:    regexp.MustCompile(`(?i)when (can|could) you start|start date|available to start|earliest.{0,20}start|availability to start`),
			Category: CategoryStartDate,
			Answer: func(_ *types.ResumeData, _ string, now time.Time) string {
				return now.AddDate(0, 0, startDateLeadDays).Format("2006-01-02")
			},
		},
		{
			Regex:    regexp.MustCompile(`(?i)years of .{0,30}experience|how many years`),
			Category: CategoryYearsExperience,
			Answer: func(resume *types.ResumeData, _ string, now time.Time) string {
				return yearsOfExperienceAnswer(resume, now)
			},
		},
		{
			Regex:    regexp.MustCompile(`(?i)willing to relocate|open to relocat`),
			Category: CategoryRelocation,
			Answer: func(*types.ResumeData, string, time.Time) string {
				return "Yes"
			},
		},
		{
			Regex:    regexp.MustCompile(`(?i)how did you hear|hear about (us|this)`),
			Category: CategoryReferralSource,
			Answer: func(*types.ResumeData, string, time.Time) string {
				return "Job board"
			},
		},
		{
			Regex:    regexp.MustCompile(`(?i)cover letter|why (do you want|are you interested)|interest(ed)? in (this|the) (role|position|company)|motivat`),
			Category: CategoryCoverLetter,
			Answer:   coverLetterAnswer,
		},
	}
}

// TotalExperienceMonths sums the month-granular duration of every
// experience entry. Entries flagged current (or without an end date) run
// to the reference time. Unparseable dates contribute nothing.
func TotalExperienceMonths(resume *types.ResumeData, now time.Time) int {
	total := 0
	for _, exp := range resume.Experience {
		start, ok := parseMonth(exp.StartDate)
		if !ok {
			continue
		}
		end := now
		if !exp.Current && exp.EndDate != "" {
			if parsed, ok := parseMonth(exp.EndDate); ok {
				end = parsed
			}
		}
		months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
		if months > 0 {
			total += months
		}
	}
	return total
}

var monthLayouts = []string{
	"2006-01",
	"2006-01-02",
	"2006/01",
	"01/2006",
	"Jan 2006",
	"January 2006",
	"2006",
}

func parseMonth(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range monthLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func yearsOfExperienceAnswer(resume *types.ResumeData, now time.Time) string {
	years := TotalExperienceMonths(resume, now) / 12
	if years == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%d years", years)
}

// coverLetterAnswer builds a short templated paragraph from the
// candidate's top skills, computed tenure and most recent role.
func coverLetterAnswer(resume *types.ResumeData, _ string, now time.Time) string {
	var sb strings.Builder
	sb.WriteString("I am excited to apply for this position. ")

	if years := TotalExperienceMonths(resume, now) / 12; years > 0 {
		plural := "years"
		if years == 1 {
			plural = "year"
		}
		sb.WriteString(fmt.Sprintf("With %d %s of professional experience", years, plural))
		if exp := resume.CurrentExperience(); exp != nil && exp.Position != "" {
			sb.WriteString(fmt.Sprintf(", most recently as %s at %s", exp.Position, exp.Company))
		}
		sb.WriteString(", ")
	}

	if len(resume.Skills) > 0 {
		top := resume.Skills
		if len(top) > 3 {
			top = top[:3]
		}
		sb.WriteString(fmt.Sprintf("I bring hands-on expertise in %s. ", strings.Join(top, ", ")))
	} else {
		sb.WriteString("I bring a track record of delivering results. ")
	}

	sb.WriteString("I am confident my background is a strong match for this role and would welcome the opportunity to contribute to your team.")
	return sb.String()
}
