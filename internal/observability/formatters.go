// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/oks-citadel/Apply-sub014/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintPlatform outputs the detected platform.
func (p *Printer) PrintPlatform(name, url string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Platform: %s\n", name))
	sb.WriteString(fmt.Sprintf("Page:     %s", truncate(url, 45)))
	p.printBox("DETECTED PLATFORM", sb.String())
}

// PrintDetectedFields outputs a summary of the detected form fields.
func (p *Printer) PrintDetectedFields(fields []types.FormField) {
	if len(fields) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Detected %d fields:\n\n", len(fields)))

	count := min(len(fields), maxItemsToShow)
	for i := 0; i < count; i++ {
		field := fields[i]
		label := field.Label
		if label == "" {
			label = "(unlabeled)"
		}
		sb.WriteString(fmt.Sprintf("• %s\n", truncate(label, 45)))
		meta := string(field.Type)
		if field.Required {
			meta += ", required"
		}
		sb.WriteString(fmt.Sprintf("  [%s]\n", meta))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(fields) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more fields", len(fields)-maxItemsToShow))
	}

	p.printBox("DETECTED FIELDS", sb.String())
}

// PrintCustomQuestions outputs the screening questions and their answers.
func (p *Printer) PrintCustomQuestions(questions []types.CustomQuestion) {
	if len(questions) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d screening questions:\n\n", len(questions)))

	count := min(len(questions), maxItemsToShow)
	for i := 0; i < count; i++ {
		q := questions[i]
		sb.WriteString(fmt.Sprintf("? %s\n", truncate(q.Question, 45)))
		if q.Answer != "" {
			sb.WriteString(fmt.Sprintf("  → %s\n", truncate(q.Answer, 43)))
		} else {
			sb.WriteString("  → (needs review)\n")
		}
		sb.WriteString(fmt.Sprintf("  [%s, %.0f%%]\n", displayCategory(q.Category), q.Confidence*100))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(questions) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more questions", len(questions)-maxItemsToShow))
	}

	p.printBox("SCREENING QUESTIONS", sb.String())
}

// PrintResult outputs the aggregate run result.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintResult(result *types.AutofillResult) {
	if result == nil {
		return
	}

	var sb strings.Builder

	status := "✅ SUCCESS"
	if !result.Success {
		status = "❌ INCOMPLETE"
	}
	sb.WriteString(fmt.Sprintf("%s\n", status))
	sb.WriteString(fmt.Sprintf("Filled:    %d of %d fields\n", result.FilledFields, result.TotalFields))
	if result.Submitted {
		sb.WriteString("Submitted: yes\n")
	}

	if len(result.MissingRequired) > 0 {
		sb.WriteString("\nMissing required:\n")
		count := min(len(result.MissingRequired), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", truncate(result.MissingRequired[i], 45)))
		}
		if len(result.MissingRequired) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.MissingRequired)-maxItemsToShow))
		}
	}

	if len(result.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		count := min(len(result.Warnings), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  ⚠ %s\n", truncate(result.Warnings[i], 43)))
		}
		if len(result.Warnings) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Warnings)-maxItemsToShow))
		}
	}

	if len(result.Errors) > 0 {
		sb.WriteString("\nErrors:\n")
		count := min(len(result.Errors), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := result.Errors[i]
			sb.WriteString(fmt.Sprintf("  ✗ %s: %s\n", e.Field, truncate(e.Message, 35)))
		}
		if len(result.Errors) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Errors)-maxItemsToShow))
		}
	}

	p.printBox("AUTOFILL RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

func displayCategory(category string) string {
	if category == "" {
		return "unmatched"
	}
	return category
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
