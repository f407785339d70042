package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/oks-citadel/Apply-sub014/internal/types"
)

// AnswerGenerator produces fallback answers for screening questions that
// no built-in pattern matched. It satisfies the question handler's
// Generator interface; generated answers are returned for review rather
// than written into the form.
type AnswerGenerator struct {
	client Client
	tier   ModelTier
}

// NewAnswerGenerator wraps an LLM client as an answer generator.
// Screening answers are short and formulaic, so the lite tier is enough.
func NewAnswerGenerator(client Client) *AnswerGenerator {
	return &AnswerGenerator{client: client, tier: TierLite}
}

// GenerateAnswer produces a short first-person answer to a screening
// question, grounded in the candidate's resume.
func (g *AnswerGenerator) GenerateAnswer(ctx context.Context, resume *types.ResumeData, question string) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("no LLM client configured")
	}

	prompt := buildAnswerPrompt(resume, question)
	answer, err := g.client.GenerateContent(ctx, prompt, g.tier)
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}

	return strings.TrimSpace(answer), nil
}

func buildAnswerPrompt(resume *types.ResumeData, question string) string {
	var b strings.Builder

	b.WriteString("You are helping a job candidate answer a screening question on an application form.\n")
	b.WriteString("Answer in first person, in at most three sentences, with no preamble.\n")
	b.WriteString("If the question expects yes or no, answer with a single word.\n\n")

	b.WriteString("Candidate:\n")
	fmt.Fprintf(&b, "- Name: %s\n", resume.PersonalInfo.FullName())
	if exp := resume.CurrentExperience(); exp != nil {
		fmt.Fprintf(&b, "- Current role: %s at %s\n", exp.Position, exp.Company)
	}
	if len(resume.Skills) > 0 {
		fmt.Fprintf(&b, "- Skills: %s\n", strings.Join(resume.Skills, ", "))
	}
	if resume.Summary != "" {
		fmt.Fprintf(&b, "- Summary: %s\n", resume.Summary)
	}

	fmt.Fprintf(&b, "\nQuestion: %s\n", question)

	return b.String()
}
