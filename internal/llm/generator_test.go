package llm

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oks-citadel/Apply-sub014/internal/types"
)

type stubClient struct {
	response string
	err      error
	prompts  []string
}

func (c *stubClient) GenerateContent(_ context.Context, prompt string, _ ModelTier) (string, error) {
	c.prompts = append(c.prompts, prompt)
	return c.response, c.err
}

func (c *stubClient) GetModel(ModelTier) string { return "stub" }
func (c *stubClient) Close() error              { return nil }

func testResume() *types.ResumeData {
	return &types.ResumeData{
		PersonalInfo: types.PersonalInfo{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		Summary:      "Systems engineer.",
		Skills:       []string{"Go", "PostgreSQL"},
		Experience: []types.Experience{
			{Company: "Analytical Engines Ltd", Position: "Principal Engineer", StartDate: "2020-01", Current: true},
		},
	}
}

func TestGenerateAnswer_TrimsResponse(t *testing.T) {
	client := &stubClient{response: "  I led the migration of our billing system to Go.  \n"}
	gen := NewAnswerGenerator(client)

	answer, err := gen.GenerateAnswer(context.Background(), testResume(), "Describe a project you are proud of")
	require.NoError(t, err)
	assert.Equal(t, "I led the migration of our billing system to Go.", answer)
}

func TestGenerateAnswer_PromptCarriesResumeContext(t *testing.T) {
	client := &stubClient{response: "Yes"}
	gen := NewAnswerGenerator(client)

	_, err := gen.GenerateAnswer(context.Background(), testResume(), "Have you used Go in production?")
	require.NoError(t, err)

	require.Len(t, client.prompts, 1)
	prompt := client.prompts[0]
	assert.Contains(t, prompt, "Ada Lovelace")
	assert.Contains(t, prompt, "Principal Engineer at Analytical Engines Ltd")
	assert.Contains(t, prompt, "Go, PostgreSQL")
	assert.Contains(t, prompt, "Have you used Go in production?")
}

func TestGenerateAnswer_ClientError(t *testing.T) {
	client := &stubClient{err: fmt.Errorf("quota exceeded")}
	gen := NewAnswerGenerator(client)

	_, err := gen.GenerateAnswer(context.Background(), testResume(), "Why this company?")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate answer")
}

func TestGenerateAnswer_NoClient(t *testing.T) {
	gen := &AnswerGenerator{}
	_, err := gen.GenerateAnswer(context.Background(), testResume(), "Why this company?")
	assert.Error(t, err)
}
