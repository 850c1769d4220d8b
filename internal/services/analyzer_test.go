package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kponna/jobfitai/mocks"
)

// panickingClient simulates a client bug rather than a remote failure.
type panickingClient struct{}

func (panickingClient) Complete(context.Context, string) (string, error) {
	panic("nil pointer in client")
}

func TestPromptBuilder_ProfilePrompt(t *testing.T) {
	prompt := NewPromptBuilder().BuildProfilePrompt("Go developer with 5 years")

	assert.Contains(t, prompt, "DO NOT show your chain of thought")
	assert.Contains(t, prompt, "Respond ONLY in English")
	assert.Contains(t, prompt, `top-level key called "analysis"`)
	assert.Contains(t, prompt, "Resume Text:\nGo developer with 5 years")
	assert.Contains(t, prompt, "```\n{\n  \"analysis\": {")
	assert.Contains(t, prompt, "no extra commentary")
}

func TestPromptBuilder_FitPrompt(t *testing.T) {
	prompt := NewPromptBuilder().BuildFitPrompt("resume body", "Senior Go role")

	assert.Contains(t, prompt, "DO NOT show your chain of thought")
	assert.Contains(t, prompt, "match score (0-100)")
	assert.Contains(t, prompt, "Resume Text:\nresume body")
	assert.Contains(t, prompt, "Job Description:\nSenior Go role")
	for _, key := range []string{`"job_match"`, `"match_score": <integer>`, `"strong_match"`, `"weak_match"`, `"missing_skills"`, `"recommendations"`} {
		assert.Contains(t, prompt, key)
	}
	assert.True(t, strings.Index(prompt, "Resume Text:") < strings.Index(prompt, "Job Description:"))
}

func TestProfileAnalyzer_ReturnsReplyVerbatim(t *testing.T) {
	client := new(mocks.MockModelClient)
	client.On("Complete", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "Resume Text:\nExperienced engineer")
	})).Return("```json\n{\"analysis\":{}}\n```", nil)

	got, err := NewProfileAnalyzer(client, NewPromptBuilder()).Analyze(context.Background(), "Experienced engineer")

	require.NoError(t, err)
	assert.Equal(t, "```json\n{\"analysis\":{}}\n```", got)
	client.AssertExpectations(t)
}

func TestProfileAnalyzer_PropagatesClientError(t *testing.T) {
	client := new(mocks.MockModelClient)
	cause := errors.New("401 unauthorized")
	client.On("Complete", mock.Anything, mock.Anything).Return("", cause)

	_, err := NewProfileAnalyzer(client, NewPromptBuilder()).Analyze(context.Background(), "text")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrModelProcessing)
	assert.ErrorIs(t, err, cause)
}

func TestFitEvaluator_ReturnsReplyVerbatim(t *testing.T) {
	client := new(mocks.MockModelClient)
	client.On("Complete", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "Job Description:\nBackend role")
	})).Return(`{"job_match":{"match_score":82}}`, nil)
	analyzer := NewProfileAnalyzer(client, NewPromptBuilder())

	got := NewFitEvaluator(analyzer, NewPromptBuilder()).Evaluate(context.Background(), "resume", "Backend role")

	assert.Equal(t, `{"job_match":{"match_score":82}}`, got)
}

func TestFitEvaluator_ErrorBecomesEmptyObject(t *testing.T) {
	client := new(mocks.MockModelClient)
	client.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("timeout"))
	analyzer := NewProfileAnalyzer(client, NewPromptBuilder())

	got := NewFitEvaluator(analyzer, NewPromptBuilder()).Evaluate(context.Background(), "resume", "jd")

	assert.Equal(t, "{}", got)
}

func TestFitEvaluator_EmptyInputsStillCallModel(t *testing.T) {
	client := new(mocks.MockModelClient)
	client.On("Complete", mock.Anything, mock.Anything).Return("reply", nil)
	analyzer := NewProfileAnalyzer(client, NewPromptBuilder())

	got := NewFitEvaluator(analyzer, NewPromptBuilder()).Evaluate(context.Background(), "", "")

	assert.Equal(t, "reply", got)
}

func TestFitEvaluator_PanicBecomesEmptyObject(t *testing.T) {
	analyzer := NewProfileAnalyzer(panickingClient{}, NewPromptBuilder())

	got := NewFitEvaluator(analyzer, NewPromptBuilder()).Evaluate(context.Background(), "resume", "jd")

	assert.Equal(t, EmptyFeedback, got)
}
