package services

import (
	"context"
	"fmt"
	"log"
)

// ProfileAnalyzer extracts the structured candidate profile from resume text.
// Model failures are returned to the caller.
type ProfileAnalyzer struct {
	client        ModelClient
	promptBuilder *PromptBuilder
}

func NewProfileAnalyzer(client ModelClient, promptBuilder *PromptBuilder) *ProfileAnalyzer {
	return &ProfileAnalyzer{
		client:        client,
		promptBuilder: promptBuilder,
	}
}

// Analyze returns the model's reply verbatim.
func (a *ProfileAnalyzer) Analyze(ctx context.Context, resumeText string) (string, error) {
	log.Println("🤖 Extracting candidate profile...")
	return a.submit(ctx, a.promptBuilder.BuildProfilePrompt(resumeText))
}

// submit is the single call path to the model shared with FitEvaluator.
func (a *ProfileAnalyzer) submit(ctx context.Context, prompt string) (string, error) {
	reply, err := a.client.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: error processing resume text: %w", ErrModelProcessing, err)
	}
	return reply, nil
}
