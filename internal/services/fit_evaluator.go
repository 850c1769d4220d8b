package services

import (
	"context"
	"log"
)

// EmptyFeedback is returned in place of recommendations when the fit call fails.
const EmptyFeedback = "{}"

// FitEvaluator scores a resume against a job description. It never fails.
type FitEvaluator struct {
	analyzer      *ProfileAnalyzer
	promptBuilder *PromptBuilder
}

func NewFitEvaluator(analyzer *ProfileAnalyzer, promptBuilder *PromptBuilder) *FitEvaluator {
	return &FitEvaluator{
		analyzer:      analyzer,
		promptBuilder: promptBuilder,
	}
}

// Evaluate returns the model's reply verbatim, or EmptyFeedback on any error.
func (f *FitEvaluator) Evaluate(ctx context.Context, resumeText, jobDescription string) (feedback string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Error in generating feedback: %v\n", r)
			feedback = EmptyFeedback
		}
	}()

	log.Println("🤖 Evaluating job fit...")
	reply, err := f.analyzer.submit(ctx, f.promptBuilder.BuildFitPrompt(resumeText, jobDescription))
	if err != nil {
		log.Printf("❌ Error in generating feedback: %v\n", err)
		return EmptyFeedback
	}
	return reply
}
