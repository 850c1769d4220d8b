package services

import (
	"fmt"
)

const (
	promptPreamble = `You are an AI job resume matcher assistant. DO NOT show your chain of thought. Respond ONLY in English.`
	codeFence      = "```"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildProfilePrompt asks the model to extract the candidate profile as JSON
// under a top-level "analysis" key.
func (pb *PromptBuilder) BuildProfilePrompt(resumeText string) string {
	return fmt.Sprintf(`%s Extract the key skills, experiences, education, achievements, etc. from the following resume text. Then produce the final output as a well-structured JSON with a top-level key called "analysis". Inside "analysis", you can have subkeys like "key_skills", "experiences", "education", etc. Return ONLY the final JSON, with no extra commentary.

Resume Text:
%s

Required Format (example):
%s
{
  "analysis": {
    "key_skills": [...],
    "experiences": [...],
    "education": [...],
    "achievements": [...],
    ...
  }
}
%s
`, promptPreamble, resumeText, codeFence, codeFence)
}

// BuildFitPrompt asks the model to score the resume against the job
// description and list gaps and recommendations under "job_match".
func (pb *PromptBuilder) BuildFitPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`%s Compare the following resume text with the job description. Calculate a match score (0-100) for how well the resume matches. Identify keywords from the job description that are missing in the resume. Provide bullet-point recommendations to improve the resume for better alignment.

Resume Text:
%s

Job Description:
%s

Return JSON ONLY in this format:
{
  "job_match": {
    "match_score": <integer>,
    "job_alignment": {
      "strong_match": [...],
      "weak_match": [...]
    },
    "missing_skills": [...],
    "recommendations": [
      "<Actionable Suggestion 1>",
      "<Actionable Suggestion 2>",
      ...
    ]
  }
}`, promptPreamble, resumeText, jobDescription)
}
