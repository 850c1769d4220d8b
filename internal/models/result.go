package models

// AnalyzeRequest is one resume-against-job analysis. FileType is optional and
// inferred from ResumePath when empty.
type AnalyzeRequest struct {
	ResumePath     string `json:"resume_path" yaml:"resume_path"`
	JobDescription string `json:"job_description" yaml:"job_description"`
	FileType       string `json:"file_type,omitempty" yaml:"file_type,omitempty"`
}

// AnalysisResult carries the two model replies verbatim.
type AnalysisResult struct {
	Analysis        string `json:"analysis" yaml:"analysis"`
	Recommendations string `json:"recommendations" yaml:"recommendations"`
}

type ErrorResponse struct {
	Error string `json:"error" yaml:"error"`
}
