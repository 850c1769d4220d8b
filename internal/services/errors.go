package services

import (
	"errors"
	"fmt"
)

var (
	ErrMissingInput        = errors.New("missing resume or job description")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrModelProcessing     = errors.New("model processing failed")
)

type ErrorKind string

const (
	KindMissingInput        ErrorKind = "missing_input"
	KindUnsupportedFileType ErrorKind = "unsupported_file_type"
	KindUnexpected          ErrorKind = "unexpected"
)

// AnalysisError is what Pipeline.Analyze returns on failure. Message is safe
// to show to the caller as-is.
type AnalysisError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AnalysisError) Error() string {
	return e.Message
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

func missingInputError() *AnalysisError {
	return &AnalysisError{
		Kind:    KindMissingInput,
		Message: "Please upload a resume and enter a job description.",
		Err:     ErrMissingInput,
	}
}

func unsupportedFileTypeError(err error) *AnalysisError {
	return &AnalysisError{
		Kind:    KindUnsupportedFileType,
		Message: fmt.Sprintf("Unsupported file type or processing error: %v", err),
		Err:     err,
	}
}

func unexpectedError(err error) *AnalysisError {
	return &AnalysisError{
		Kind:    KindUnexpected,
		Message: fmt.Sprintf("An unexpected error occurred: %v", err),
		Err:     err,
	}
}

// KindOf reports the AnalysisError kind carried by err, or KindUnexpected.
func KindOf(err error) ErrorKind {
	var analysisErr *AnalysisError
	if errors.As(err, &analysisErr) {
		return analysisErr.Kind
	}
	return KindUnexpected
}
