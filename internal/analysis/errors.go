package analysis

import "fmt"

// AnalysisError represents a failure to analyze a job posting
type AnalysisError struct {
	Message string
	Cause   error
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("job analysis failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("job analysis failed: %s", e.Message)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}
