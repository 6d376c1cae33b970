package planning

import "fmt"

// PlanError represents a failure to produce an edit plan
type PlanError struct {
	Message string
	Cause   error
}

func (e *PlanError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("planning: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("planning: %s", e.Message)
}

func (e *PlanError) Unwrap() error {
	return e.Cause
}

// ParseError represents a plan response that could not be decoded even after
// salvage attempts
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("planning: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("planning: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
