package tailoring

import "fmt"

// ApplyError represents a failure in the edit-application pass that cannot be
// absorbed as a per-unit "no change"
type ApplyError struct {
	Message string
	Cause   error
}

func (e *ApplyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("tailoring: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("tailoring: %s", e.Message)
}

func (e *ApplyError) Unwrap() error {
	return e.Cause
}
