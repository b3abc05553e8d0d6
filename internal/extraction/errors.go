package extraction

import "fmt"

// ParseError represents a failure to parse or validate model output.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
