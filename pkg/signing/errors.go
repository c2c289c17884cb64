package signing

import "fmt"

// InvalidPayloadError reports a payload that cannot be signed because it
// contains a value with no canonical representation.
type InvalidPayloadError struct {
	Message string
	Cause   error
}

func (e *InvalidPayloadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("signing: invalid payload: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("signing: invalid payload: %s", e.Message)
}

func (e *InvalidPayloadError) Unwrap() error {
	return e.Cause
}

// NewInvalidPayloadError creates a new invalid payload error
func NewInvalidPayloadError(format string, args ...interface{}) *InvalidPayloadError {
	return &InvalidPayloadError{Message: fmt.Sprintf(format, args...)}
}
