package gateway

import "fmt"

// APIError represents a non-success HTTP response from the gateway
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway: request failed with status %d: %s", e.Status, e.Body)
}

// ResponseError represents a gateway response body that could not be
// interpreted
type ResponseError struct {
	Message string
	Cause   error
}

func (e *ResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("gateway: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("gateway: %s", e.Message)
}

func (e *ResponseError) Unwrap() error {
	return e.Cause
}
