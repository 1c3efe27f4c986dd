package backend

import (
	"errors"
	"fmt"
)

// APIError is a failure reported by the blob-storage service itself, as
// opposed to a local logic fault. Code is the service's error code string
// (for example "NoSuchKey") and is the sole input to classification.
type APIError struct {
	// Code is the service error code.
	Code string

	// Message is the human-readable service message.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AsAPIError reports whether err originated from the backend API and, if so,
// returns it.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
