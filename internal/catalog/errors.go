package catalog

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable wraps transport failures talking to the API.
	ErrUnavailable = errors.New("catalog api unavailable")
	// ErrUnrecognizedShape reports a list body that is neither an array nor a results envelope.
	ErrUnrecognizedShape = errors.New("unrecognized collection structure")
)

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	// Message is the server supplied "message" field, empty when absent.
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("catalog api: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("catalog api: status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// ShapeError describes why a collection body was rejected.
type ShapeError struct {
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnrecognizedShape, e.Reason)
}

func (e *ShapeError) Unwrap() error {
	return ErrUnrecognizedShape
}

// ServerMessage returns the message the server attached to err, if any.
func ServerMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}
