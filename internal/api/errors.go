package api

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed is returned when a response is not valid JSON or lacks
	// a required key.
	ErrMalformed = errors.New("malformed response")
	// ErrMissingCSRF is returned when no csrftoken cookie could be obtained
	// before a write.
	ErrMissingCSRF = errors.New("missing csrf token")
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Temporary reports whether the server failed in a way worth retrying.
func (e *StatusError) Temporary() bool {
	return e.Code >= 500
}

// SubmitError is returned when the server rejects a report or suggestion.
type SubmitError struct {
	Code    int
	Message string
}

func (e *SubmitError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("submission rejected (status %d)", e.Code)
	}
	return e.Message
}

func malformed(path string, err error) error {
	if err == nil {
		return fmt.Errorf("%s: %w", path, ErrMalformed)
	}
	return fmt.Errorf("%s: %w: %v", path, ErrMalformed, err)
}
