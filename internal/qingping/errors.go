package qingping

import "fmt"

// ErrorKind classifies client failures so callers can present them distinctly.
type ErrorKind string

const (
	ErrorKindAuth       ErrorKind = "auth"
	ErrorKindNetwork    ErrorKind = "network"
	ErrorKindRateLimit  ErrorKind = "rate_limit"
	ErrorKindValidation ErrorKind = "validation"
)

// APIError is the error type returned by Client for every failure mode.
// Match it with errors.As and branch on Kind.
type APIError struct {
	Kind    ErrorKind
	Message string
	// Status is the HTTP status code when a response was received, 0 otherwise.
	Status int
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("[%s] %s (status %d)", e.Kind, e.Message, e.Status)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, status int, format string, args ...any) *APIError {
	return &APIError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Status:  status,
	}
}
