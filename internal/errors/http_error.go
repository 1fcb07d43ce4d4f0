package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// GenericMessage is shown when a failed call carries no usable detail.
const GenericMessage = "Something went wrong. Please try again."

// HTTPError represents an error with an associated HTTP status code.
// Message holds the server-provided detail and may be empty.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote returned %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("remote returned %d: %s", e.Code, e.Message)
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// Helper for common errors
var (
	ErrBadRequest    = func(msg string) *HTTPError { return NewHTTPError(http.StatusBadRequest, msg) }
	ErrNotFound      = func(msg string) *HTTPError { return NewHTTPError(http.StatusNotFound, msg) }
	ErrUnprocessable = func(msg string) *HTTPError { return NewHTTPError(http.StatusUnprocessableEntity, msg) }
)

// UserMessage picks the text to show an operator for a failed remote call:
// the server's detail when there is one, the generic message otherwise.
func UserMessage(err error) string {
	var he *HTTPError
	if stderrors.As(err, &he) && he.Message != "" {
		return he.Message
	}
	return GenericMessage
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var he *HTTPError
	if stderrors.As(err, &he) {
		return he.Code
	}
	return 0
}
