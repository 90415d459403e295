package internal

import (
	"errors"
	"net/http"
)

// HTTPError is a handler error that already knows its response: a status
// code and a message safe to show. The cause, if any, is kept for logs.
type HTTPError struct {
	Err     error
	Message string
	Code    int
}

func (e *HTTPError) Error() string { return e.Message }

func (e *HTTPError) Unwrap() error { return e.Err }

// StatusCode returns Code.
func (e *HTTPError) StatusCode() int { return e.Code }

// StatusText returns the standard text for Code.
func (e *HTTPError) StatusText() string { return http.StatusText(e.Code) }

// NewHTTPError creates an HTTPError. An empty message falls back to the
// status text.
func NewHTTPError(code int, message string) *HTTPError {
	if message == "" {
		message = http.StatusText(code)
	}
	return &HTTPError{Code: code, Message: message}
}

// Wrap attaches cause to the error and returns it.
func (e *HTTPError) Wrap(cause error) *HTTPError {
	e.Err = cause
	return e
}

// AsHTTPError returns the *HTTPError in err's chain, or nil.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}

// IsHTTPError reports whether err's chain holds an *HTTPError.
func IsHTTPError(err error) bool {
	return AsHTTPError(err) != nil
}
