package middlewares

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// PanicError carries a panic recovered by Recover.
type PanicError struct {
	Value any
	// Stack is the captured goroutine stack, nil when capture is disabled.
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// StatusCode is the response status a recovered panic maps to.
func (e *PanicError) StatusCode() int { return http.StatusInternalServerError }

// TimeoutError is returned by Timeout when a handler ran past its deadline
// without writing a response.
type TimeoutError struct {
	Duration time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timeout after %s", e.Duration)
}

// StatusCode is the response status a timed out page request maps to.
func (e *TimeoutError) StatusCode() int { return http.StatusGatewayTimeout }

// IsPanicError reports whether err wraps a *PanicError.
func IsPanicError(err error) bool {
	_, ok := AsPanicError(err)
	return ok
}

// IsTimeoutError reports whether err wraps a *TimeoutError.
func IsTimeoutError(err error) bool {
	_, ok := AsTimeoutError(err)
	return ok
}

// AsPanicError unwraps err to a *PanicError.
func AsPanicError(err error) (*PanicError, bool) {
	return as[*PanicError](err)
}

// AsTimeoutError unwraps err to a *TimeoutError.
func AsTimeoutError(err error) (*TimeoutError, bool) {
	return as[*TimeoutError](err)
}

// StatusCode maps errors produced by this package to a response status.
// A deadline that expired above the route level counts as a timeout.
// It returns 0 for anything else.
func StatusCode(err error) int {
	if pe, ok := AsPanicError(err); ok {
		return pe.StatusCode()
	}
	if te, ok := AsTimeoutError(err); ok {
		return te.StatusCode()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return 0
}

func as[T error](err error) (T, bool) {
	var target T
	ok := errors.As(err, &target)
	return target, ok
}
