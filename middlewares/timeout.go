package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/docsite/internal"
)

// DefaultTimeout bounds a request when Timeout is given a non-positive value.
const DefaultTimeout = 30 * time.Second

// Timeout returns middleware that gives each request a deadline. The
// deadline is installed on the request context, so content fetches made
// with c.Context() are cancelled when it passes. A handler that returns
// after the deadline without writing a response yields a *TimeoutError.
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), timeout)
			defer cancel()

			c.SetContext(ctx)
			err := next(c)

			if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Written() {
				c.LogWarn("request timeout", "timeout", timeout.String())
				return &TimeoutError{Duration: timeout}
			}
			return err
		}
	}
}
