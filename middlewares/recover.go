package middlewares

import (
	"errors"
	"net/http"
	"runtime"

	"github.com/dmitrymomot/docsite/internal"
)

// DefaultStackSize bounds the stack captured for a recovered panic, in bytes.
const DefaultStackSize = 4096

type recoverOptions struct {
	stackSize int
	noStack   bool
}

// RecoverOption configures Recover.
type RecoverOption func(*recoverOptions)

// WithStackSize bounds the captured stack. Non-positive sizes are ignored.
func WithStackSize(size int) RecoverOption {
	return func(o *recoverOptions) {
		if size > 0 {
			o.stackSize = size
		}
	}
}

// WithoutStack turns off stack capture.
func WithoutStack() RecoverOption {
	return func(o *recoverOptions) {
		o.noStack = true
	}
}

// Recover converts a panic in a page handler into a *PanicError so the
// error handler can answer with a 500 instead of dropping the connection.
//
// http.ErrAbortHandler is re-raised: net/http uses it to abort a response
// on purpose.
func Recover(opts ...RecoverOption) internal.Middleware {
	o := recoverOptions{stackSize: DefaultStackSize}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if e, ok := v.(error); ok && errors.Is(e, http.ErrAbortHandler) {
					panic(v)
				}

				pe := &PanicError{Value: v}
				if !o.noStack {
					buf := make([]byte, o.stackSize)
					pe.Stack = buf[:runtime.Stack(buf, false)]
				}

				req := c.Request()
				attrs := []any{"panic", v, "method", req.Method, "path", req.URL.Path}
				if pe.Stack != nil {
					attrs = append(attrs, "stack", string(pe.Stack))
				}
				c.LogError("page handler panicked", attrs...)

				err = pe
			}()

			return next(c)
		}
	}
}
