package logger

import "errors"

// ErrSentryFlushTimeout is returned when buffered Sentry events could not be
// delivered before the shutdown deadline.
var ErrSentryFlushTimeout = errors.New("logger: sentry flush timed out")
