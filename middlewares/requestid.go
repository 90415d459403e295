package middlewares

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/dmitrymomot/docsite/internal"
	"github.com/dmitrymomot/docsite/pkg/logger"
)

type requestIDKey struct{}

// RequestIDHeader is the response header carrying the request ID.
const RequestIDHeader = "X-Request-ID"

// MaxRequestIDLength caps IDs accepted from upstream headers.
const MaxRequestIDLength = 128

// DefaultTrustedHeaders are checked in order for an ID set by a proxy.
var DefaultTrustedHeaders = []string{"X-Request-ID", "X-Correlation-ID"}

type requestIDOptions struct {
	generate func() string
	headers  []string
	echo     string
}

// RequestIDOption configures RequestID.
type RequestIDOption func(*requestIDOptions)

// WithTrustedHeaders replaces the headers an upstream ID is read from.
// With no headers every request gets a fresh ID.
func WithTrustedHeaders(headers ...string) RequestIDOption {
	return func(o *requestIDOptions) {
		o.headers = headers
	}
}

// WithIDGenerator replaces uuid.NewString.
func WithIDGenerator(gen func() string) RequestIDOption {
	return func(o *requestIDOptions) {
		if gen != nil {
			o.generate = gen
		}
	}
}

// WithEchoHeader sets the response header the ID is written to.
func WithEchoHeader(name string) RequestIDOption {
	return func(o *requestIDOptions) {
		if name != "" {
			o.echo = name
		}
	}
}

// RequestID tags each page request with an ID, reusing a well-formed
// upstream ID when one of the trusted headers carries it. The ID is echoed
// in the response and attached to log records through RequestIDExtractor.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	o := requestIDOptions{
		generate: uuid.NewString,
		headers:  DefaultTrustedHeaders,
		echo:     RequestIDHeader,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			id := upstreamID(c, o.headers)
			if id == "" {
				id = o.generate()
			}

			c.Set(requestIDKey{}, id)
			c.SetHeader(o.echo, id)

			return next(c)
		}
	}
}

// upstreamID returns the first acceptable ID among headers.
func upstreamID(c internal.Context, headers []string) string {
	for _, h := range headers {
		if v := strings.TrimSpace(c.Header(h)); validRequestID(v) {
			return v
		}
	}
	return ""
}

// validRequestID rejects empty, oversized or non-printable values so client
// input cannot forge log lines.
func validRequestID(v string) bool {
	if v == "" || len(v) > MaxRequestIDLength {
		return false
	}
	for _, r := range v {
		if r > unicode.MaxASCII || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// GetRequestID returns the ID assigned to the current request, or "".
func GetRequestID(c internal.Context) string {
	id, _ := c.Get(requestIDKey{}).(string)
	return id
}

// RequestIDExtractor adds "request_id" to records logged with a request context.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		id, _ := ctx.Value(requestIDKey{}).(string)
		if id == "" {
			return slog.Attr{}, false
		}
		return slog.String("request_id", id), true
	}
}
