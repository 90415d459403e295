package internal

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Component renders HTML. templ.Component satisfies it.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// Context is what a HandlerFunc receives for one page request. It is also
// a context.Context backed by the request's context, so it can be passed
// straight to the loader or the version store.
type Context interface {
	context.Context

	// Request and Response give access to the raw net/http values.
	Request() *http.Request
	Response() http.ResponseWriter
	ResponseWriter() *ResponseWriter

	// Context returns the request context.
	Context() context.Context
	// SetContext replaces the request context for the rest of the chain,
	// e.g. to attach a deadline.
	SetContext(ctx context.Context)

	// Param returns a chi URL parameter.
	Param(name string) string
	// Query returns a query parameter, or "".
	Query(name string) string
	// QueryDefault returns a query parameter, or def when it is empty.
	QueryDefault(name, def string) string
	// Header returns a request header.
	Header(name string) string
	// Partial reports whether htmx asked for a fragment (HX-Request: true)
	// rather than a full page.
	Partial() bool

	// SetHeader sets a response header.
	SetHeader(name, value string)
	// Render writes component as text/html.
	Render(code int, component Component) error
	// JSON writes v as application/json.
	JSON(code int, v any) error
	// String writes s as text/plain.
	String(code int, s string) error
	NoContent(code int) error
	Redirect(code int, url string) error
	// Written reports whether the status line was sent.
	Written() bool

	// Error builds an HTTPError for the handler to return; nothing is written.
	Error(code int, message string) *HTTPError

	// LogWarn and LogError log with the request context, so records carry
	// attributes added by context extractors such as the request ID.
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a request-scoped value; Get reads it back, or nil.
	Set(key, value any)
	Get(key any) any
}

type requestContext struct {
	request  *http.Request
	response *ResponseWriter
	logger   *slog.Logger
}

func newContext(w http.ResponseWriter, r *http.Request, logger *slog.Logger) *requestContext {
	return &requestContext{request: r, response: NewResponseWriter(w), logger: logger}
}

// context.Context, delegated to the current request.

func (c *requestContext) Deadline() (time.Time, bool) { return c.request.Context().Deadline() }
func (c *requestContext) Done() <-chan struct{}       { return c.request.Context().Done() }
func (c *requestContext) Err() error                  { return c.request.Context().Err() }
func (c *requestContext) Value(key any) any           { return c.request.Context().Value(key) }

func (c *requestContext) Request() *http.Request          { return c.request }
func (c *requestContext) Response() http.ResponseWriter   { return c.response }
func (c *requestContext) ResponseWriter() *ResponseWriter { return c.response }
func (c *requestContext) Context() context.Context        { return c.request.Context() }
func (c *requestContext) SetContext(ctx context.Context)  { c.request = c.request.WithContext(ctx) }
func (c *requestContext) Param(name string) string        { return chi.URLParam(c.request, name) }
func (c *requestContext) Query(name string) string        { return c.request.URL.Query().Get(name) }
func (c *requestContext) Header(name string) string       { return c.request.Header.Get(name) }
func (c *requestContext) Partial() bool                   { return c.Header("HX-Request") == "true" }
func (c *requestContext) SetHeader(name, value string)    { c.response.Header().Set(name, value) }
func (c *requestContext) Written() bool                   { return c.response.Written() }

func (c *requestContext) Error(code int, message string) *HTTPError {
	return NewHTTPError(code, message)
}

func (c *requestContext) QueryDefault(name, def string) string {
	if v := c.Query(name); v != "" {
		return v
	}
	return def
}

// send writes the status with contentType, then the body produced by write.
func (c *requestContext) send(code int, contentType string, write func(w io.Writer) error) error {
	if contentType != "" {
		c.response.Header().Set("Content-Type", contentType)
	}
	c.response.WriteHeader(code)
	if write == nil {
		return nil
	}
	return write(c.response)
}

func (c *requestContext) Render(code int, component Component) error {
	return c.send(code, "text/html; charset=utf-8", func(w io.Writer) error {
		return component.Render(c.request.Context(), w)
	})
}

func (c *requestContext) JSON(code int, v any) error {
	return c.send(code, "application/json; charset=utf-8", func(w io.Writer) error {
		return json.NewEncoder(w).Encode(v)
	})
}

func (c *requestContext) String(code int, s string) error {
	return c.send(code, "text/plain; charset=utf-8", func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func (c *requestContext) NoContent(code int) error {
	return c.send(code, "", nil)
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	c.SetContext(context.WithValue(c.request.Context(), key, value))
}

func (c *requestContext) Get(key any) any { return c.request.Context().Value(key) }
