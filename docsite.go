package docsite

import (
	"context"
	"io/fs"
	"log/slog"
	"net"
	"time"

	"github.com/dmitrymomot/docsite/internal"
	"github.com/dmitrymomot/docsite/middlewares"
	"github.com/dmitrymomot/docsite/pkg/health"
	"github.com/dmitrymomot/docsite/pkg/logger"
)

// Type aliases - public API
type (
	// App is the HTTP application: routing, middleware and graceful shutdown.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// Component is the interface for renderable templates.
	Component = internal.Component

	// HTTPError is an error carrying an HTTP status code.
	HTTPError = internal.HTTPError

	// ResponseWriter tracks status and size of a response.
	ResponseWriter = internal.ResponseWriter

	// ContextExtractor extracts a slog attribute from context.
	ContextExtractor = logger.ContextExtractor
)

// New creates an application with the given options.
//
// Example:
//
//	app := docsite.New(
//	    docsite.WithLogger(log),
//	    docsite.WithMiddleware(middlewares.RequestID()),
//	    docsite.WithHandlers(handlers.NewDocs(server, syncer, layout)),
//	)
//
//	err := app.Run(":8080", docsite.Logger(log))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// App options

// WithMiddleware adds global middleware. Middleware runs in the order given.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithStaticFiles mounts fsys (rooted at subDir) under pattern.
// Directory listings are disabled.
//
//	//go:embed static
//	var assets embed.FS
//
//	docsite.WithStaticFiles("/static/", assets, "static")
func WithStaticFiles(pattern string, fsys fs.FS, subDir string, opts ...StaticOption) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir, opts...)
}

// StaticOption configures a static mount.
type StaticOption = internal.StaticOption

// StaticCacheControl sets the Cache-Control header of a static mount.
func StaticCacheControl(v string) StaticOption {
	return internal.StaticCacheControl(v)
}

// WithErrorHandler sets the handler for errors returned from routes.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithHealthChecks enables the liveness and readiness endpoints.
//
//	docsite.WithHealthChecks(
//	    docsite.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

// Health check options

// WithReadinessTimeout bounds a single readiness probe.
func WithReadinessTimeout(d time.Duration) HealthOption {
	return internal.WithReadinessTimeout(d)
}

// WithReadinessCheck adds a named readiness check.
// Checks run in parallel during a readiness probe.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Logger sets the runtime logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout bounds graceful shutdown, hooks included.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function to run after the port is bound and
// before requests are served. A failing hook stops the server.
//
//	docsite.StartupHook(scheduler.Start)
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a cleanup function. Hooks run in registration order.
//
//	docsite.ShutdownHook(redis.Shutdown(client))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets the base context. Cancelling it shuts the server down.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// OnReady is called with the bound address once the server accepts connections.
func OnReady(fn func(net.Addr)) RunOption {
	return internal.OnReady(fn)
}

// Logging

// RequestIDExtractor adds "request_id" to log records.
// Use it together with middlewares.RequestID.
func RequestIDExtractor() ContextExtractor {
	return middlewares.RequestIDExtractor()
}

// Errors

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, message string) *HTTPError {
	return internal.NewHTTPError(code, message)
}

// AsHTTPError returns the HTTPError wrapped by err, or nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// ErrorStatus returns the response status for errors raised by the bundled
// middlewares (panics and timeouts), or 0 when err is not one of them.
func ErrorStatus(err error) int {
	return middlewares.StatusCode(err)
}
