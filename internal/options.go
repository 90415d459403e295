package internal

import (
	"io/fs"
	"log/slog"
)

// Option configures an App at construction time.
type Option func(*App)

// WithLogger sets the logger handed to every request Context.
// A nil logger keeps the default no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMiddleware appends global middleware. The first one given runs first.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers adds route declarers, called once by New in order.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithErrorHandler replaces the default error responder.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) { a.errorHandler = h }
}

// WithNotFoundHandler answers requests no route matched. Page routes
// usually catch everything, so this mostly covers other methods' paths.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) { a.notFoundHandler = h }
}

// WithMethodNotAllowedHandler answers a known path requested with a method
// it does not serve.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) { a.methodNotAllowedHandler = h }
}

// DefaultStaticCacheControl is sent with static files unless overridden.
const DefaultStaticCacheControl = "public, max-age=3600"

// StaticOption configures one static mount.
type StaticOption func(*staticRoute)

// StaticCacheControl sets the Cache-Control header for the mount. Raw
// documentation that is edited in place wants "no-cache".
func StaticCacheControl(v string) StaticOption {
	return func(sr *staticRoute) { sr.cacheControl = v }
}

// WithStaticFiles serves fsys, rooted at subDir, under pattern. Directory
// listings are refused. New panics when subDir is not a valid path in fsys.
//
// Example:
//
//	docsite.WithStaticFiles("/public/", os.DirFS("public"), ".", docsite.StaticCacheControl("no-cache"))
func WithStaticFiles(pattern string, fsys fs.FS, subDir string, opts ...StaticOption) Option {
	return func(a *App) {
		sr := staticRoute{pattern: pattern, cacheControl: DefaultStaticCacheControl}
		for _, opt := range opts {
			opt(&sr)
		}
		h, err := staticHandler(pattern, fsys, subDir, sr.cacheControl)
		if err != nil {
			panic(err)
		}
		sr.handler = h
		a.staticRoutes = append(a.staticRoutes, sr)
	}
}

// WithHealthChecks serves liveness and readiness probes on /health/live
// and /health/ready.
//
// Example:
//
//	docsite.WithHealthChecks(
//	    docsite.WithReadinessCheck("docs", content.Healthcheck(src, "overview.md")),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}
