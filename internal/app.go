package internal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/docsite/pkg/logger"
)

// http.Server limits. Pages are small, so the write budget mostly covers
// slow clients.
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
	defaultShutdownTimeout   = 30 * time.Second
)

// App is the documentation site's HTTP application: a chi mux with the
// site's routes, static mounts and probes. Options are applied once in New;
// the App does not change afterwards.
type App struct {
	router                  chi.Router
	logger                  *slog.Logger
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	healthConfig            *healthConfig
	middlewares             []Middleware
	handlers                []Handler
	staticRoutes            []staticRoute
}

// New builds the App.
//
//	app := docsite.New(
//	    docsite.WithLogger(log),
//	    docsite.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    docsite.WithStaticFiles("/assets/", os.DirFS("assets"), "."),
//	    docsite.WithHandlers(handlers.NewDocsHandler(server, syncer, site)),
//	)
func New(opts ...Option) *App {
	a := &App{
		router: chi.NewRouter(),
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.mount()
	return a
}

// Router exposes the chi mux, e.g. for chi.Walk.
func (a *App) Router() chi.Router { return a.router }

func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Run serves the App on addr until its context is cancelled or the process
// receives SIGINT or SIGTERM. An empty addr listens on :8080.
//
//	err := app.Run(":8080",
//	    docsite.Logger(log),
//	    docsite.StartupHook(scheduler.Start),
//	    docsite.ShutdownHook(scheduler.Stop),
//	)
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := newRunConfig(opts)
	if addr != "" {
		cfg.address = addr
	}
	if cfg.logger == nil {
		cfg.logger = a.logger
	}
	return cfg.serve(a.router)
}

// mount registers everything on the mux. chi wants middleware before
// routes, so the order below matters.
func (a *App) mount() {
	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}
	if a.notFoundHandler != nil {
		a.router.NotFound(a.wrapHandler(a.notFoundHandler))
	}
	if a.methodNotAllowedHandler != nil {
		a.router.MethodNotAllowed(a.wrapHandler(a.methodNotAllowedHandler))
	}

	for _, sr := range a.staticRoutes {
		a.router.Mount(sr.pattern, sr.handler)
	}
	if a.healthConfig != nil {
		a.healthConfig.mount(a.router, a.logger)
	}

	r := &chiRouter{mux: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

// wrapHandler adapts h to net/http, routing its error to handleError.
func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a.logger)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// handleError answers a handler error unless a response is already on the
// wire, in which case the error is only logged.
func (a *App) handleError(c Context, err error) {
	switch {
	case c.Written():
		a.logger.WarnContext(c, "error after response started", slog.String("error", err.Error()))
	case a.errorHandler == nil:
		respondError(c, err)
	default:
		if herr := a.errorHandler(c, err); herr != nil {
			a.logger.ErrorContext(c, "error handler failed",
				slog.String("error", err.Error()),
				slog.String("handler_error", herr.Error()),
			)
		}
	}
}

// respondError is the fallback when no ErrorHandler is set: an HTTPError
// keeps its code and message, anything else is a logged 500.
func respondError(c Context, err error) {
	code, msg := http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	if httpErr := AsHTTPError(err); httpErr != nil {
		code, msg = httpErr.Code, httpErr.Message
	} else {
		c.LogError("unhandled error", slog.String("error", err.Error()))
	}
	http.Error(c.Response(), msg, code)
}
