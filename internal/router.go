package internal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Router is what a Handler sees when it declares routes.
type Router interface {
	// GET registers h for GET only.
	GET(path string, h HandlerFunc, mw ...Middleware)

	// HEAD registers h for HEAD only.
	HEAD(path string, h HandlerFunc, mw ...Middleware)

	// Page registers h for GET and HEAD, the two methods a documentation
	// page answers. Link checkers and uptime probes send HEAD.
	Page(path string, h HandlerFunc, mw ...Middleware)

	// Route mounts a sub-router under pattern.
	Route(pattern string, fn func(r Router))

	// Use adds middleware for the routes declared after it on this router.
	Use(mw ...Middleware)
}

type chiRouter struct {
	mux chi.Router
	app *App
}

func (r *chiRouter) GET(path string, h HandlerFunc, mw ...Middleware) {
	r.mux.Method(http.MethodGet, path, r.handler(h, mw))
}

func (r *chiRouter) HEAD(path string, h HandlerFunc, mw ...Middleware) {
	r.mux.Method(http.MethodHead, path, r.handler(h, mw))
}

func (r *chiRouter) Page(path string, h HandlerFunc, mw ...Middleware) {
	hf := r.handler(h, mw)
	r.mux.Method(http.MethodGet, path, hf)
	r.mux.Method(http.MethodHead, path, hf)
}

func (r *chiRouter) Route(pattern string, fn func(Router)) {
	r.mux.Route(pattern, func(sub chi.Router) {
		fn(&chiRouter{mux: sub, app: r.app})
	})
}

func (r *chiRouter) Use(mw ...Middleware) {
	for _, m := range mw {
		r.mux.Use(r.app.adaptMiddleware(m))
	}
}

// handler applies route middleware so that mw[0] is outermost.
func (r *chiRouter) handler(h HandlerFunc, mw []Middleware) http.HandlerFunc {
	return r.app.wrapHandler(chain(h, mw))
}

func chain(h HandlerFunc, mw []Middleware) HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

// adaptMiddleware runs mw in front of a plain http.Handler. Errors returned
// by mw itself, such as a recovered panic raised further down the chain,
// go to the app's error handling.
func (a *App) adaptMiddleware(mw Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		h := mw(func(c Context) error {
			next.ServeHTTP(c.Response(), c.Request())
			return nil
		})
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := newContext(w, r, a.logger)
			if err := h(c); err != nil {
				a.handleError(c, err)
			}
		})
	}
}
