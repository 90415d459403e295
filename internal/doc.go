// Package internal is the small HTTP layer the documentation site runs on.
// Import the root docsite package instead; it re-exports what is public.
//
// An App is a chi mux assembled once from options: global middleware,
// route declarers (Handler), static mounts and liveness/readiness probes.
// Route handlers get a Context, a context.Context that also carries the
// request, the status-recording ResponseWriter and rendering helpers for
// templ components, JSON and text.
//
// Documentation pages are declared with Router.Page so they answer both
// GET and HEAD; htmx requests can be detected with Context.Partial:
//
//	func (h *Docs) Routes(r internal.Router) {
//	    r.GET("/version", h.version)
//	    r.Page("/", h.page)
//	    r.Page("/*", h.page)
//	}
//
// A returned error goes to the ErrorHandler unless the response already
// started. Without one, an *HTTPError is sent with its code and message and
// anything else is a logged 500.
//
// App.Run binds the listener, runs startup hooks (the version scheduler),
// serves until SIGINT, SIGTERM or context cancellation, then drains and runs
// shutdown hooks in registration order within the shutdown timeout.
package internal
