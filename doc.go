// Package docsite serves a small documentation site whose pages are
// markdown files rendered to HTML on request.
//
// The root package is a thin facade over the HTTP application in
// internal/. Domain logic lives under pkg/:
//
//   - pkg/pages: the registry of page IDs and their markdown locations
//   - pkg/route: maps server requests and URL fragments to targets
//   - pkg/markdown: markdown to sanitized HTML
//   - pkg/content: loads and renders pages from a directory, URL or bucket
//   - pkg/dispatch: server-side dispatch and the client-side navigator
//   - pkg/version: the cached upstream version string
//
// # Quick Start
//
//	app := docsite.New(
//	    docsite.WithLogger(log),
//	    docsite.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Logging(log),
//	        middlewares.Recover(),
//	    ),
//	    docsite.WithHandlers(handlers.NewDocsHandler(server, syncer, views.DefaultSite(reg))),
//	    docsite.WithHealthChecks(),
//	)
//
//	if err := app.Run(":8080", docsite.Logger(log)); err != nil {
//	    log.Error("server stopped", "error", err)
//	}
//
// # Handlers
//
// Handlers implement [Handler] to declare routes:
//
//	func (h *Docs) Routes(r docsite.Router) {
//	    r.Page("/", h.index)
//	    r.GET("/version", h.version)
//	}
//
// A handler returns an error to hand the response to the [ErrorHandler].
// Use c.Error to produce an [HTTPError] with a specific status; errors from
// the bundled middlewares map to a status through [ErrorStatus].
package docsite
