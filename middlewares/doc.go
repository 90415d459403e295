// Package middlewares provides the HTTP middleware used by the docsite server.
//
// RequestID assigns every request an ID, taken from an upstream header when
// one is present and generated otherwise. Pair it with RequestIDExtractor so
// the ID shows up on every log record:
//
//	log := logger.New(cfg, middlewares.RequestIDExtractor())
//	app := docsite.New(
//	    docsite.WithLogger(log),
//	    docsite.WithMiddleware(middlewares.RequestID()),
//	)
//
// Recover converts panics into *PanicError and Timeout puts a deadline on
// the request context. A timeout applied per route surfaces as *TimeoutError.
// Applied globally, the handler sees context.DeadlineExceeded instead.
// Logging writes one access record per request.
//
// Recommended order:
//
//	docsite.WithMiddleware(
//	    middlewares.RequestID(),
//	    middlewares.Logging(log),
//	    middlewares.Recover(),
//	    middlewares.Timeout(10*time.Second),
//	)
package middlewares
