// Package logger builds the application's *slog.Logger.
//
// Loggers write JSON or text to stdout at a configurable level. Request-scoped
// values such as the request id are attached through [ContextExtractor]
// functions evaluated on every log call. When a Sentry DSN is configured,
// warnings and errors are also shipped to Sentry; errors become issues.
//
//	log := logger.NewWithSentry(logger.Config{
//		Level:     "debug",
//		Format:    "text",
//		SentryDSN: os.Getenv("SENTRY_DSN"),
//	}, middlewares.RequestIDExtractor())
//
//	log.InfoContext(ctx, "page served", slog.String("page", "overview"))
//
// [NewNope] returns a logger that discards everything and is the default for
// every component that accepts a WithLogger option.
package logger
