package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/docsite/internal"
)

// Logging returns middleware that writes one access record per request.
// Server errors log at error level, client errors at warn, the rest at info.
func Logging(log *slog.Logger) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			rw := c.ResponseWriter()
			status := rw.Status()
			if !rw.Written() && err != nil {
				// The error handler has not run yet; report what it will most likely send.
				status = http.StatusInternalServerError
				if he := internal.AsHTTPError(err); he != nil {
					status = he.Code
				}
			}

			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Int64("size", rw.Size()),
				slog.Duration("duration", time.Since(start)),
			}
			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
			}

			level := slog.LevelInfo
			switch {
			case status >= http.StatusInternalServerError:
				level = slog.LevelError
			case status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}
			log.Log(c.Context(), level, "http request", attrs...)
			return err
		}
	}
}
