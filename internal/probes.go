package internal

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/docsite/pkg/health"
)

const (
	livenessPath  = "/health/live"
	readinessPath = "/health/ready"
)

type healthConfig struct {
	checks  health.Checks
	timeout time.Duration
}

func (h *healthConfig) mount(r chi.Router, log *slog.Logger) {
	r.Get(livenessPath, health.LivenessHandler())
	r.Get(readinessPath, health.ReadinessHandler(h.checks,
		health.WithLogger(log),
		health.WithTimeout(h.timeout),
	))
}

// HealthOption configures the probe endpoints.
type HealthOption func(*healthConfig)

// WithReadinessTimeout bounds one readiness probe. Default 5s.
func WithReadinessTimeout(d time.Duration) HealthOption {
	return func(h *healthConfig) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// WithReadinessCheck adds a named check to the readiness probe. A later
// check with the same name replaces the earlier one.
//
//	docsite.WithReadinessCheck("redis", redis.Healthcheck(client))
func WithReadinessCheck(name string, fn func(context.Context) error) HealthOption {
	return func(h *healthConfig) {
		if fn == nil {
			return
		}
		if h.checks == nil {
			h.checks = health.Checks{}
		}
		h.checks[name] = fn
	}
}
