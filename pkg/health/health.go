package health

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/docsite/pkg/logger"
)

const defaultTimeout = 5 * time.Second

// Check and overall statuses.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// CheckFunc reports whether a dependency, such as the documentation source
// or the Redis version store, is usable.
type CheckFunc func(ctx context.Context) error

// Checks maps check names to functions.
type Checks map[string]CheckFunc

// Response is the JSON body of a probe.
type Response struct {
	Checks map[string]Check `json:"checks,omitempty"`
	Status string           `json:"status"`
}

// Check is the outcome of one check.
type Check struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	// Took is the check's wall time, e.g. "1.2ms".
	Took string `json:"took"`
}

type config struct {
	logger  *slog.Logger
	timeout time.Duration
}

// Option configures ReadinessHandler.
type Option func(*config)

// WithTimeout bounds a whole probe. Checks still running when it expires
// fail with ErrCheckTimeout. Default 5s.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger logs failing checks at warn level.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{timeout: defaultTimeout, logger: logger.NewNope()}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

type outcome struct {
	name  string
	check Check
}

// runChecks runs every check concurrently under one deadline and collects
// the outcomes. The probe is unhealthy as soon as one check fails.
func runChecks(ctx context.Context, checks Checks, cfg *config) *Response {
	resp := &Response{Status: StatusHealthy}
	if len(checks) == 0 {
		return resp
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	results := make(chan outcome, len(checks))
	for name, fn := range checks {
		go func() {
			start := time.Now()
			err := run(ctx, fn)
			c := Check{Status: StatusHealthy, Took: time.Since(start).String()}
			if err != nil {
				c.Status, c.Error = StatusUnhealthy, err.Error()
			}
			results <- outcome{name: name, check: c}
		}()
	}

	resp.Checks = make(map[string]Check, len(checks))
	for range len(checks) {
		o := <-results
		resp.Checks[o.name] = o.check
		if o.check.Status == StatusHealthy {
			continue
		}
		resp.Status = StatusUnhealthy
		cfg.logger.WarnContext(ctx, "readiness check failed",
			slog.String("check", o.name),
			slog.String("error", o.check.Error),
			slog.String("took", o.check.Took),
		)
	}
	return resp
}

// run calls check, reporting a panic as ErrCheckPanicked and a failure after
// the deadline as ErrCheckTimeout.
func run(ctx context.Context, check CheckFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrCheckPanicked, r)
		}
	}()

	err = check(ctx)
	if err != nil && ctx.Err() != nil {
		return fmt.Errorf("%w: %v", ErrCheckTimeout, err)
	}
	return err
}
