package internal

import (
	"context"
	"log/slog"
	"net"
	"time"
)

// RunOption configures App.Run.
type RunOption func(*runConfig)

type hook = func(context.Context) error

type runConfig struct {
	baseCtx         context.Context
	logger          *slog.Logger
	ready           func(net.Addr)
	address         string
	startupHooks    []hook
	shutdownHooks   []hook
	shutdownTimeout time.Duration
}

func newRunConfig(opts []RunOption) *runConfig {
	cfg := &runConfig{
		baseCtx:         context.Background(),
		address:         defaultAddress,
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Logger sets the logger for lifecycle messages; the app logger otherwise.
func Logger(l *slog.Logger) RunOption {
	return func(c *runConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// ShutdownTimeout is the budget shared by draining requests and running
// shutdown hooks. Default 30s.
func ShutdownTimeout(d time.Duration) RunOption {
	return func(c *runConfig) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}

// StartupHook runs fn once the listener is bound and before the first
// request is accepted. An error aborts Run after the shutdown hooks ran.
//
//	docsite.StartupHook(scheduler.Start)
func StartupHook(fn func(context.Context) error) RunOption {
	return func(c *runConfig) {
		if fn != nil {
			c.startupHooks = append(c.startupHooks, fn)
		}
	}
}

// ShutdownHook runs fn after the server stopped accepting requests.
// Hooks run in the order they were registered, so register the scheduler
// before the Redis client it writes to.
//
//	docsite.ShutdownHook(redis.Shutdown(client))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return func(c *runConfig) {
		if fn != nil {
			c.shutdownHooks = append(c.shutdownHooks, fn)
		}
	}
}

// WithContext sets the parent context. Cancelling it stops the server the
// same way SIGINT or SIGTERM do.
func WithContext(ctx context.Context) RunOption {
	return func(c *runConfig) {
		if ctx != nil {
			c.baseCtx = ctx
		}
	}
}

// OnReady is called with the bound address once requests are accepted.
// Useful with ":0" in tests.
func OnReady(fn func(net.Addr)) RunOption {
	return func(c *runConfig) {
		c.ready = fn
	}
}
