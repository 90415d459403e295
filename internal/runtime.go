package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
)

const defaultAddress = ":8080"

// serve listens on cfg.address and serves h until the base context is
// cancelled or a termination signal arrives, then drains and runs the
// shutdown hooks.
func (cfg *runConfig) serve(h http.Handler) error {
	ctx, stop := signal.NotifyContext(cfg.baseCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.address,
		Handler:           h,
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
		// In-flight requests outlive the signal; Shutdown drains them.
		BaseContext: func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", srv.Addr, err)
	}

	for i, fn := range cfg.startupHooks {
		if err := fn(ctx); err != nil {
			_ = ln.Close()
			cfg.logger.Error("startup hook failed", slog.Int("hook", i), slog.String("error", err.Error()))
			return errors.Join(fmt.Errorf("startup hook %d: %w", i, err), cfg.shutdown(nil))
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cfg.logger.Info("docsite listening", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return cfg.shutdown(srv)
	})

	if cfg.ready != nil {
		cfg.ready(ln.Addr())
	}
	return g.Wait()
}

// shutdown drains srv, when given, and then runs the shutdown hooks, all
// within the shutdown timeout. Every hook runs even when an earlier one failed.
func (cfg *runConfig) shutdown(srv *http.Server) error {
	cfg.logger.Info("shutting down", slog.Duration("timeout", cfg.shutdownTimeout))
	ctx, cancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
	defer cancel()

	var errs []error
	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("drain: %w", err))
		}
	}
	for i, fn := range cfg.shutdownHooks {
		if err := fn(ctx); err != nil {
			cfg.logger.Error("shutdown hook failed", slog.Int("hook", i), slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	cfg.logger.Info("shutdown complete")
	return nil
}
