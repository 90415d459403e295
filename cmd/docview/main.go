// Command docview browses the documentation from a terminal.
//
// It reads hash fragments (for example "#/faq" or "#/docs/releases/v2.6.0")
// from stdin, one per line, and prints each page as markdown. Sources are
// fetched from a running docsite's /public/ mount unless DOCVIEW_BASE_URL
// points elsewhere.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/docsite/pkg/content"
	"github.com/dmitrymomot/docsite/pkg/dispatch"
	"github.com/dmitrymomot/docsite/pkg/logger"
	"github.com/dmitrymomot/docsite/pkg/markdown"
	"github.com/dmitrymomot/docsite/pkg/pages"
	"github.com/dmitrymomot/docsite/pkg/route"
	"github.com/dmitrymomot/docsite/pkg/termview"
)

// Config holds docview configuration loaded from the environment.
type Config struct {
	BaseURL     string        `env:"DOCVIEW_BASE_URL"     envDefault:"http://localhost:8080/public/"`
	PagesFile   string        `env:"PAGES_FILE"`
	Timeout     time.Duration `env:"DOCVIEW_TIMEOUT"      envDefault:"10s"`
	ClearScreen bool          `env:"DOCVIEW_CLEAR_SCREEN"`
	Initial     string        `env:"DOCVIEW_INITIAL"`
	Log         logger.Config
}

func main() {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		fmt.Fprintln(os.Stderr, "parse env:", err)
		os.Exit(1)
	}

	log := logger.NewWithWriter(os.Stderr, cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdin, os.Stdout, log); err != nil {
		log.Error("docview stopped", "error", err)
		os.Exit(1)
	}
}

// run drives a navigator with fragments read from in until EOF or ctx ends.
func run(ctx context.Context, cfg Config, in io.Reader, out io.Writer, log *slog.Logger) error {
	reg := pages.Default()
	if cfg.PagesFile != "" {
		f, err := os.Open(cfg.PagesFile)
		if err != nil {
			return fmt.Errorf("pages file: %w", err)
		}
		reg, err = pages.LoadYAML(f)
		_ = f.Close()
		if err != nil {
			return fmt.Errorf("pages file %s: %w", cfg.PagesFile, err)
		}
	}

	src, err := content.NewHTTPSource(cfg.BaseURL, &http.Client{Timeout: cfg.Timeout})
	if err != nil {
		return err
	}

	viewOpts := []termview.Option{termview.WithDomain(cfg.BaseURL)}
	if cfg.ClearScreen {
		viewOpts = append(viewOpts, termview.WithClearScreen())
	}
	view := termview.New(out, viewOpts...)

	loader := content.NewLoader(reg, src, markdown.New(), content.WithLogger(log))
	nav := dispatch.NewNavigator(route.New(reg), loader, view, dispatch.WithLogger(log))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runErr := make(chan error, 1)
	go func() { runErr <- nav.Run(ctx, cfg.Initial) }()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fragment := strings.TrimSpace(scanner.Text())
		if fragment == "" {
			continue
		}
		if err := nav.Navigate(ctx, fragment); err != nil {
			if errors.Is(err, dispatch.ErrNotRunning) {
				// Run has not started yet; wait for it once.
				if err := waitRunning(ctx, nav, fragment); err != nil {
					return err
				}
				continue
			}
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read fragments: %w", err)
	}

	// Let the last load land before exiting.
	waitIdle(ctx, nav, cfg.Timeout)
	cancel()

	if err := <-runErr; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return view.Err()
}

func waitRunning(ctx context.Context, nav *dispatch.Navigator, fragment string) error {
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()
	for {
		err := nav.Navigate(ctx, fragment)
		if !errors.Is(err, dispatch.ErrNotRunning) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func waitIdle(ctx context.Context, nav *dispatch.Navigator, limit time.Duration) {
	deadline := time.After(limit)
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for !nav.Idle() {
		select {
		case <-ctx.Done():
			return
		case <-deadline:
			return
		case <-ticker.C:
		}
	}
}
