package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/docsite"
	"github.com/dmitrymomot/docsite/handlers"
	"github.com/dmitrymomot/docsite/middlewares"
	"github.com/dmitrymomot/docsite/pkg/content"
	"github.com/dmitrymomot/docsite/pkg/dispatch"
	"github.com/dmitrymomot/docsite/pkg/logger"
	"github.com/dmitrymomot/docsite/pkg/markdown"
	"github.com/dmitrymomot/docsite/pkg/pages"
	"github.com/dmitrymomot/docsite/pkg/redis"
	"github.com/dmitrymomot/docsite/pkg/route"
	"github.com/dmitrymomot/docsite/pkg/storage"
	"github.com/dmitrymomot/docsite/pkg/version"
	"github.com/dmitrymomot/docsite/views"
)

// site is the assembled application with the runtime options it needs.
type site struct {
	app     *docsite.App
	runOpts []docsite.RunOption
	syncer  *version.Synchronizer
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	s, err := build(ctx, cfg, log)
	if err != nil {
		return err
	}

	opts := append(s.runOpts,
		docsite.Logger(log),
		docsite.WithContext(ctx),
		docsite.ShutdownTimeout(cfg.ShutdownTimeout),
		docsite.ShutdownHook(logger.FlushSentry()),
	)
	return s.app.Run(cfg.Addr, opts...)
}

// build wires every component from cfg. Nothing is started; the scheduler
// and connection cleanup are attached as run hooks.
func build(ctx context.Context, cfg Config, log *slog.Logger) (_ *site, err error) {
	s := &site{}

	reg, err := loadRegistry(cfg.PagesFile)
	if err != nil {
		return nil, err
	}

	src, err := openSource(cfg)
	if err != nil {
		return nil, err
	}

	loader := content.NewLoader(reg, src, markdown.New(),
		content.WithLogger(log),
		content.WithMaxSize(cfg.DocsMaxSize),
	)
	server := dispatch.NewServer(route.New(reg), loader)

	readiness := []docsite.HealthOption{
		docsite.WithReadinessTimeout(cfg.ProbeTimeout),
		docsite.WithReadinessCheck("docs", content.Healthcheck(src, firstLocation(reg))),
	}

	var client goredis.UniversalClient
	if cfg.Redis.Enabled() || cfg.Version.Store == version.StoreRedis {
		client, err = redis.Open(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		defer func() {
			if err != nil {
				_ = client.Close()
			}
		}()
		readiness = append(readiness, docsite.WithReadinessCheck("redis", redis.Healthcheck(client)))
	}

	store, err := cfg.Version.NewStore(client)
	if err != nil {
		return nil, err
	}
	s.syncer = version.NewSynchronizer(store, version.NewHTTPRemote(cfg.Version.URL, nil),
		version.WithMaxAge(cfg.Version.MaxAge),
		version.WithFetchTimeout(cfg.Version.FetchTimeout),
		version.WithLogger(log),
	)

	if !cfg.Version.DisableScheduler {
		sched, err := version.NewScheduler(s.syncer, cfg.Version.RefreshSchedule,
			version.WithSchedulerLogger(log),
			version.WithRunOnStart(),
		)
		if err != nil {
			return nil, err
		}
		s.runOpts = append(s.runOpts,
			docsite.StartupHook(sched.Start),
			docsite.ShutdownHook(sched.Stop),
		)
	}
	if client != nil {
		s.runOpts = append(s.runOpts, docsite.ShutdownHook(redis.Shutdown(client)))
	}

	opts := []docsite.Option{
		docsite.WithLogger(log),
		docsite.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Logging(log),
			middlewares.Recover(),
			middlewares.Timeout(cfg.RequestTimeout),
		),
		docsite.WithHandlers(handlers.NewDocsHandler(server, s.syncer, views.DefaultSite(reg))),
		docsite.WithErrorHandler(handleError),
		docsite.WithMethodNotAllowedHandler(handleMethodNotAllowed),
		docsite.WithHealthChecks(readiness...),
	}

	if isDir(cfg.AssetsDir) {
		opts = append(opts, docsite.WithStaticFiles("/assets/", os.DirFS(cfg.AssetsDir), "."))
	}
	// Raw markdown is published next to the rendered pages so HTTP clients
	// such as docview can load it.
	if !cfg.Bucket.Enabled() && cfg.DocsURL == "" {
		opts = append(opts, docsite.WithStaticFiles("/public/", os.DirFS(cfg.DocsDir), ".",
			docsite.StaticCacheControl("no-cache")))
	}

	s.app = docsite.New(opts...)
	return s, nil
}

func loadRegistry(file string) (*pages.Registry, error) {
	if file == "" {
		return pages.Default(), nil
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("pages file: %w", err)
	}
	defer f.Close()

	reg, err := pages.LoadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("pages file %s: %w", file, err)
	}
	return reg, nil
}

// openSource picks the documentation backend: bucket, then URL, then directory.
func openSource(cfg Config) (content.Source, error) {
	switch {
	case cfg.Bucket.Enabled():
		bucket, err := storage.New(cfg.Bucket)
		if err != nil {
			return nil, err
		}
		return content.NewBucketSource(bucket, ""), nil
	case cfg.DocsURL != "":
		src, err := content.NewHTTPSource(cfg.DocsURL, nil)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		if !isDir(cfg.DocsDir) {
			return nil, fmt.Errorf("docs dir %q: %w", cfg.DocsDir, os.ErrNotExist)
		}
		return content.NewDirSource(os.DirFS(cfg.DocsDir)), nil
	}
}

// firstLocation is the location probed by the docs readiness check.
func firstLocation(reg *pages.Registry) string {
	if loc, ok := reg.Lookup(pages.Overview); ok {
		return loc
	}
	loc, _ := reg.Lookup(reg.IDs()[0])
	return loc
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func handleError(c docsite.Context, err error) error {
	if code := docsite.ErrorStatus(err); code != 0 {
		return c.String(code, http.StatusText(code))
	}

	if httpErr := docsite.AsHTTPError(err); httpErr != nil {
		return c.String(httpErr.Code, httpErr.Message)
	}

	c.LogError("unhandled error", "error", err)
	return c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

func handleMethodNotAllowed(c docsite.Context) error {
	return c.String(http.StatusMethodNotAllowed, "This HTTP method is not allowed for this resource.")
}
