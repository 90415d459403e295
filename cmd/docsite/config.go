package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/docsite/pkg/logger"
	"github.com/dmitrymomot/docsite/pkg/redis"
	"github.com/dmitrymomot/docsite/pkg/storage"
	"github.com/dmitrymomot/docsite/pkg/version"
)

// Config holds process configuration loaded from the environment.
type Config struct {
	Addr            string        `env:"ADDR"             envDefault:":8080"`
	DocsDir         string        `env:"DOCS_DIR"         envDefault:"public"`
	DocsURL         string        `env:"DOCS_URL"`
	DocsMaxSize     int64         `env:"DOCS_MAX_SIZE"    envDefault:"4194304"`
	PagesFile       string        `env:"PAGES_FILE"`
	AssetsDir       string        `env:"ASSETS_DIR"       envDefault:"assets"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT"  envDefault:"15s"`
	ProbeTimeout    time.Duration `env:"PROBE_TIMEOUT"    envDefault:"5s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	Log     logger.Config
	Redis   redis.Config
	Bucket  storage.Config
	Version version.Config
}

// loadConfig parses the environment into a Config.
func loadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
