// Command docsite serves the documentation site.
//
// Configuration comes from environment variables; see Config.
package main

import (
	"context"
	"os"

	"github.com/dmitrymomot/docsite"
	"github.com/dmitrymomot/docsite/pkg/logger"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		logger.New(logger.Config{}).Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logger.NewWithSentry(cfg.Log, docsite.RequestIDExtractor())

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("application error", "error", err)
		os.Exit(1)
	}
}
