// Package main provides the huntsim binary, which measures every weapon in the
// registry against the configured encounter and prints the result.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/huntsim/internal/config"
	"github.com/cory-johannsen/huntsim/internal/observability"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	weaponID := flag.String("weapon", "", "simulate only this weapon ID; empty = every weapon")
	level := flag.Int("level", 0, "simulate only this proficiency level; 0 = configured levels")
	format := flag.String("format", "", "report format (table or yaml); empty = report.format from config")
	trace := flag.Bool("trace", false, "log every dice roll at debug level (runs sequentially)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *format != "" {
		cfg.Report.Format = *format
	}
	if *trace {
		cfg.Simulation.Trace = true
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("validating flags: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := initializeApp(cfg, logger)
	if err != nil {
		logger.Fatal("initializing", zap.Error(err))
	}
	if err := app.Run(ctx, os.Stdout, *weaponID, *level); err != nil {
		logger.Error("sweep failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	logger.Info("sweep finished", zap.Duration("elapsed", time.Since(start)))
}
