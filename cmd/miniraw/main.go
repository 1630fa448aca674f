package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	errs "miniraw/errors"
	"miniraw/internal"
	"miniraw/runtime"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
	exitBind    = 3
)

const shutdownTimeout = 30 * time.Second

var version = "dev"

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "miniraw terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run keeps every defer (badger close, signal release) ahead of os.Exit.
func run() (int, error) {
	// A missing .env is the normal case
	_ = godotenv.Load()

	config, err := internal.LoadConfig()
	if err != nil {
		return exitConfig, err
	}
	logger := logs.GetLoggerFromString(config.LogLevel)
	logger.Info("miniraw raw print spooler", "version", version, "pid", os.Getpid())
	logger.Info("Spool settings",
		"address", config.Address(),
		"output_dir", config.OutputDir,
		"extension", config.FileExtension,
		"chunk_size", config.ChunkSize(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := badger.Open(buildBadgerOpts(ctx, config, logger))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	engine := runtime.NewEngine(logger, config, db)
	if err := engine.Start(ctx); err != nil {
		if errors.Is(err, errs.ErrBind) {
			return exitBind, err
		}
		return exitRuntime, err
	}

	served := make(chan error, 1)
	go func() { served <- engine.Serve() }()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case serveErr = <-served:
		logger.Error("Spooler stopped accepting jobs", "error", serveErr)
	}

	logger.Info("Shutting down, waiting for jobs in progress", "active", engine.Stats.Snapshot().ActiveJobs)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := engine.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Listener close failed", "error", err)
	}

	if serveErr != nil {
		return exitRuntime, serveErr
	}
	logger.Info("Program stopped cleanly")
	return exitOK, nil
}

func buildBadgerOpts(ctx context.Context, config internal.Config, logger *slog.Logger) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)
	if logger.Enabled(ctx, slog.LevelDebug) {
		return options.WithLoggingLevel(badger.DEBUG)
	}
	return options.WithLoggingLevel(badger.WARNING)
}
