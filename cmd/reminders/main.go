// Command reminders is an interactive terminal app for personal reminders.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/notexe/reminder-buddy/internal/config"
	"github.com/notexe/reminder-buddy/internal/logger"
	"github.com/notexe/reminder-buddy/internal/reminder"
	"github.com/notexe/reminder-buddy/internal/repl"
	"github.com/notexe/reminder-buddy/internal/storage"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", config.GetDefaultConfigPath(), "Path to configuration file")
	backend := flag.String("backend", "", "Storage backend (file, sqlite, redis, memory)")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if *backend != "" {
		cfg.Storage.Backend = *backend
	}
	if *noColor {
		cfg.UI.ColoredOutput = false
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	timeout := time.Duration(cfg.Storage.Timeout) * time.Second

	openCtx, openCancel := context.WithTimeout(ctx, timeout)
	slot, err := storage.Open(openCtx, cfg.Storage)
	openCancel()
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
	}
	defer slot.Close()

	store := reminder.NewStore(
		reminder.NewPersister(slot, cfg.Storage.Key, logger.Named("persist")),
		reminder.WithLogger(logger.Named("store")),
		reminder.WithWriteTimeout(timeout),
	)
	defer store.Close()

	loadCtx, loadCancel := context.WithTimeout(ctx, timeout)
	report := store.Load(loadCtx)
	loadCancel()

	replInstance, err := repl.NewREPL(store, cfg, cfg.Storage.Describe(), logger.Named("repl"))
	if err != nil {
		return fmt.Errorf("failed to create REPL: %w", err)
	}

	switch {
	case report.Corrupt != nil:
		replInstance.DisplayWarning("Stored reminders could not be read and were ignored. " +
			"Saving a change will replace them.")
	case len(report.Skipped) > 0:
		replInstance.DisplayWarning(fmt.Sprintf("%d stored reminder(s) were malformed and skipped.", len(report.Skipped)))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			logger.Logger.Info("interrupted, shutting down")
			cancel()
			replInstance.Stop()
		case <-ctx.Done():
		}
	}()

	if err := replInstance.Start(ctx); err != nil {
		return err
	}

	logger.Logger.Info("session ended", zap.Int("reminders", store.Counts().Total))
	return nil
}
