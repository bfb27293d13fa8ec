// Command mcp-reminder provides an MCP server for reminder management.
//
// It exposes the same reminder list as the reminders terminal app, read from
// and saved to the configured storage backend.
//
// Usage:
//
//	./mcp-reminder                  # Start MCP server (stdio)
//	./mcp-reminder -config <path>   # Use another configuration file
//	./mcp-reminder --help           # Show help
//
// Environment:
//
//	REMINDER_DB_PATH             Use the SQLite backend with this database file
//	REMINDER_STORAGE__BACKEND    Storage backend (file, sqlite, redis, memory)
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/notexe/reminder-buddy/internal/config"
	"github.com/notexe/reminder-buddy/internal/logger"
	"github.com/notexe/reminder-buddy/internal/reminder"
	"github.com/notexe/reminder-buddy/internal/storage"
	"go.uber.org/zap"
)

func main() {
	flag.Usage = printHelp
	configPath := flag.String("config", config.GetDefaultConfigPath(), "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the protocol, so logs never go there.
	for i, p := range cfg.Log.OutputPaths {
		if p == "stdout" {
			cfg.Log.OutputPaths[i] = "stderr"
		}
	}
	if err := logger.Init(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	timeout := time.Duration(cfg.Storage.Timeout) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	slot, err := storage.Open(ctx, cfg.Storage)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer slot.Close()

	store := reminder.NewStore(
		reminder.NewPersister(slot, cfg.Storage.Key, logger.Named("persist")),
		reminder.WithLogger(logger.Named("store")),
		reminder.WithWriteTimeout(timeout),
	)
	defer store.Close()

	ctx, cancel = context.WithTimeout(context.Background(), timeout)
	report := store.Load(ctx)
	cancel()
	if report.DataLost() {
		fmt.Fprintf(os.Stderr, "Warning: some stored reminders could not be loaded (skipped %d, corrupt %t)\n",
			len(report.Skipped), report.Corrupt != nil)
	}

	s := reminder.NewServer(store)
	logger.Logger.Info("mcp server starting", zap.String("storage", cfg.Storage.Describe()),
		zap.Int("reminders", report.Loaded))

	if err := server.ServeStdio(s.MCPServer()); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`MCP Reminder Server - Reminder management via MCP protocol

USAGE:
    mcp-reminder                  Start MCP server (communicates via stdio)
    mcp-reminder -config <path>   Configuration file
                                  Default: ~/.reminder-buddy/config.yaml
    mcp-reminder --help           Show this help

ENVIRONMENT:
    REMINDER_DB_PATH              Use the SQLite backend with this database file
    REMINDER_STORAGE__BACKEND     file, sqlite, redis or memory
    REMINDER_STORAGE__REDIS__ADDR Redis address for the redis backend

TOOLS:
    add_reminder           Add a new reminder (title, due_date, description)
    list_reminders         List reminders, newest first (optional status filter)
    get_overdue_reminders  Get pending reminders whose due date has passed
    toggle_reminder        Mark a reminder completed, or reopen it
    delete_reminder        Delete a reminder permanently
    reminder_stats         Count total, pending and completed reminders

CONFIGURATION:
    Register with an MCP client:
    {
      "mcpServers": {
        "reminder": {
          "command": "/path/to/mcp-reminder",
          "args": []
        }
      }
    }`)
}
