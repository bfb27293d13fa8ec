package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/notexe/reminder-buddy/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide logger. It discards everything until Init runs.
var Logger = zap.NewNop()

func Init(cfg config.LogConfig) error {
	l, err := New(cfg)
	if err != nil {
		return err
	}
	Logger = l
	return nil
}

// New builds a zap logger from cfg without touching the global Logger.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05")

	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		zc.Level = level
	}

	if len(cfg.OutputPaths) > 0 {
		for _, p := range cfg.OutputPaths {
			if p == "stdout" || p == "stderr" {
				continue
			}
			if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
				return nil, fmt.Errorf("failed to create log directory: %w", err)
			}
		}
		zc.OutputPaths = cfg.OutputPaths
	}

	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return l, nil
}

func Sync() {
	_ = Logger.Sync()
}

// Named returns a child of the global logger for one component.
func Named(name string) *zap.Logger {
	return Logger.Named(name)
}
