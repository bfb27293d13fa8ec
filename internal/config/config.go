package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Storage backend names.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// EnvPrefix is the prefix of environment overrides. Nested keys are separated
// by a double underscore: REMINDER_STORAGE__REDIS__ADDR -> storage.redis.addr.
const EnvPrefix = "REMINDER_"

type Config struct {
	Storage StorageConfig `koanf:"storage"`
	UI      UIConfig      `koanf:"ui"`
	Log     LogConfig     `koanf:"log"`
}

type StorageConfig struct {
	Backend string       `koanf:"backend"`
	Key     string       `koanf:"key"`     // Slot key the reminder list lives under
	Timeout int          `koanf:"timeout"` // Seconds allowed for a single slot read or write
	File    FileConfig   `koanf:"file"`
	SQLite  SQLiteConfig `koanf:"sqlite"`
	Redis   RedisConfig  `koanf:"redis"`
}

type FileConfig struct {
	Dir string `koanf:"dir"`
}

type SQLiteConfig struct {
	Path string `koanf:"path"`
}

type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
	Prefix   string `koanf:"prefix"`
}

type UIConfig struct {
	ColoredOutput  bool   `koanf:"colored_output"`
	RenderMarkdown bool   `koanf:"render_markdown"`
	DateFormat     string `koanf:"date_format"`
	DefaultFilter  string `koanf:"default_filter"`
}

type LogConfig struct {
	Development bool     `koanf:"development"`
	Level       string   `koanf:"level"`
	OutputPaths []string `koanf:"output_paths"`
}

func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		configPath = expandPath(configPath)

		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// REMINDER_DB_PATH predates the nested env keys and still selects SQLite.
	if dbPath := os.Getenv("REMINDER_DB_PATH"); dbPath != "" {
		k.Set("storage.backend", BackendSQLite)
		k.Set("storage.sqlite.path", dbPath)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Storage.File.Dir = expandPath(cfg.Storage.File.Dir)
	cfg.Storage.SQLite.Path = expandPath(cfg.Storage.SQLite.Path)
	for i, p := range cfg.Log.OutputPaths {
		cfg.Log.OutputPaths[i] = expandPath(p)
	}

	return &cfg, nil
}

// envKey maps REMINDER_STORAGE__SQLITE__PATH to storage.sqlite.path.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile:
		if c.Storage.File.Dir == "" {
			return fmt.Errorf("storage.file.dir is required for the file backend")
		}
	case BackendSQLite:
		if c.Storage.SQLite.Path == "" {
			return fmt.Errorf("storage.sqlite.path is required for the sqlite backend")
		}
	case BackendRedis:
		if c.Storage.Redis.Addr == "" {
			return fmt.Errorf("storage.redis.addr is required for the redis backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend: %s (supported: %s, %s, %s, %s)",
			c.Storage.Backend, BackendFile, BackendSQLite, BackendRedis, BackendMemory)
	}

	if strings.TrimSpace(c.Storage.Key) == "" {
		return fmt.Errorf("storage.key must not be empty")
	}

	if c.Storage.Timeout <= 0 {
		return fmt.Errorf("storage.timeout must be positive")
	}

	switch strings.ToLower(c.UI.DefaultFilter) {
	case "", "all", "pending", "completed":
	default:
		return fmt.Errorf("unknown ui.default_filter: %s (supported: all, pending, completed)", c.UI.DefaultFilter)
	}

	if c.UI.DateFormat == "" {
		return fmt.Errorf("ui.date_format must not be empty")
	}

	return nil
}

// Describe returns a short human-readable location of the configured slot.
func (s StorageConfig) Describe() string {
	switch s.Backend {
	case BackendFile:
		return filepath.Join(s.File.Dir, s.Key+".json")
	case BackendSQLite:
		return s.SQLite.Path
	case BackendRedis:
		return fmt.Sprintf("redis://%s/%d %s%s", s.Redis.Addr, s.Redis.DB, s.Redis.Prefix, s.Key)
	default:
		return s.Backend
	}
}

func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}
