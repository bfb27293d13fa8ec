package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"storage": map[string]interface{}{
			"backend": BackendFile,
			"key":     "reminders-app-data",
			"timeout": 5,
			"file": map[string]interface{}{
				"dir": "~/.reminder-buddy",
			},
			"sqlite": map[string]interface{}{
				"path": "~/.reminder-buddy/reminders.db",
			},
			"redis": map[string]interface{}{
				"addr":     "localhost:6379",
				"password": "",
				"db":       0,
				"prefix":   "reminder-buddy:",
			},
		},
		"ui": map[string]interface{}{
			"colored_output":  true,
			"render_markdown": true,
			"date_format":     "Jan 02, 2006 at 03:04 PM",
			"default_filter":  "all",
		},
		"log": map[string]interface{}{
			"development":  false,
			"level":        "info",
			"output_paths": []string{"~/.reminder-buddy/reminders.log"},
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}

func GetDefaultConfigPath() string {
	return "~/.reminder-buddy/config.yaml"
}
