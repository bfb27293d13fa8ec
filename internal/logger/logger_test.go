package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/notexe/reminder-buddy/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_WritesToConfiguredFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "reminders.log")

	l, err := New(config.LogConfig{Level: "debug", OutputPaths: []string{path}})
	require.NoError(t, err)

	l.Debug("slot written", zap.Int("reminders", 3))
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "slot written")
	assert.Contains(t, string(data), `"reminders":3`)
}

func TestNew_RejectsBadLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestNamed_DefaultsToNop(t *testing.T) {
	assert.NotNil(t, Named("store"))
}
