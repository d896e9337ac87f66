package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewViper_Defaults(t *testing.T) {
	v, err := NewViper("")
	require.NoError(t, err)

	s := LoadSettings(v)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "console", s.LogFormat)
	assert.Equal(t, "console", s.Output)
	assert.Equal(t, ":8080", s.ServerAddr)
	assert.Empty(t, s.ConfigPath)
}

func TestNewViper_EnvironmentOverride(t *testing.T) {
	t.Setenv("FINWISE_LOG_LEVEL", "debug")
	t.Setenv("FINWISE_SERVER_ADDR", "127.0.0.1:9000")

	v, err := NewViper("")
	require.NoError(t, err)

	s := LoadSettings(v)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "127.0.0.1:9000", s.ServerAddr)
}

func TestNewViper_SettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  format: json\noutput: csv\nconfig: portal.yaml\n"), 0644))

	v, err := NewViper(path)
	require.NoError(t, err)

	s := LoadSettings(v)
	assert.Equal(t, "json", s.LogFormat)
	assert.Equal(t, "info", s.LogLevel, "unset keys keep defaults")
	assert.Equal(t, "csv", s.Output)
	assert.Equal(t, "portal.yaml", s.ConfigPath)

	_, err = NewViper(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
