package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FirstRunWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agenda", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.WorkStartHour)
	assert.Equal(t, 17, cfg.WorkEndHour)
	assert.Equal(t, 7, cfg.MaxDaysToSearch)
	assert.Equal(t, 60, cfg.DefaultDurationMinutes)
	assert.Equal(t, "info", cfg.LogLevel)

	// The default config must now exist on disk with tight permissions.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	want := &Config{
		StoragePath:            "/tmp/test.db",
		WorkStartHour:          8,
		WorkEndHour:            16,
		MaxDaysToSearch:        14,
		DefaultDurationMinutes: 30,
		LogLevel:               "debug",
	}
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestNormalize(t *testing.T) {
	cfg := &Config{
		WorkStartHour:          -1,
		WorkEndHour:            5, // not after start once start defaults to 9
		MaxDaysToSearch:        0,
		DefaultDurationMinutes: -30,
		LogLevel:               "loud",
	}
	cfg.Normalize()

	assert.Equal(t, 9, cfg.WorkStartHour)
	assert.Equal(t, 17, cfg.WorkEndHour)
	assert.Equal(t, 7, cfg.MaxDaysToSearch)
	assert.Equal(t, 60, cfg.DefaultDurationMinutes)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.StoragePath)
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("work_start_hour: [not a number"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefaultPath_EnvOverride(t *testing.T) {
	t.Setenv("AGENDA_CONFIG", "/custom/agenda.yaml")
	assert.Equal(t, "/custom/agenda.yaml", DefaultPath())
}
