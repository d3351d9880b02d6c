package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv(EnvDB, "")
	t.Setenv(EnvTheme, "")
	return dir
}

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.False(t, Exists())
	assert.Equal(t, filepath.Join(dir, "data", "fintrack", "fintrack.db"), cfg.DBPath())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	isolate(t)

	cfg := DefaultConfig()
	cfg.General.DBPath = "/tmp/ledger.db"
	cfg.Appearance.Theme = "tokyo-night"
	cfg.Daemon.IntervalSec = 60
	require.NoError(t, Save(cfg))
	assert.True(t, Exists())

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
	assert.Equal(t, "/tmp/ledger.db", got.DBPath())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)

	cfg := DefaultConfig()
	cfg.Appearance.Theme = "catppuccin-mocha"
	require.NoError(t, Save(cfg))

	t.Setenv(EnvTheme, "tokyo-night")
	t.Setenv(EnvDB, "/data/env.db")

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "tokyo-night", got.Appearance.Theme)
	assert.Equal(t, "/data/env.db", got.DBPath())
}

func TestLoad_NormalizesInvalidValues(t *testing.T) {
	isolate(t)

	raw := `
[general]
income_window_months = -1
projection_months = 0

[daemon]
interval_sec = 0

[tui]
refresh_interval_sec = 2
`
	require.NoError(t, os.MkdirAll(ConfigDir(), 0o755))
	require.NoError(t, os.WriteFile(ConfigPath(), []byte(raw), 0o600))

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, got.General.IncomeWindowMonths)
	assert.Equal(t, 12, got.General.ProjectionMonths)
	assert.Equal(t, 15, got.Daemon.IntervalSec)
	assert.Equal(t, 10, got.TUI.RefreshIntervalSec)
	assert.Equal(t, "127.0.0.1:8787", got.Daemon.Addr)
}

func TestLoad_BadTOML(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(ConfigDir(), 0o755))
	require.NoError(t, os.WriteFile(ConfigPath(), []byte("[general\n"), 0o600))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadEnv_MissingFileIsFine(t *testing.T) {
	t.Chdir(t.TempDir())
	assert.NoError(t, LoadEnv())
}

func TestLoadEnv_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvTheme, "")
	require.NoError(t, os.Unsetenv(EnvTheme))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvTheme+"=tokyo-night\n"), 0o600))

	require.NoError(t, LoadEnv())
	assert.Equal(t, "tokyo-night", os.Getenv(EnvTheme))
}
