// Package config loads fintrack preferences from a TOML file in the XDG
// config directory, with environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment overrides, applied after the config file is read.
const (
	EnvDB    = "FINTRACK_DB"
	EnvTheme = "FINTRACK_THEME"
)

// Config holds all fintrack configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Daemon     DaemonConfig     `toml:"daemon"`
	TUI        TUIConfig        `toml:"tui"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DBPath             string `toml:"db_path,omitempty"`
	IncomeWindowMonths int    `toml:"income_window_months"`
	ProjectionMonths   int    `toml:"projection_months"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DaemonConfig holds the background daemon settings.
type DaemonConfig struct {
	Addr         string `toml:"addr"`
	IntervalSec  int    `toml:"interval_sec"`
	EventsBuffer int    `toml:"events_buffer"`
}

// TUIConfig holds dashboard behavior settings.
type TUIConfig struct {
	AutoRefresh        bool `toml:"auto_refresh"`
	RefreshIntervalSec int  `toml:"refresh_interval_sec"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			IncomeWindowMonths: 3,
			ProjectionMonths:   12,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Daemon: DaemonConfig{
			Addr:         "127.0.0.1:8787",
			IntervalSec:  15,
			EventsBuffer: 200,
		},
		TUI: TUIConfig{
			AutoRefresh:        true,
			RefreshIntervalSec: 30,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fintrack")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fintrack")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "fintrack")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "fintrack")
}

// DefaultDBPath returns where the ledger lives when nothing overrides it.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), "fintrack.db")
}

// LoadEnv reads an optional .env file in the working directory.
// Variables already set in the environment win.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment overrides are applied on top.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	applyEnv(&cfg)
	cfg.normalize()
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvDB)); v != "" {
		cfg.General.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTheme)); v != "" {
		cfg.Appearance.Theme = v
	}
}

// normalize replaces out-of-range values with defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.General.IncomeWindowMonths <= 0 {
		c.General.IncomeWindowMonths = def.General.IncomeWindowMonths
	}
	if c.General.ProjectionMonths <= 0 {
		c.General.ProjectionMonths = def.General.ProjectionMonths
	}
	if c.Daemon.Addr == "" {
		c.Daemon.Addr = def.Daemon.Addr
	}
	if c.Daemon.IntervalSec <= 0 {
		c.Daemon.IntervalSec = def.Daemon.IntervalSec
	}
	if c.Daemon.EventsBuffer <= 0 {
		c.Daemon.EventsBuffer = def.Daemon.EventsBuffer
	}
	if c.TUI.RefreshIntervalSec < 10 {
		c.TUI.RefreshIntervalSec = 10
	}
}

// DBPath returns the configured ledger path or the default.
func (c Config) DBPath() string {
	if c.General.DBPath != "" {
		return c.General.DBPath
	}
	return DefaultDBPath()
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
