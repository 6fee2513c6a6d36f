// Package config loads application configuration from TOML files and
// FDT_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	appName    = "figuredraw"
	dbFileName = "figuredraw.db"
)

type Config struct {
	ListenAddr string `koanf:"listen_addr"` // host:port the web UI binds to
	DataDir    string `koanf:"data_dir"`    // where the settings database lives
	LibraryDir string `koanf:"library_dir"` // root of reference packs; empty disables the pack list

	// Remote pack sync (enabled when a bucket is configured)
	AWSProfile string `koanf:"aws_profile"`
	S3Bucket   string `koanf:"s3_bucket"`

	OpenBrowser *bool  `koanf:"open_browser"` // launch the UI on startup (default: true)
	LogLevel    string `koanf:"log_level"`    // "debug", "info", "warn", or "error"
}

func Load() (*Config, error) {
	return load(getConfigPaths())
}

func load(paths []string) (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", path, err)
			}
		}
	}

	cfg := &Config{
		ListenAddr: "localhost:8490",
		LogLevel:   "info",
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnvOverrides(cfg)

	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Join(xdg.DataHome, appName)
	}

	cfg.DataDir = expandPath(cfg.DataDir)
	cfg.LibraryDir = expandPath(cfg.LibraryDir)

	return cfg, nil
}

// applyEnvOverrides lets FDT_* variables win over anything set in a file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FDT_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("FDT_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("FDT_LIBRARY_DIR"); v != "" {
		cfg.LibraryDir = v
	}
	if v := os.Getenv("FDT_AWS_PROFILE"); v != "" {
		cfg.AWSProfile = v
	}
	if v := os.Getenv("FDT_S3_BUCKET"); v != "" {
		cfg.S3Bucket = v
	}
	if v := os.Getenv("FDT_OPEN_BROWSER"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.OpenBrowser = &b
		}
	}
	if v := os.Getenv("FDT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/figuredraw/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// DatabasePath is where the settings database lives under the data dir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, dbFileName)
}

// OpenBrowserEnabled reports whether the UI should be launched on startup.
func (c *Config) OpenBrowserEnabled() bool {
	return c.OpenBrowser == nil || *c.OpenBrowser
}

// HasLibrary returns true if a reference pack directory is configured.
func (c *Config) HasLibrary() bool {
	return c.LibraryDir != ""
}

// HasRemotePacks returns true if remote pack sync is configured.
func (c *Config) HasRemotePacks() bool {
	return c.S3Bucket != ""
}

// SlogLevel maps the configured log level onto slog's levels, defaulting
// to info for anything unrecognized.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
