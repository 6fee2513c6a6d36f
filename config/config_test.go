package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"FDT_LISTEN_ADDR",
		"FDT_DATA_DIR",
		"FDT_LIBRARY_DIR",
		"FDT_AWS_PROFILE",
		"FDT_S3_BUCKET",
		"FDT_OPEN_BROWSER",
		"FDT_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := load(nil)
	require.NoError(t, err)

	assert.Equal(t, "localhost:8490", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, appName, filepath.Base(cfg.DataDir))
	assert.Equal(t, dbFileName, filepath.Base(cfg.DatabasePath()))
	assert.True(t, cfg.OpenBrowserEnabled())
	assert.False(t, cfg.HasLibrary())
	assert.False(t, cfg.HasRemotePacks())
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
listen_addr = "127.0.0.1:9000"
library_dir = "/srv/packs"
s3_bucket = "pose-packs"
open_browser = false
log_level = "debug"
`)

	cfg, err := load([]string{path})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr)
	assert.Equal(t, "/srv/packs", cfg.LibraryDir)
	assert.True(t, cfg.HasLibrary())
	assert.True(t, cfg.HasRemotePacks())
	assert.False(t, cfg.OpenBrowserEnabled())
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLaterFileWins(t *testing.T) {
	clearEnv(t)

	first := writeConfig(t, `listen_addr = "127.0.0.1:1111"`)
	second := writeConfig(t, `listen_addr = "127.0.0.1:2222"`)

	cfg, err := load([]string{first, second})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:2222", cfg.ListenAddr)
}

func TestMissingFilesSkipped(t *testing.T) {
	clearEnv(t)

	cfg, err := load([]string{filepath.Join(t.TempDir(), "nope.toml")})
	require.NoError(t, err)
	assert.Equal(t, "localhost:8490", cfg.ListenAddr)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
listen_addr = "127.0.0.1:9000"
open_browser = false
`)
	t.Setenv("FDT_LISTEN_ADDR", "127.0.0.1:9100")
	t.Setenv("FDT_OPEN_BROWSER", "true")
	t.Setenv("FDT_S3_BUCKET", "pose-packs")

	cfg, err := load([]string{path})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9100", cfg.ListenAddr)
	assert.True(t, cfg.OpenBrowserEnabled())
	assert.Equal(t, "pose-packs", cfg.S3Bucket)
}

func TestBadTomlFails(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `listen_addr = [broken`)

	_, err := load([]string{path})
	require.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.level}
		assert.Equal(t, tt.want, cfg.SlogLevel(), "level %q", tt.level)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "poses"), expandPath("~/poses"))
	assert.Equal(t, "/srv/poses", expandPath("/srv/poses"))
	assert.Equal(t, "", expandPath(""))
}
