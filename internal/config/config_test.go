package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "yt-dlp", cfg.Engine.Binary)
	assert.Equal(t, "mp3", cfg.Engine.AudioFormat)
	assert.Equal(t, "192K", cfg.Engine.AudioQuality)
	assert.True(t, filepath.IsAbs(cfg.Downloads.Dir))
}

func TestLoadEnvOverlay(t *testing.T) {
	t.Setenv("ML_SERVER_PORT", "9191")
	t.Setenv("ML_ENGINE_BINARY", "/usr/local/bin/yt-dlp")
	t.Setenv("ML_ENGINE_COOKIE_FILE", "/tmp/cookies.txt")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "/usr/local/bin/yt-dlp", cfg.Engine.Binary)
	assert.Equal(t, "/tmp/cookies.txt", cfg.Engine.CookieFile)
}

func TestLoadTOMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "[server]\nport = 7070\n\n[downloads]\ndir = \"" + dir + "\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, dir, cfg.Downloads.Dir)
}
