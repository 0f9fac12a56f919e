package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "GO_ENV", "LOG_LEVEL", "MAX_FILE_SIZE", "LZ_WINDOW_LIMIT", "LZ_LOOKAHEAD_LIMIT"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, int64(50*1024*1024), cfg.MaxFileSize)
	require.Equal(t, 4096, cfg.WindowLimit)
	require.Equal(t, 64, cfg.LookaheadLimit)
	require.NoError(t, cfg.Validate())
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LZ_WINDOW_LIMIT", "128")
	t.Setenv("LZ_LOOKAHEAD_LIMIT", "not-a-number")
	cfg := Load()
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, 128, cfg.WindowLimit)
	require.Equal(t, 64, cfg.LookaheadLimit)
}

func TestLoadWithFile(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LZ_WINDOW_LIMIT", "")
	t.Setenv("LZ_LOOKAHEAD_LIMIT", "32")
	path := filepath.Join(t.TempDir(), "codec.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"7000\"\nwindowLimit: 1024\nlookaheadLimit: 16\nlogLevel: DEBUG\n"), 0o644))

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)
	require.Equal(t, "7000", cfg.Port)
	require.Equal(t, 1024, cfg.WindowLimit)
	require.Equal(t, 32, cfg.LookaheadLimit) // env wins
}

func TestLoadWithFileErrors(t *testing.T) {
	_, err := LoadWithFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("windowLimit: 0\n"), 0o644))
	t.Setenv("LZ_WINDOW_LIMIT", "")
	_, err = LoadWithFile(path)
	require.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("bogus: true\n"), 0o644))
	_, err = LoadWithFile(path)
	require.Error(t, err)
}
