package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	data := "max_n: 12\nmin_count: 3\nserve:\n  addr: \":9000\"\nwatch:\n  debounce: 1s\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(12, cfg.MaxN)
	assert.Equal(3, cfg.MinCount)
	assert.Equal(":9000", cfg.Serve.Addr)
	assert.Equal(time.Second, cfg.Watch.Debounce)
	assert.Equal(20, cfg.SlurLookahead)
	assert.Equal([]string{"*"}, cfg.Serve.AllowedOrigins)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_n: [1, 2"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestCacheDirFromEnv(t *testing.T) {
	t.Setenv("TRANHDEX_CACHE_DIR", "/tmp/tranhdex")
	assert.Equal(t, "/tmp/tranhdex", GetCacheDir())
	t.Setenv("TRANHDEX_CACHE_DIR", "")
	assert.Equal(t, "./out", GetCacheDir())
}
