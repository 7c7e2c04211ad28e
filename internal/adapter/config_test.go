package adapter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, SourceTypeAPI, cfg.Source.Type)
	assert.Equal(t, 10, cfg.Browse.Limit)
	assert.Equal(t, 300*time.Millisecond, cfg.Browse.Debounce)
	assert.Equal(t, "replace", cfg.Browse.LoadMore)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
source:
  type: catalog
  match: fuzzy
browse:
  limit: 24
  debounce: 150ms
  load_more: append
ui:
  columns: 4
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, SourceTypeCatalog, cfg.Source.Type)
	assert.Equal(t, "fuzzy", cfg.Source.Match)
	assert.Equal(t, 24, cfg.Browse.Limit)
	assert.Equal(t, 150*time.Millisecond, cfg.Browse.Debounce)
	assert.Equal(t, "append", cfg.Browse.LoadMore)
	assert.Equal(t, 4, cfg.UI.Columns)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("CARDGRID_SOURCE_URL", "http://cards.example:8080")
	t.Setenv("CARDGRID_BROWSE_LIMIT", "40")

	cfg, err := LoadConfig(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, "http://cards.example:8080", cfg.Source.URL)
	assert.Equal(t, 40, cfg.Browse.Limit)
}

func TestLoadConfigRejectsUnknownSource(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "source:\n  type: ftp\n"))
	assert.Error(t, err)
}

func TestLoadConfigRejectsBadLimit(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "browse:\n  limit: 0\n"))
	assert.Error(t, err)
}

func TestLoadConfigRejectsNonPositiveTimeout(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "browse:\n  request_timeout: 0s\n"))
	assert.ErrorContains(t, err, "browse.request_timeout")

	_, err = LoadConfig(writeConfig(t, "browse:\n  request_timeout: -5s\n"))
	assert.Error(t, err)
}

func TestLoadConfigRejectsNegativeTTL(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "cache:\n  ttl: -1m\n"))
	assert.ErrorContains(t, err, "cache.ttl")
}

func TestSourceIdentity(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "api:http://localhost:3000", cfg.SourceIdentity())

	cfg.Source.Type = SourceTypeScryfall
	assert.Equal(t, "scryfall", cfg.SourceIdentity())
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLogLevel("debug").String())
	assert.Equal(t, "WARN", parseLogLevel("warning").String())
	assert.Equal(t, "INFO", parseLogLevel("nonsense").String())
}

func TestClearCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "abc"), 0755))

	cfg := DefaultConfig()
	cfg.Cache.Dir = dir
	require.NoError(t, cfg.ClearCache())

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))

	cfg.Cache.Dir = ""
	assert.NoError(t, cfg.ClearCache())
}
