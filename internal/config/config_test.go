package config

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
	path := filepath.Join(t.TempDir(), "hammer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":memory:", cfg.Cache)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
source: ../corpus
cache: ./cache.db
ignore:
  - drafts/**
metricsFile: hammer.prom
debounce: 2s
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "../corpus", cfg.Source)
	assert.Equal(t, "./cache.db", cfg.Cache)
	assert.Equal(t, []string{"drafts/**"}, cfg.Ignore)
	assert.Equal(t, "hammer.prom", cfg.MetricsFile)
	assert.Equal(t, "", cfg.ReportFile)
	assert.Equal(t, 2*time.Second, cfg.Debounce)
}

func TestLoadFindsDefaultFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte("cache: found.db\n"), 0o644))
	t.Chdir(dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "found.db", cfg.Cache)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "cache: file.db\nsource: corpus\n")
	t.Setenv("HAMMER_CACHE", "env.db")
	t.Setenv("HAMMER_IGNORE", "drafts/**,*.txt")
	t.Setenv("HAMMER_REPORT_FILE", "report.json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env.db", cfg.Cache)
	assert.Equal(t, "corpus", cfg.Source)
	assert.Equal(t, []string{"drafts/**", "*.txt"}, cfg.Ignore)
	assert.Equal(t, "report.json", cfg.ReportFile)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config file")
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := Load(writeConfig(t, "cahce: typo.db\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cahce")
	})

	t.Run("bad duration", func(t *testing.T) {
		_, err := Load(writeConfig(t, "debounce: soon\n"))
		assert.Error(t, err)
	})

	t.Run("bad environment", func(t *testing.T) {
		t.Setenv("HAMMER_DEBOUNCE", "whenever")
		_, err := Load(writeConfig(t, ""))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error processing environment")
	})

	t.Run("zero debounce", func(t *testing.T) {
		_, err := Load(writeConfig(t, "debounce: 0s\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "debounce")
	})
}
