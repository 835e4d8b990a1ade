package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_DefaultsAreValid verifies that the built-in defaults alone pass
// validation.
func TestBuild_DefaultsAreValid(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	require.NoError(t, err)
	assert.Equal(t, "todo-pwa-v1", cfg.Cache.Version)
	assert.Equal(t, "/api/todos", cfg.Routes.TaskPath)
	assert.Contains(t, cfg.Cache.Manifest, "/offline.html")
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourceWins verifies that non-zero fields of later configs
// override earlier ones while zero fields keep earlier values.
func TestBuild_LaterSourceWins(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs,
		&StructuredConfig{Cache: Cache{Version: "todo-pwa-v2"}},
		&StructuredConfig{Upstream: Upstream{RequestTimeout: 3 * time.Second}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "todo-pwa-v2", cfg.Cache.Version)
	assert.Equal(t, 3*time.Second, cfg.Upstream.RequestTimeout)
	assert.Equal(t, "localhost:8080", cfg.Upstream.HTTPAddress)
}

func TestBuild_InvalidResult(t *testing.T) {
	_, err := newConfigBuilder().build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidProxyConfigs)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("CACHE_VERSION", "env-version")
	t.Setenv("UPSTREAM_ADDRESS", "http://upstream:9000")

	b := newConfigBuilder()
	b.withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].Cache.Version)
	assert.Equal(t, "http://upstream:9000", b.configs[0].Upstream.HTTPAddress)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

func TestWithFlags_AppendsParsedFlags(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags([]string{"-cache-version", "flag-version"}))

	require.Len(t, b.configs, 1)
	assert.Equal(t, "flag-version", b.configs[0].Cache.Version)
}

func TestWithFlags_UnknownFlagSetsError(t *testing.T) {
	b := newConfigBuilder()
	b.withFlags([]string{"-no-such-flag"})

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"cache":    map[string]any{"version": "json-version"},
		"workers":  map[string]any{"sync_interval": "30s"},
		"upstream": map[string]any{"request_timeout": "2s"},
	})

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-version", b.configs[1].Cache.Version)
	assert.Equal(t, 30*time.Second, b.configs[1].Workers.SyncInterval)
	assert.Equal(t, 2*time.Second, b.configs[1].Upstream.RequestTimeout)
}

func TestWithJSON_SetsError_WhenFileMissing(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/does/not/exist.json"})
	b.withJSON()

	assert.Error(t, b.err)
	assert.Len(t, b.configs, 1)
}

// ── GetStructuredConfig ───────────────────────────────────────────────────────

func TestGetStructuredConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("CACHE_VERSION", "env-version")
	t.Setenv("STORAGE_DB_DSN", "/tmp/env.db")

	cfg, err := GetStructuredConfig([]string{"-cache-version", "flag-version"})
	require.NoError(t, err)
	assert.Equal(t, "flag-version", cfg.Cache.Version)
	assert.Equal(t, "/tmp/env.db", cfg.Storage.DB.DSN)
}
