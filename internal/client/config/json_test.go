package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	path := writeTempJSON(t, "", "", map[string]any{
		"server_endpoint_addr":   "www.example:9000",
		"online_check_interval":  "5s",
		"database_path":          "local.db",
		"gemini_api_key":         "key",
		"enrichment_retry_delay": "2s",
		"swipe_threshold":        90,
		"use_chrome":             true,
		"offline":                false,
	})

	t.Run("loads from json", func(t *testing.T) {
		cfg := &Config{Offline: true}
		require.NoError(t, parseJson(cfg, []string{"-config", path}))

		assert.Equal(t, "www.example:9000", cfg.ServerEndpointAddr)
		assert.Equal(t, 5*time.Second, cfg.OnlineCheckInterval)
		assert.Equal(t, "local.db", cfg.DatabasePath)
		assert.Equal(t, "key", cfg.GeminiAPIKey)
		assert.Equal(t, 2*time.Second, cfg.EnrichmentRetryDelay)
		assert.Equal(t, 90, cfg.SwipeThreshold)
		assert.True(t, cfg.UseChrome)
		assert.False(t, cfg.Offline)
	})

	t.Run("no config flag leaves values", func(t *testing.T) {
		cfg := &Config{ServerEndpointAddr: "defaults:1234", VoteQuota: 10}
		require.NoError(t, parseJson(cfg, nil))

		assert.Equal(t, "defaults:1234", cfg.ServerEndpointAddr)
		assert.Equal(t, 10, cfg.VoteQuota)
	})

	t.Run("invalid json", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
		require.Error(t, parseJson(&Config{}, []string{"-c", bad}))
	})

	t.Run("missing file", func(t *testing.T) {
		require.Error(t, parseJson(&Config{}, []string{"-c", filepath.Join(t.TempDir(), "none.json")}))
	})
}
