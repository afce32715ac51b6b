package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/trustvote/internal/envx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, 10, c.VoteQuota)
	assert.Equal(t, 150, c.SwipeThreshold)
	assert.Equal(t, time.Second, c.EnrichmentRetryDelay)
	assert.Equal(t, "gemini-3-flash-preview", c.GeminiModel)
	assert.False(t, c.Offline)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeTempJSON(t, dir, "cfg.json", map[string]any{
		"server_endpoint_addr": "json:1",
		"vote_quota":           5,
		"log_level":            "warn",
	})
	envPath := filepath.Join(dir, "client.env")
	require.NoError(t, os.WriteFile(envPath, []byte("TRUSTVOTE_VOTE_QUOTA=7\nTRUSTVOTE_LOG_LEVEL=debug\n"), 0o600))

	cfg, err := Load([]string{"-c", jsonPath, "-env", envPath, "-l", "error"})
	require.NoError(t, err)

	assert.Equal(t, "json:1", cfg.ServerEndpointAddr)
	assert.Equal(t, 7, cfg.VoteQuota)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoad_MissingExplicitEnvFile(t *testing.T) {
	_, err := Load([]string{"-env", filepath.Join(t.TempDir(), "nope.env")})
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	src := envx.FromMap(map[string]string{
		EnvAPIKeyFallback: "fallback",
		EnvGeminiAPIKey:   "primary",
		EnvRedisURL:       "redis://localhost:6379/0",
		EnvOffline:        "true",
		EnvRetryDelay:     "250ms",
	})
	require.NoError(t, applyEnv(cfg, src))

	assert.Equal(t, "primary", cfg.GeminiAPIKey)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.True(t, cfg.Offline)
	assert.Equal(t, 250*time.Millisecond, cfg.EnrichmentRetryDelay)

	cfg = &Config{}
	require.NoError(t, applyEnv(cfg, envx.FromMap(map[string]string{EnvAPIKeyFallback: "only"})))
	assert.Equal(t, "only", cfg.GeminiAPIKey)

	assert.Error(t, applyEnv(&Config{}, envx.FromMap(map[string]string{EnvVoteQuota: "ten"})))
}
