package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected *Config
		name     string
		args     []string
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:9090", "-i", "10", "-f", "c.db", "-o", "c.log", "-l", "debug",
				"-k", "key", "-m", "model", "-r", "redis://r:6379", "-q", "3", "-s", "80", "-p", "out",
				"-chrome", "-offline",
			},
			expected: &Config{
				ServerEndpointAddr:  "127.0.0.1:9090",
				OnlineCheckInterval: 10 * time.Second,
				DatabasePath:        "c.db",
				LogFile:             "c.log",
				LogLevel:            "debug",
				GeminiAPIKey:        "key",
				GeminiModel:         "model",
				RedisURL:            "redis://r:6379",
				VoteQuota:           3,
				SwipeThreshold:      80,
				PassportDir:         "out",
				UseChrome:           true,
				Offline:             true,
			},
		},
		{
			name:     "foreign flags ignored",
			args:     []string{"-c", "cfg.json", "-env", "x.env", "-i", "1"},
			expected: &Config{OnlineCheckInterval: time.Second},
		},
		{
			name:    "incorrect check interval",
			args:    []string{"-a", "127.0.0.1:9090", "-i", "abc"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}
			err := parseFlags(config, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(config, tt.expected))
		})
	}
}
