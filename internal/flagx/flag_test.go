package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	cfgFlags := []string{"-c", "-config"}

	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-c", "client.json", "-a", "localhost:8080", "-q", "10"},
			allowed: cfgFlags,
			want:    []string{"-c", "client.json"},
		},
		{
			name:    "equals form",
			args:    []string{"-config=client.json", "-offline"},
			allowed: cfgFlags,
			want:    []string{"-config=client.json"},
		},
		{
			name:    "dangling flag",
			args:    []string{"-offline", "-c"},
			allowed: cfgFlags,
			want:    []string{"-c"},
		},
		{
			name:    "next flag is not a value",
			args:    []string{"-c", "-chrome"},
			allowed: cfgFlags,
			want:    []string{"-c"},
		},
		{
			name:    "several allowed flags keep order",
			args:    []string{"-env", "dev.env", "-k", "secret", "-c", "a.json", "-c", "b.json"},
			allowed: []string{"-c", "-env"},
			want:    []string{"-env", "dev.env", "-c", "a.json", "-c", "b.json"},
		},
		{
			name:    "nothing allowed present",
			args:    []string{"-s", "200", "positional"},
			allowed: cfgFlags,
			want:    []string{},
		},
		{
			name:    "no args",
			args:    nil,
			allowed: cfgFlags,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowed)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{args: []string{"-c", "short.json"}, want: "short.json"},
		{args: []string{"-config", "long.json", "-offline"}, want: "long.json"},
		{args: []string{"-q", "5", "-config=eq.json"}, want: "eq.json"},
		{args: []string{"-c", "first.json", "-config", "last.json"}, want: "last.json"},
		{args: []string{"-a", "localhost:8080"}, want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ConfigFileFlag(tt.args), "args %v", tt.args)
	}
}

func TestEnvFileFlag(t *testing.T) {
	assert.Equal(t, "prod.env", EnvFileFlag([]string{"-a", "x", "-env", "prod.env"}))
	assert.Equal(t, "x.env", EnvFileFlag([]string{"-env=x.env"}))
	assert.Empty(t, EnvFileFlag([]string{"-c", "conf.json"}))
}
