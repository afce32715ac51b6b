package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the trustvote CLI.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	CallTimeout         time.Duration

	DatabasePath string
	LogFile      string
	LogLevel     string

	GeminiAPIKey         string
	GeminiModel          string
	GeminiEndpoint       string
	EnrichmentRetryDelay time.Duration
	RedisURL             string

	VoteQuota      int
	SwipeThreshold int

	PassportDir  string
	UseChrome    bool
	ShareBaseURL string

	Offline bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.CallTimeout = 12 * time.Second

	c.DatabasePath = "trustvote.db"
	c.LogFile = "trustvote.log"
	c.LogLevel = "info"

	c.GeminiModel = "gemini-3-flash-preview"
	c.GeminiEndpoint = "https://generativelanguage.googleapis.com/"
	c.EnrichmentRetryDelay = time.Second

	c.VoteQuota = 10
	c.SwipeThreshold = 150

	c.PassportDir = "."
	c.ShareBaseURL = "https://bulkrecognize-kappa.vercel.app/"
}

// Load builds a Config from args (without the program name).
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args. It panics on invalid configuration.
func LoadConfig() *Config {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return cfg
}
