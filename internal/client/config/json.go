package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/trustvote/internal/flagx"
	"github.com/dmitrijs2005/trustvote/internal/timex"
)

// JsonConfig is the on-disk shape of the client configuration. Zero values
// keep the previous setting; pointers distinguish "false" from "unset".
type JsonConfig struct {
	ServerEndpointAddr   string         `json:"server_endpoint_addr"`
	OnlineCheckInterval  timex.Duration `json:"online_check_interval"`
	CallTimeout          timex.Duration `json:"call_timeout"`
	DatabasePath         string         `json:"database_path"`
	LogFile              string         `json:"log_file"`
	LogLevel             string         `json:"log_level"`
	GeminiAPIKey         string         `json:"gemini_api_key"`
	GeminiModel          string         `json:"gemini_model"`
	GeminiEndpoint       string         `json:"gemini_endpoint"`
	EnrichmentRetryDelay timex.Duration `json:"enrichment_retry_delay"`
	RedisURL             string         `json:"redis_url"`
	VoteQuota            int            `json:"vote_quota"`
	SwipeThreshold       int            `json:"swipe_threshold"`
	PassportDir          string         `json:"passport_dir"`
	UseChrome            *bool          `json:"use_chrome"`
	ShareBaseURL         string         `json:"share_base_url"`
	Offline              *bool          `json:"offline"`
}

func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&config.ServerEndpointAddr, c.ServerEndpointAddr)
	setString(&config.DatabasePath, c.DatabasePath)
	setString(&config.LogFile, c.LogFile)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.GeminiAPIKey, c.GeminiAPIKey)
	setString(&config.GeminiModel, c.GeminiModel)
	setString(&config.GeminiEndpoint, c.GeminiEndpoint)
	setString(&config.RedisURL, c.RedisURL)
	setString(&config.PassportDir, c.PassportDir)
	setString(&config.ShareBaseURL, c.ShareBaseURL)

	setDuration(&config.OnlineCheckInterval, c.OnlineCheckInterval)
	setDuration(&config.CallTimeout, c.CallTimeout)
	setDuration(&config.EnrichmentRetryDelay, c.EnrichmentRetryDelay)

	if c.VoteQuota > 0 {
		config.VoteQuota = c.VoteQuota
	}
	if c.SwipeThreshold > 0 {
		config.SwipeThreshold = c.SwipeThreshold
	}
	if c.UseChrome != nil {
		config.UseChrome = *c.UseChrome
	}
	if c.Offline != nil {
		config.Offline = *c.Offline
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration > 0 {
		*dst = v.Duration
	}
}
