package config

import "github.com/dmitrijs2005/trustvote/internal/envx"

// Environment variables recognised by the client. API_KEY is accepted as a
// fallback for the generation key.
const (
	EnvServerAddr     = "TRUSTVOTE_SERVER_ADDR"
	EnvCallTimeout    = "TRUSTVOTE_CALL_TIMEOUT"
	EnvDatabasePath   = "TRUSTVOTE_DB_PATH"
	EnvLogFile        = "TRUSTVOTE_LOG_FILE"
	EnvLogLevel       = "TRUSTVOTE_LOG_LEVEL"
	EnvAPIKeyFallback = "API_KEY"
	EnvGeminiAPIKey   = "TRUSTVOTE_GEMINI_API_KEY"
	EnvGeminiModel    = "TRUSTVOTE_GEMINI_MODEL"
	EnvGeminiEndpoint = "TRUSTVOTE_GEMINI_ENDPOINT"
	EnvRetryDelay     = "TRUSTVOTE_ENRICHMENT_RETRY_DELAY"
	EnvRedisURL       = "TRUSTVOTE_REDIS_URL"
	EnvVoteQuota      = "TRUSTVOTE_VOTE_QUOTA"
	EnvSwipeThreshold = "TRUSTVOTE_SWIPE_THRESHOLD"
	EnvPassportDir    = "TRUSTVOTE_PASSPORT_DIR"
	EnvUseChrome      = "TRUSTVOTE_USE_CHROME"
	EnvShareBaseURL   = "TRUSTVOTE_SHARE_BASE_URL"
	EnvOffline        = "TRUSTVOTE_OFFLINE"
)

func parseEnv(config *Config, args []string) error {
	src, err := envx.Load(args)
	if err != nil {
		return err
	}
	return applyEnv(config, src)
}

func applyEnv(config *Config, src *envx.Source) error {
	src.String(&config.ServerEndpointAddr, EnvServerAddr)
	src.String(&config.DatabasePath, EnvDatabasePath)
	src.String(&config.LogFile, EnvLogFile)
	src.String(&config.LogLevel, EnvLogLevel)
	src.String(&config.GeminiAPIKey, EnvAPIKeyFallback)
	src.String(&config.GeminiAPIKey, EnvGeminiAPIKey)
	src.String(&config.GeminiModel, EnvGeminiModel)
	src.String(&config.GeminiEndpoint, EnvGeminiEndpoint)
	src.String(&config.RedisURL, EnvRedisURL)
	src.String(&config.PassportDir, EnvPassportDir)
	src.String(&config.ShareBaseURL, EnvShareBaseURL)

	if err := src.Duration(&config.CallTimeout, EnvCallTimeout); err != nil {
		return err
	}
	if err := src.Duration(&config.EnrichmentRetryDelay, EnvRetryDelay); err != nil {
		return err
	}
	if err := src.Int(&config.VoteQuota, EnvVoteQuota); err != nil {
		return err
	}
	if err := src.Int(&config.SwipeThreshold, EnvSwipeThreshold); err != nil {
		return err
	}
	if err := src.Bool(&config.UseChrome, EnvUseChrome); err != nil {
		return err
	}
	return src.Bool(&config.Offline, EnvOffline)
}
