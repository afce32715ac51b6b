package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/trustvote/internal/flagx"
)

// parseFlags applies command-line overrides. Args are filtered with
// flagx.FilterArgs first, so -c and -env are left to their own parsers.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{
		"-a", "-i", "-f", "-o", "-l", "-k", "-m", "-r", "-q", "-s", "-p",
		"-chrome", "-offline",
	})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.ServerEndpointAddr, "a", config.ServerEndpointAddr, "address and port of the store server")
	interval := fs.Int("i", int(config.OnlineCheckInterval.Seconds()), "online status check interval (in seconds)")
	fs.StringVar(&config.DatabasePath, "f", config.DatabasePath, "local cache database file")
	fs.StringVar(&config.LogFile, "o", config.LogFile, "log file")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.GeminiAPIKey, "k", config.GeminiAPIKey, "text generation API key")
	fs.StringVar(&config.GeminiModel, "m", config.GeminiModel, "text generation model")
	fs.StringVar(&config.RedisURL, "r", config.RedisURL, "redis URL for the enrichment cache")
	fs.IntVar(&config.VoteQuota, "q", config.VoteQuota, "vote quota")
	fs.IntVar(&config.SwipeThreshold, "s", config.SwipeThreshold, "swipe threshold")
	fs.StringVar(&config.PassportDir, "p", config.PassportDir, "passport output directory")
	fs.BoolVar(&config.UseChrome, "chrome", config.UseChrome, "rasterize passports with headless Chrome")
	fs.BoolVar(&config.Offline, "offline", config.Offline, "use a seeded in-memory store")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.OnlineCheckInterval = time.Duration(*interval) * time.Second
	return nil
}
