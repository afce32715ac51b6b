// Package config loads runtime configuration for the trustvote client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Optional dotenv file (-env, default ".env") and TRUSTVOTE_* variables.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the remote store gRPC endpoint
//	-i int      online status check interval (seconds)
//	-f string   local cache database file
//	-o string   log file
//	-l string   log level
//	-k string   text generation API key
//	-m string   text generation model
//	-r string   redis URL for a shared enrichment cache
//	-q int      vote quota
//	-s int      swipe threshold
//	-p string   passport output directory
//	-chrome     rasterize passports with headless Chrome
//	-offline    run against a seeded in-memory store
//
// # JSON schema
//
// Durations accept either strings like "3s" or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "enrichment_retry_delay": "1s",
//	  "vote_quota": 10
//	}
package config
