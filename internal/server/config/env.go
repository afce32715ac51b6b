package config

import "github.com/dmitrijs2005/trustvote/internal/envx"

// Environment variables recognised by the server.
const (
	EnvGRPCAddr       = "TRUSTVOTE_GRPC_ADDR"
	EnvDatabaseDSN    = "TRUSTVOTE_DATABASE_DSN"
	EnvS3User         = "TRUSTVOTE_S3_USER"
	EnvS3Password     = "TRUSTVOTE_S3_PASSWORD"
	EnvS3Bucket       = "TRUSTVOTE_S3_BUCKET"
	EnvS3Region       = "TRUSTVOTE_S3_REGION"
	EnvS3BaseEndpoint = "TRUSTVOTE_S3_ENDPOINT"
	EnvPresignTTL     = "TRUSTVOTE_PRESIGN_TTL"
	EnvLogLevel       = "TRUSTVOTE_LOG_LEVEL"
)

func parseEnv(config *Config, args []string) error {
	src, err := envx.Load(args)
	if err != nil {
		return err
	}
	return applyEnv(config, src)
}

func applyEnv(config *Config, src *envx.Source) error {
	src.String(&config.EndpointAddrGRPC, EnvGRPCAddr)
	src.String(&config.DatabaseDSN, EnvDatabaseDSN)
	src.String(&config.S3RootUser, EnvS3User)
	src.String(&config.S3RootPassword, EnvS3Password)
	src.String(&config.S3Bucket, EnvS3Bucket)
	src.String(&config.S3Region, EnvS3Region)
	src.String(&config.S3BaseEndpoint, EnvS3BaseEndpoint)
	src.String(&config.LogLevel, EnvLogLevel)
	return src.Duration(&config.PresignTTL, EnvPresignTTL)
}
