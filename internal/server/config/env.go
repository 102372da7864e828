package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/flagx"
	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvGRPCAddr           = "RENTKEEPER_GRPC_ADDR"
	EnvHealthAddr         = "RENTKEEPER_HEALTH_ADDR"
	EnvDatabaseDSN        = "DATABASE_DSN"
	EnvSecretKey          = "RENTKEEPER_SECRET_KEY"
	EnvAccessTokenTTL     = "ACCESS_TOKEN_TTL"
	EnvRefreshTokenTTL    = "REFRESH_TOKEN_TTL"
	EnvS3RootUser         = "S3_ROOT_USER"
	EnvS3RootPassword     = "S3_ROOT_PASSWORD"
	EnvS3Bucket           = "S3_BUCKET"
	EnvS3Region           = "S3_REGION"
	EnvS3BaseEndpoint     = "S3_BASE_ENDPOINT"
	EnvPresignExpiry      = "PRESIGN_EXPIRY"
	EnvTokenSweepSchedule = "TOKEN_SWEEP_SCHEDULE"
	EnvLogLevel           = "LOG_LEVEL"
)

// parseEnv overlays values from the process environment. When -env names a
// dotenv file it is loaded first; variables already set in the environment
// win over the file. A bad file or duration panics, like the JSON layer.
func parseEnv(config *Config) {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(fmt.Errorf("load env file %s: %w", path, err))
		}
	}

	setString(&config.EndpointAddrGRPC, EnvGRPCAddr)
	setString(&config.HealthAddr, EnvHealthAddr)
	setString(&config.DatabaseDSN, EnvDatabaseDSN)
	setString(&config.SecretKey, EnvSecretKey)
	setDuration(&config.AccessTokenValidityDuration, EnvAccessTokenTTL)
	setDuration(&config.RefreshTokenValidityDuration, EnvRefreshTokenTTL)
	setString(&config.S3RootUser, EnvS3RootUser)
	setString(&config.S3RootPassword, EnvS3RootPassword)
	setString(&config.S3Bucket, EnvS3Bucket)
	setString(&config.S3Region, EnvS3Region)
	setString(&config.S3BaseEndpoint, EnvS3BaseEndpoint)
	setDuration(&config.PresignExpiry, EnvPresignExpiry)
	setString(&config.TokenSweepSchedule, EnvTokenSweepSchedule)
	setString(&config.LogLevel, EnvLogLevel)
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Errorf("%s: %w", key, err))
	}
	*dst = d
}
