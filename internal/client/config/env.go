package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/flagx"
	"github.com/joho/godotenv"
)

const (
	EnvServerAddr      = "RENTKEEPER_SERVER_ADDR"
	EnvDatabasePath    = "RENTKEEPER_DB_PATH"
	EnvRefreshInterval = "RENTKEEPER_REFRESH_INTERVAL"
	EnvTimeZone        = "RENTKEEPER_TZ"
	EnvLogLevel        = "LOG_LEVEL"
)

// parseEnv overlays values from the environment after loading the optional
// dotenv file. Exported variables win over the file.
func parseEnv(cfg *Config) {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(fmt.Errorf("load env file %s: %w", path, err))
		}
	}

	setString(&cfg.ServerEndpointAddr, EnvServerAddr)
	setString(&cfg.DatabasePath, EnvDatabasePath)
	setString(&cfg.TimeZone, EnvTimeZone)
	setString(&cfg.LogLevel, EnvLogLevel)

	if v := os.Getenv(EnvRefreshInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", EnvRefreshInterval, err))
		}
		cfg.RefreshInterval = d
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
