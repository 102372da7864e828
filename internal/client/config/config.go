package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the RentKeeper CLI.
//
// TimeZone names the IANA location used by the payment lifecycle; empty or
// "Local" means the machine's local zone.
type Config struct {
	ServerEndpointAddr string
	DatabasePath       string
	RefreshInterval    time.Duration
	TimeZone           string
	LogLevel           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.DatabasePath = "rentkeeper.db"
	c.RefreshInterval = 24 * time.Hour
	c.TimeZone = "Local"
	c.LogLevel = "warn"
}

// Location resolves TimeZone.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// LoadConfig constructs a Config, applies defaults, then overlays the
// environment, the JSON file and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
