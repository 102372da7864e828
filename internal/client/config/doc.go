// Package config loads runtime configuration for the RentKeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. The environment, optionally seeded from a dotenv file named by -env.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the property store
//	-f string   path of the local SQLite database
//	-i int      overdue refresh interval (minutes)
//	-z string   IANA time zone for the payment lifecycle
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "database_path": "rentkeeper.db",
//	  "refresh_interval": "24h",
//	  "time_zone": "Europe/Riga",
//	  "log_level": "warn"
//	}
package config
