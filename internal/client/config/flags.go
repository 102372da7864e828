package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   address and port of the property store
//	-f string   local SQLite database path
//	-i int      overdue refresh interval in minutes
//	-z string   time zone of the payment lifecycle
//	-l string   log level
//
// os.Args is filtered with flagx.FilterArgs so flags owned by other layers
// (-c, -env) do not trip the parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-f", "-i", "-z", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.DatabasePath, "f", cfg.DatabasePath, "local database path")
	refreshMinutes := fs.Int("i", int(cfg.RefreshInterval.Minutes()), "overdue refresh interval (in minutes)")
	fs.StringVar(&cfg.TimeZone, "z", cfg.TimeZone, "time zone, e.g. Europe/Riga")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RefreshInterval = time.Duration(*refreshMinutes) * time.Minute
}
