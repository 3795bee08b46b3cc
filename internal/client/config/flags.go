package config

import (
	"flag"
	"os"
	"time"

	"duckmail/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend API (default from Config)
//	-m string   address domain appended to identifiers
//	-f string   path to the local account database
//	-i int      online check interval in seconds
//
// Only the flags handled here are parsed; os.Args is filtered via
// flagx.FilterArgs so flags owned by other packages are untouched.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-m", "-f", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "base URL of the backend API")
	fs.StringVar(&cfg.AddressDomain, "m", cfg.AddressDomain, "address domain appended to identifiers")
	fs.StringVar(&cfg.DatabasePath, "f", cfg.DatabasePath, "path to the local account database")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
