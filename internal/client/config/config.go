// Package config loads runtime settings for the DuckMail CLI.
// Values are resolved in three stages: built-in defaults, then a JSON
// file (path from -c/-config), then command-line flags. Later stages
// override earlier ones.
package config

import (
	"time"

	"duckmail/internal/client/authflow"
)

// Config holds runtime settings for the DuckMail CLI.
type Config struct {
	// ServerEndpointAddr is the base URL of the backend HTTP API.
	ServerEndpointAddr string

	// AddressDomain is the fixed domain suffix appended to identifiers
	// for display and requests; it is never stored with the identifier.
	AddressDomain string

	// IdentifierPattern is the allowed character class for identifiers.
	IdentifierPattern string

	// RequestTimeout bounds each API call. Zero disables the deadline.
	RequestTimeout time.Duration

	// OnlineCheckInterval is how often the client probes reachability.
	OnlineCheckInterval time.Duration

	// DatabasePath is the SQLite file holding account records.
	DatabasePath string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "https://quack.duckduckgo.com/api"
	c.AddressDomain = "duck.com"
	c.IdentifierPattern = authflow.DefaultIdentifierPattern
	c.RequestTimeout = 15 * time.Second
	c.OnlineCheckInterval = 30 * time.Second
	c.DatabasePath = "duckmail.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
