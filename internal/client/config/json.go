package config

import (
	"encoding/json"
	"os"
	"time"

	"duckmail/internal/flagx"
	"duckmail/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so intervals can be written either as strings like
// "15s" or as integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	AddressDomain       string         `json:"address_domain"`
	IdentifierPattern   string         `json:"identifier_pattern"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	DatabasePath        string         `json:"database_path"`
}

// parseJson overlays cfg with values from the JSON file named by the
// -c/-config flag. Absent file path means no overlay; unset JSON fields
// keep their current values. Read or unmarshal errors panic (the caller
// may recover).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.AddressDomain != "" {
		cfg.AddressDomain = jc.AddressDomain
	}
	if jc.IdentifierPattern != "" {
		cfg.IdentifierPattern = jc.IdentifierPattern
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
}
