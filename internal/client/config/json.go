package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/corenotes/internal/flagx"
	"github.com/dmitrijs2005/corenotes/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// RequestTimeout is a timex.Duration so the file can say "5s" or give
// integer nanoseconds. Absent fields keep their current values.
type JsonConfig struct {
	ServerURL      string          `json:"server_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	LogLevel       string          `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag it does nothing. Read and decode
// errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag(os.Args[1:])
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

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
