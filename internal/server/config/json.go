package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/corenotes/internal/flagx"
	"github.com/dmitrijs2005/corenotes/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "1s" and integer nanoseconds.
//
// This struct is an intermediate DTO (Data Transfer Object) used only for
// reading JSON configuration files. After unmarshalling, its fields are
// copied into the runtime Config struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddrHTTP string          `json:"endpoint_addr_http"`
	DatabaseDSN      *string         `json:"database_dsn"`
	LogLevel         string          `json:"log_level"`
	AllowedOrigins   []string        `json:"allowed_origins"`
	ShutdownTimeout  *timex.Duration `json:"shutdown_timeout"`
}

// parseJson loads configuration values from the JSON file named by the -c or
// -config flag into the provided Config. Fields missing from the file keep
// their current values. If the file cannot be read or contains invalid JSON,
// the function panics.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.ConfigFileFlag(os.Args[1:])

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	if c.AllowedOrigins != nil {
		config.AllowedOrigins = c.AllowedOrigins
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}
