// Package config handles configuration for the task store server,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the task store.
//
// Fields:
//   - EndpointAddrHTTP: bind address of the HTTP API.
//   - DatabaseDSN: postgres:// (pgx) or sqlite:/file: (SQLite) DSN. Empty keeps
//     tasks in memory.
//   - LogLevel: debug, info, warn or error.
//   - AllowedOrigins: origins allowed by CORS; "*" allows any.
//   - ShutdownTimeout: how long in-flight requests get on shutdown.
type Config struct {
	EndpointAddrHTTP string
	DatabaseDSN      string
	LogLevel         string
	AllowedOrigins   []string
	ShutdownTimeout  time.Duration
}

// LoadDefaults populates Config with sensible development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = "127.0.0.1:3333"
	c.DatabaseDSN = ""
	c.LogLevel = "info"
	c.AllowedOrigins = []string{"*"}
	c.ShutdownTimeout = 5 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
