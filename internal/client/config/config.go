package config

import "time"

// Config holds runtime settings for the notes CLI.
//
// Fields:
//   - ServerURL: base URL of the task store.
//   - RequestTimeout: upper bound for a single HTTP round trip (0 = none).
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3333"
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
