// Package config loads runtime configuration for the notes CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the task store
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:3333",
//	  "request_timeout": "10s",
//	  "log_level": "warn"
//	}
package config
