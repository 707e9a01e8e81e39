package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/corenotes/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the task store (default from Config)
//	-t int      request timeout in seconds, 0 disables it (default from Config)
//	-l string   log level (default from Config)
//
// Unknown arguments are left alone so -c/-config can share os.Args.
func parseFlags(cfg *Config) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the task store")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := flagx.ParseKnown(fs, os.Args[1:]); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
