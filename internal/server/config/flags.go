package config

import (
	"flag"
	"os"
	"strings"

	"github.com/dmitrijs2005/corenotes/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., "127.0.0.1:3333")
//	-d string   postgres:// or sqlite: DSN, empty for the in-memory store
//	-l string   log level
//	-o string   comma separated CORS origins
//
// Only these flags are picked out of os.Args (see flagx.ParseKnown), so the
// JSON loader's -c/-config does not collide with them.
func parseFlags(config *Config) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	origins := fs.String("o", strings.Join(config.AllowedOrigins, ","), "comma separated CORS origins")

	if err := flagx.ParseKnown(fs, os.Args[1:]); err != nil {
		panic(err)
	}

	config.AllowedOrigins = splitList(*origins)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
