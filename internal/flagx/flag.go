// Package flagx lets several components parse their own flags out of one
// shared os.Args without tripping over each other's flags.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs returns the subset of args made of allowed flags and their values.
//
// Supported forms:
//
//	-c conf.json       flag and value as separate arguments
//	--config=conf.json flag and value joined with '='
//
// A separate value is only consumed when it does not itself start with '-'.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// Known lists the names registered on fs in the "-name" form accepted by
// FilterArgs.
func Known(fs *flag.FlagSet) []string {
	var names []string
	fs.VisitAll(func(f *flag.Flag) {
		names = append(names, "-"+f.Name, "--"+f.Name)
	})
	return names
}

// ParseKnown parses only the flags registered on fs out of args, ignoring
// everything else.
func ParseKnown(fs *flag.FlagSet, args []string) error {
	return fs.Parse(FilterArgs(args, Known(fs)))
}

// ConfigFileFlag extracts the JSON config path given via -c or -config.
// It returns "" when neither is present; the last occurrence wins.
func ConfigFileFlag(args []string) string {
	var config string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = ParseKnown(fs, args)

	return config
}
