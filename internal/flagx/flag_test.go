package flagx

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.json", "-a", "http://localhost:3333"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--config=alt.json", "-a", "localhost"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=alt.json"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept as-is",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "flag followed by another flag (no value)",
			args:         []string{"-c", "-notvalue"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "value that looks like a flag in equals form",
			args:         []string{"--config=--weird.json"},
			allowedFlags: []string{"--config"},
			want:         []string{"--config=--weird.json"},
		},
		{
			name:         "repeated allowed flag is preserved in order",
			args:         []string{"-a", "one", "-t", "5", "-a", "two"},
			allowedFlags: []string{"-a"},
			want:         []string{"-a", "one", "-a", "two"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestKnown_ListsShortAndLongForms(t *testing.T) {
	fs := flag.NewFlagSet("t", flag.ContinueOnError)
	fs.String("a", "", "")
	fs.Int("t", 0, "")

	assert.ElementsMatch(t, []string{"-a", "--a", "-t", "--t"}, Known(fs))
}

func TestParseKnown_IgnoresForeignFlags(t *testing.T) {
	fs := flag.NewFlagSet("t", flag.ContinueOnError)
	addr := fs.String("a", "default", "")
	timeout := fs.Int("t", 1, "")

	err := ParseKnown(fs, []string{"-d", "postgres://x", "-a", "http://h:1", "--t=7", "-c", "cfg.json"})
	require.NoError(t, err)
	assert.Equal(t, "http://h:1", *addr)
	assert.Equal(t, 7, *timeout)
}

func TestConfigFileFlag(t *testing.T) {
	t.Run("short -c with value", func(t *testing.T) {
		assert.Equal(t, "/path/short.json", ConfigFileFlag([]string{"-c", "/path/short.json"}))
	})

	t.Run("long -config with value", func(t *testing.T) {
		assert.Equal(t, "/path/long.json", ConfigFileFlag([]string{"-config", "/path/long.json"}))
	})

	t.Run("unknown flags are ignored", func(t *testing.T) {
		assert.Empty(t, ConfigFileFlag([]string{"-x", "1", "-y", "2"}))
	})

	t.Run("multiple flags, last wins", func(t *testing.T) {
		assert.Equal(t, "/path/2.json", ConfigFileFlag([]string{"-c", "/path/1.json", "-config", "/path/2.json"}))
	})
}
