package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	// Test cases
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd", "-u", "http://h:1", "-f", "s.db", "-t", "10", "-l", "debug", "-g", "h:9090"}, expectPanic: false,
			expected: &Config{ServerBaseURL: "http://h:1", StorageDSN: "s.db", RequestTimeout: 10 * time.Second, LogLevel: "debug", HealthAddr: "h:9090"}},
		{name: "timeout untouched without flag", args: []string{"cmd", "-u", "http://h:1"}, expectPanic: false,
			expected: &Config{ServerBaseURL: "http://h:1"}},
		{name: "incorrect timeout", args: []string{"cmd", "-t", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
