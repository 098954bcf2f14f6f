package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Debug)
	assert.Equal(t, 0.5, cfg.Tolerance)
	assert.Equal(t, 1000, cfg.MaxRetries)
}

func TestConfigFromLookup(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want Config
	}{
		{
			name: "empty environment",
			env:  map[string]string{},
			want: DefaultConfig(),
		},
		{
			name: "all set",
			env: map[string]string{
				EnvLogLevel:   "debug",
				EnvTolerance:  "1.25",
				EnvMaxRetries: "20",
			},
			want: Config{Debug: true, Tolerance: 1.25, MaxRetries: 20},
		},
		{
			name: "non-debug level",
			env:  map[string]string{EnvLogLevel: "info"},
			want: DefaultConfig(),
		},
		{
			name: "blank values keep defaults",
			env:  map[string]string{EnvTolerance: "", EnvMaxRetries: ""},
			want: DefaultConfig(),
		},
		{
			name: "negative retries removes the cap",
			env:  map[string]string{EnvMaxRetries: "-1"},
			want: Config{Tolerance: 0.5, MaxRetries: -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := configFromLookup(mapLookup(tt.env))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestConfigFromLookup_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		key  string
	}{
		{"tolerance not a number", map[string]string{EnvTolerance: "abc"}, EnvTolerance},
		{"negative tolerance", map[string]string{EnvTolerance: "-1"}, EnvTolerance},
		{"retries not an integer", map[string]string{EnvMaxRetries: "1.5"}, EnvMaxRetries},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := configFromLookup(mapLookup(tt.env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvTolerance, "2")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 2.0, cfg.Tolerance)
}
