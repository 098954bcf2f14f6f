package server

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ironsheep/maxima-mcp/internal/maxima"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvLogLevel   = "MAXIMA_MCP_LOG_LEVEL"
	EnvTolerance  = "MAXIMA_MCP_TOLERANCE"
	EnvMaxRetries = "MAXIMA_MCP_MAX_RETRIES"
)

// Config holds process-wide settings. Tool arguments override the analysis
// defaults per call.
type Config struct {
	// Debug enables per-call logging to stderr.
	Debug bool

	// Tolerance is the default plateau tolerance for image_ultimate_points.
	Tolerance float64

	// MaxRetries caps sorting-error restarts per candidate.
	MaxRetries int
}

// DefaultConfig returns the settings used when no environment is set.
func DefaultConfig() Config {
	opts := maxima.DefaultOptions()
	return Config{
		Tolerance:  opts.Tolerance,
		MaxRetries: opts.MaxRetries,
	}
}

// ConfigFromEnv builds a Config from the process environment.
func ConfigFromEnv() (Config, error) {
	return configFromLookup(os.LookupEnv)
}

func configFromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()

	if v, ok := lookup(EnvLogLevel); ok {
		cfg.Debug = v == "debug"
	}
	if v, ok := lookup(EnvTolerance); ok && v != "" {
		tol, err := strconv.ParseFloat(v, 64)
		if err != nil || tol < 0 {
			return cfg, fmt.Errorf("invalid %s %q: must be a non-negative number", EnvTolerance, v)
		}
		cfg.Tolerance = tol
	}
	if v, ok := lookup(EnvMaxRetries); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", EnvMaxRetries, v, err)
		}
		cfg.MaxRetries = n
	}
	return cfg, nil
}
