// Package config reads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	DefaultAddr            = ":8080"
	DefaultServiceName     = "stateful-calculator"
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 5 * time.Second
)

type Config struct {
	Addr            string        // HTTP_ADDR
	ServiceName     string        // OTEL_SERVICE_NAME
	ExportTelemetry bool          // OTEL_EXPORT_ENABLED
	LogLevel        string        // LOG_LEVEL
	ShutdownTimeout time.Duration // SHUTDOWN_TIMEOUT
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from lookup, applying defaults for unset or
// empty variables.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Addr:        get("HTTP_ADDR", DefaultAddr),
		ServiceName: get("OTEL_SERVICE_NAME", DefaultServiceName),
		LogLevel:    get("LOG_LEVEL", DefaultLogLevel),
	}

	export, err := strconv.ParseBool(get("OTEL_EXPORT_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse OTEL_EXPORT_ENABLED: %w", err)
	}
	cfg.ExportTelemetry = export

	timeout, err := time.ParseDuration(get("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout.String()))
	if err != nil {
		return Config{}, fmt.Errorf("parse SHUTDOWN_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", timeout)
	}
	cfg.ShutdownTimeout = timeout

	return cfg, nil
}
