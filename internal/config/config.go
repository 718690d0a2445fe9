// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and the environment.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Default values.
const (
	DefaultAddr       = ":8080"
	DefaultAPIBaseURL = "http://localhost:8088/api"
	DefaultBasePath   = "/"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// APIBaseURL is the base address prepended to every outbound API request.
	APIBaseURL string `koanf:"api_base_url"`

	// RequestTimeoutMS bounds outbound requests. Zero means no timeout.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`

	// BasePath is the deployment base path the router is mounted under.
	BasePath string `koanf:"base_path"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:   "info",
		LogFormat:  "text",
		Addr:       DefaultAddr,
		APIBaseURL: DefaultAPIBaseURL,
		BasePath:   DefaultBasePath,
	}
}

// RequestTimeout returns the outbound request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.APIBaseURL) == "":
		return fmt.Errorf("%w: api_base_url must not be empty", ErrInvalidConfig)
	case c.RequestTimeoutMS < 0:
		return fmt.Errorf("%w: request_timeout_ms must not be negative", ErrInvalidConfig)
	}
	return nil
}
