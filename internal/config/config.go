// Package config defines runtime configuration for the cfp-tracker CLI and
// loads it from defaults, an optional YAML file, and environment variables.
package config

import "time"

// Config contains process configuration.
type Config struct {
	// BaseURL is the WikiCFP root used for search and event pages.
	BaseURL string `koanf:"base_url"`

	// TimeoutSeconds bounds each HTTP request.
	TimeoutSeconds int `koanf:"timeout_seconds"`

	// RequestDelayMS is the polite pause between conferences.
	RequestDelayMS int `koanf:"request_delay_ms"`

	// MaxEvents caps how many search-result event pages are followed per
	// conference lookup.
	MaxEvents int `koanf:"max_events"`

	// MaxRetries bounds HTTP retry attempts per request.
	MaxRetries int `koanf:"max_retries"`

	// WindowYears is how many target years to reconcile, starting with the
	// current calendar year.
	WindowYears int `koanf:"window_years"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		BaseURL:        "http://www.wikicfp.com",
		TimeoutSeconds: 10,
		RequestDelayMS: 1000,
		MaxEvents:      30,
		MaxRetries:     2,
		WindowYears:    3,
		LogLevel:       "info",
	}
}

// Timeout returns the per-request HTTP timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RequestDelay returns the pause inserted between conference lookups.
func (c *Config) RequestDelay() time.Duration {
	return time.Duration(c.RequestDelayMS) * time.Millisecond
}
