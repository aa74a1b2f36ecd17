package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, an optional file, and env
// vars. Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if CFPTRACK_CONFIG is set
//  3. env (prefix CFPTRACK_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("CFPTRACK_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: CFPTRACK_BASE_URL, CFPTRACK_WINDOW_YEARS, ...
	// Map env keys like CFPTRACK_MAX_EVENTS -> max_events (flat keys).
	envProvider := env.Provider("CFPTRACK_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "cfptrack_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.BaseURL == "" {
		return nil, errors.New("base_url must not be empty")
	}
	if cfg.WindowYears <= 0 {
		return nil, errors.New("window_years must be positive")
	}
	if cfg.TimeoutSeconds <= 0 {
		return nil, errors.New("timeout_seconds must be positive")
	}
	return &cfg, nil
}
