package config

import (
	"fmt"
	"os"
	"time"

	"cerises-quiz/internal/scoring"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Quiz struct {
		TTL string `yaml:"ttl"`
	} `yaml:"quiz"`
	Game struct {
		TickInterval string `yaml:"tickInterval"`
	} `yaml:"game"`
	// Modes overrides built-in game modes by name; an entry replaces the
	// built-in mode of the same name entirely.
	Modes map[string]scoring.Mode `yaml:"modes"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	return Parse(data)
}

// Parse decodes YAML config and validates any mode overrides.
func Parse(data []byte) (Config, error) {
	cfg := Config{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if _, err := cfg.ScoringModes(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ScoringModes merges the configured overrides over the built-in modes.
func (c Config) ScoringModes() (scoring.Modes, error) {
	modes := scoring.DefaultModes()
	for name, mode := range c.Modes {
		mode.Name = name
		modes[name] = mode
	}
	if err := modes.Validate(); err != nil {
		return nil, fmt.Errorf("config modes: %w", err)
	}
	return modes, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
