// Package config loads runtime settings from the environment and the game
// presets from YAML.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds settings read from STEMARCADE_* environment variables.
// Command-line flags override them.
type Config struct {
	DBPath          string `env:"STEMARCADE_DB"`
	PresetsPath     string `env:"STEMARCADE_PRESETS"`
	RedisAddr       string `env:"STEMARCADE_REDIS_ADDR"`
	RedisPassword   string `env:"STEMARCADE_REDIS_PASSWORD"`
	RedisDB         int    `env:"STEMARCADE_REDIS_DB"          envDefault:"0"`
	LogLevel        string `env:"STEMARCADE_LOG_LEVEL"         envDefault:"info"`
	LogFormat       string `env:"STEMARCADE_LOG_FORMAT"        envDefault:"text"`
	Player          string `env:"STEMARCADE_PLAYER"`
	LeaderboardSize int    `env:"STEMARCADE_LEADERBOARD_SIZE"  envDefault:"10"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the environment configuration with defaults applied.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.LeaderboardSize <= 0 {
		cfg.LeaderboardSize = 10
	}
	return cfg, nil
}

// RedisEnabled reports whether a redis address was configured.
func (c Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}
