package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level r2drecon.yaml configuration.
type Config struct {
	Matching   MatchingConfig   `yaml:"matching"`
	Windows    WindowsConfig    `yaml:"windows"`
	Confidence ConfidenceConfig `yaml:"confidence"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// MatchingConfig holds amount comparison tunables.
type MatchingConfig struct {
	AmountTolerance float64 `yaml:"amount_tolerance"`
}

// WindowsConfig holds date window widths in days.
type WindowsConfig struct {
	Standard        int `yaml:"standard"`
	Extended        int `yaml:"extended"`
	OverpayBackfill int `yaml:"overpay_backfill"`
	Note            int `yaml:"note"`
	NoteExtended    int `yaml:"note_extended"`
}

// ConfidenceConfig holds debit match confidence weights.
type ConfidenceConfig struct {
	Base     float64 `yaml:"base"`
	Hint     float64 `yaml:"hint"`
	NearDate float64 `yaml:"near_date"`
	Cap      float64 `yaml:"cap"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
}

// Load reads an r2drecon.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the standard matching tunables.
func Default() *Config {
	return &Config{
		Matching: MatchingConfig{
			AmountTolerance: 0.02,
		},
		Windows: WindowsConfig{
			Standard:        10,
			Extended:        30,
			OverpayBackfill: 14,
			Note:            7,
			NoteExtended:    10,
		},
		Confidence: ConfidenceConfig{
			Base:     0.5,
			Hint:     0.3,
			NearDate: 0.2,
			Cap:      0.99,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
