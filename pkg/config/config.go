// Package config handles loading and managing AquaScore configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aquascore/aquascore/pkg/scoring"
)

// Config is the top-level configuration for AquaScore.
type Config struct {
	Scoring ScoringConfig `yaml:"scoring"`
	Server  ServerConfig  `yaml:"server"`
}

// ScoringConfig controls scoring behavior.
type ScoringConfig struct {
	// Weights overrides category weights by category key
	// (dwsp, asset_management, documentation, reporting, risk_management,
	// timeliness). Overridden weights must still sum to 1.0.
	Weights map[string]float64 `yaml:"weights"`
}

// ServerConfig controls the aquascored service.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ArchiveDir   string `yaml:"archive_dir"` // local archive fallback
	KafkaTopic   string `yaml:"kafka_topic"`
	ScoreHistory int    `yaml:"score_history"` // prior scores fetched for trend
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			Weights: map[string]float64{},
		},
		Server: ServerConfig{
			Port:         "8080",
			ArchiveDir:   "/var/lib/aquascore/archive",
			KafkaTopic:   "aquascore.scores",
			ScoreHistory: 2,
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// ScorerWeights applies any configured weight overrides to the default
// scoring weights.
func (c *Config) ScorerWeights() scoring.DefaultWeights {
	w := scoring.Defaults()
	for key, v := range c.Scoring.Weights {
		switch scoring.Category(key) {
		case scoring.CategoryDWSP:
			w.DWSP = v
		case scoring.CategoryAssets:
			w.Assets = v
		case scoring.CategoryDocumentation:
			w.Documentation = v
		case scoring.CategoryReporting:
			w.Reporting = v
		case scoring.CategoryRisk:
			w.Risk = v
		case scoring.CategoryTimeliness:
			w.Timeliness = v
		}
	}
	return w
}
