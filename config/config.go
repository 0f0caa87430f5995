// Package config loads the scoring options from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/revelaction/entail/cost"
	"github.com/revelaction/entail/score"
)

var ErrInvalid = errors.New("invalid config")

// Config holds the entail options. Command flags override the file values.
type Config struct {
	// Threshold of the entailment decision rule.
	Threshold float64 `yaml:"threshold"`

	// Workers is the number of pairs scored concurrently.
	Workers int `yaml:"workers"`

	// Cost is the cost function of the general distance reported next to
	// the directional one: "unit" or "idf".
	Cost string `yaml:"cost"`

	LogLevel string `yaml:"log_level"`
	LogJSON  bool   `yaml:"log_json"`
}

func Default() Config {
	return Config{
		Threshold: score.DefaultThreshold,
		Workers:   runtime.NumCPU(),
		Cost:      cost.UnitName,
		LogLevel:  "info",
	}
}

// Load reads the YAML file at path over the defaults. Keys absent from the
// file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read the config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse the config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("%w: threshold %v not in [0, 1]", ErrInvalid, c.Threshold)
	}

	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalid, c.Workers)
	}

	switch c.Cost {
	case cost.UnitName, cost.IDFName:
	default:
		return fmt.Errorf("%w: cost %q, expected %q or %q", ErrInvalid, c.Cost, cost.UnitName, cost.IDFName)
	}

	return nil
}
