package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ModelPath string // hcl model-definition files
	Steps     int    // number of clock ticks to run; 0 runs the full schedule

	LogFormat string
	LogLevel  string
}

// NewConfig validates and returns a run configuration.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ModelPath == "" {
		return nil, errors.New("ModelPath is a required configuration field and cannot be empty")
	}
	if cfg.Steps < 0 {
		return nil, errors.New("Steps cannot be negative")
	}
	return &cfg, nil
}
