package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	PoolPath    string // pool declaration hcl files
	ModulesPath string // category manifests + paired Go implementations

	LogFormat  string
	LogLevel   string
	StatusPort int
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.PoolPath == "" {
		return nil, errors.New("PoolPath is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
