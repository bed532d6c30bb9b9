package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
}

type MetricsConfig struct {
	Addr    string `yaml:"addr"`
	PushURL string `yaml:"push_url"`
	PushJob string `yaml:"push_job"`
	Wait    bool   `yaml:"wait"`
}

// ValidFormats lists the output formats the CLI can render.
var ValidFormats = map[string]bool{"text": true, "json": true, "csv": true}

func defaults() Config {
	return Config{
		Output: OutputConfig{
			Format: "text",
		},
		Metrics: MetricsConfig{
			PushJob: "cs_balancer",
		},
	}
}

func Load() (*Config, error) {
	cfg := defaults()

	path := os.Getenv("CSBALANCE_CONFIG")
	if path == "" {
		path = "config/csbalance.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Config file not found, use defaults + env
	} else {
		// Expand environment variables in YAML
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that would otherwise fail late in the run.
func (c *Config) Validate() error {
	if !ValidFormats[c.Output.Format] {
		return fmt.Errorf("format must be one of: text, json, csv (got: %s)", c.Output.Format)
	}
	if c.Metrics.PushURL != "" && c.Metrics.PushJob == "" {
		return fmt.Errorf("push_job is required when push_url is set")
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CSBALANCE_FORMAT"); v != "" {
		cfg.Output.Format = v
	}
	if v := os.Getenv("CSBALANCE_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	if v := os.Getenv("CSBALANCE_PUSH_URL"); v != "" {
		cfg.Metrics.PushURL = v
	}
	if v := os.Getenv("CSBALANCE_PUSH_JOB"); v != "" {
		cfg.Metrics.PushJob = v
	}
}
