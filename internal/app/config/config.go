package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Input     InputConfig       `yaml:"input"`
	Metrics   MetricsConfig     `yaml:"metrics"`
	Locations map[string]string `yaml:"locations"`
}

// InputConfig points the tailer at the SDR log file and controls how
// aggressively it polls for new data.
type InputConfig struct {
	Path          string        `yaml:"path"`
	PollInterval  time.Duration `yaml:"poll_interval"`
	ReopenBackoff time.Duration `yaml:"reopen_backoff"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) ApplyDefaults() {
	if c.Input.PollInterval == 0 {
		c.Input.PollInterval = time.Second
	}
	if c.Input.ReopenBackoff == 0 {
		c.Input.ReopenBackoff = 2 * time.Second
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = "0.0.0.0:4547"
	}
	if c.Locations == nil {
		c.Locations = map[string]string{}
	}
}

func (c *Config) Validate() error {
	if c.Input.Path == "" {
		return fmt.Errorf("input.path is required")
	}
	if c.Input.PollInterval < 0 {
		return fmt.Errorf("input.poll_interval must not be negative")
	}
	if c.Input.ReopenBackoff < 0 {
		return fmt.Errorf("input.reopen_backoff must not be negative")
	}
	if c.Metrics.Addr == "" {
		return fmt.Errorf("metrics.addr is required")
	}
	return nil
}
