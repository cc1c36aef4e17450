package tempexporter

import (
	base "github.com/jclulow/junk-tempexporter/pkg/tempexporter"
)

// Type aliases so consumers can import github.com/jclulow/junk-tempexporter
// directly.
type (
	Config        = base.Config
	InputConfig   = base.InputConfig
	MetricsConfig = base.MetricsConfig
	Runtime       = base.Runtime
	Option        = base.Option
	SensorReading = base.SensorReading
	SensorEntry   = base.SensorEntry
	RecordHandler = base.RecordHandler
)

// Runtime option constructors.
var (
	WithStore         = base.WithStore
	WithObservability = base.WithObservability
	WithClock         = base.WithClock
	WithRecordHandler = base.WithRecordHandler
)

// LoadConfig loads and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	return base.LoadConfig(path)
}

// NewRuntime builds an exporter runtime from a configuration.
func NewRuntime(cfg *Config, opts ...Option) (*Runtime, error) {
	return base.NewRuntime(cfg, opts...)
}
