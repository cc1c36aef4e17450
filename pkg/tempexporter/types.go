package tempexporter

import (
	"github.com/jclulow/junk-tempexporter/internal/app/config"
	"github.com/jclulow/junk-tempexporter/internal/app/pipeline"
	"github.com/jclulow/junk-tempexporter/internal/domain"
	"github.com/jclulow/junk-tempexporter/internal/ports"
)

// Config re-exports the root configuration struct so callers can construct or
// modify it programmatically.
type Config = config.Config

type (
	// InputConfig points the tailer at the SDR log file.
	InputConfig = config.InputConfig
	// MetricsConfig configures the metrics HTTP server.
	MetricsConfig = config.MetricsConfig
	// SensorReading is the latest decoded report from one physical sensor.
	SensorReading = domain.SensorReading
	// SensorEntry is one (id, reading) pair copied out of the cache.
	SensorEntry = ports.SensorEntry
	// RecordHandler observes each reading after it reaches the cache.
	RecordHandler = pipeline.RecordHandler
)

// LoadConfig loads YAML from disk using the internal config reader.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}
