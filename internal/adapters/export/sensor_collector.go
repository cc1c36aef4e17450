package export

import (
	"github.com/prometheus/client_golang/prometheus"
	nuts "github.com/vaudience/go-nuts"

	"github.com/jclulow/junk-tempexporter/internal/ports"
)

// SensorCollector exposes the latest reading per sensor as Prometheus gauges.
// Each scrape takes one cache snapshot; no lock is held while the exposition
// is rendered. Sensor ids are mapped to human-readable locations via
// configuration, and readings without a mapping are logged and skipped.
type SensorCollector struct {
	source    ports.SnapshotReader
	locations map[string]string

	temperature *prometheus.Desc
	humidity    *prometheus.Desc
	battery     *prometheus.Desc
}

func NewSensorCollector(source ports.SnapshotReader, locations map[string]string) *SensorCollector {
	return &SensorCollector{
		source:    source,
		locations: locations,
		temperature: prometheus.NewDesc("temperature_degrees_celsius",
			"temperature in degrees celsius", []string{"location"}, nil),
		humidity: prometheus.NewDesc("temperature_humidity_percent",
			"relative humidity", []string{"location"}, nil),
		battery: prometheus.NewDesc("temperature_battery_ok",
			"sensor battery health", []string{"location"}, nil),
	}
}

func (c *SensorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.temperature
	ch <- c.humidity
	ch <- c.battery
}

func (c *SensorCollector) Collect(ch chan<- prometheus.Metric) {
	for _, e := range c.source.Snapshot() {
		location, ok := c.locations[e.ID]
		if !ok {
			nuts.L.Warnf("[Export] new temperature sensor? %s (model %s)", e.ID, e.Reading.Model)
			continue
		}

		ch <- prometheus.MustNewConstMetric(c.temperature,
			prometheus.GaugeValue, e.Reading.TemperatureC, location)
		ch <- prometheus.MustNewConstMetric(c.humidity,
			prometheus.GaugeValue, e.Reading.Humidity, location)
		ch <- prometheus.MustNewConstMetric(c.battery,
			prometheus.GaugeValue, float64(e.Reading.BatteryOK), location)
	}
}

var _ prometheus.Collector = (*SensorCollector)(nil)
