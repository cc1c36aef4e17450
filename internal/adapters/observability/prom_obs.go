package observability

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	nuts "github.com/vaudience/go-nuts"

	"github.com/jclulow/junk-tempexporter/internal/ports"
)

type PromObs struct {
	counters map[string]prometheus.Counter
	gauges   map[string]prometheus.Gauge
	histos   map[string]prometheus.Observer
}

func NewPromObs() *PromObs {
	lines := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tempexporter_lines_total",
		Help: "Complete lines scanned from the SDR log.",
	})
	records := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tempexporter_records_total",
		Help: "Readings decoded and applied to the cache.",
	})
	parseErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tempexporter_parse_errors_total",
		Help: "Lines dropped because they failed to decode.",
	})
	unknownModels := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tempexporter_unknown_model_total",
		Help: "Lines skipped because the device model is not supported.",
	})
	sessions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tempexporter_sessions_total",
		Help: "Tail sessions opened against the SDR log.",
	})
	sessionErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tempexporter_session_errors_total",
		Help: "Tail sessions that ended with an open or read failure.",
	})
	rotations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tempexporter_rotations_total",
		Help: "Log rotations and truncations detected at EOF.",
	})
	offsetGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "tempexporter_file_offset_bytes",
		Help: "Byte offset consumed by the current tail session.",
	})
	sensorsGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "tempexporter_sensors_tracked",
		Help: "Distinct sensors currently held in the cache.",
	})
	sessionDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "tempexporter_session_duration_seconds",
		Help:    "Lifetime of each tail session from open to end.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	prometheus.MustRegister(lines, records, parseErrors, unknownModels,
		sessions, sessionErrors, rotations, offsetGauge, sensorsGauge,
		sessionDuration)

	return &PromObs{
		counters: map[string]prometheus.Counter{
			"tempexporter_lines_total":          lines,
			"tempexporter_records_total":        records,
			"tempexporter_parse_errors_total":   parseErrors,
			"tempexporter_unknown_model_total":  unknownModels,
			"tempexporter_sessions_total":       sessions,
			"tempexporter_session_errors_total": sessionErrors,
			"tempexporter_rotations_total":      rotations,
		},
		gauges: map[string]prometheus.Gauge{
			"tempexporter_file_offset_bytes": offsetGauge,
			"tempexporter_sensors_tracked":   sensorsGauge,
		},
		histos: map[string]prometheus.Observer{
			"tempexporter_session_duration_seconds": sessionDuration,
		},
	}
}

func (p *PromObs) LogInfo(msg string, fields ...ports.Field) {
	nuts.L.Infof("[Tailer] %s%s", msg, formatFields(fields))
}

func (p *PromObs) LogError(msg string, err error, fields ...ports.Field) {
	nuts.L.Errorf("[Tailer] %s: %v%s", msg, err, formatFields(fields))
}

func (p *PromObs) LogCritical(msg string, err error, fields ...ports.Field) {
	nuts.L.Errorf("[Tailer] CRITICAL %s: %v%s", msg, err, formatFields(fields))
}

func (p *PromObs) IncCounter(name string, v float64) {
	if c, ok := p.counters[name]; ok {
		c.Add(v)
	}
}

func (p *PromObs) ObserveDuration(name string, seconds float64) {
	if h, ok := p.histos[name]; ok {
		h.Observe(seconds)
	}
}

func (p *PromObs) SetGauge(name string, v float64) {
	if g, ok := p.gauges[name]; ok {
		g.Set(v)
	}
}

func (p *PromObs) RecordParseFailure(path string, err error) {
	p.IncCounter("tempexporter_parse_errors_total", 1)
	nuts.L.Warnf("[Tailer] file %s parse error: %v", path, err)
}

func formatFields(fields []ports.Field) string {
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	return b.String()
}

var _ ports.Observability = (*PromObs)(nil)
