package observability

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPromObsMetrics(t *testing.T) {
	origReg := prometheus.DefaultRegisterer
	origGatherer := prometheus.DefaultGatherer
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = origReg
		prometheus.DefaultGatherer = origGatherer
	})

	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg

	obs := NewPromObs()

	obs.IncCounter("tempexporter_lines_total", 5)
	if got := testutil.ToFloat64(obs.counters["tempexporter_lines_total"]); got != 5 {
		t.Fatalf("expected lines counter 5, got %f", got)
	}

	obs.IncCounter("tempexporter_rotations_total", 1)
	if got := testutil.ToFloat64(obs.counters["tempexporter_rotations_total"]); got != 1 {
		t.Fatalf("expected rotation counter 1, got %f", got)
	}

	obs.SetGauge("tempexporter_file_offset_bytes", 3616)
	if got := testutil.ToFloat64(obs.gauges["tempexporter_file_offset_bytes"]); got != 3616 {
		t.Fatalf("expected offset gauge 3616, got %f", got)
	}

	obs.ObserveDuration("tempexporter_session_duration_seconds", 12.5)
	hCollector := obs.histos["tempexporter_session_duration_seconds"].(prometheus.Collector)
	if samples := testutil.CollectAndCount(hCollector); samples != 1 {
		t.Fatalf("expected duration histogram to record 1 sample, got %d", samples)
	}

	obs.RecordParseFailure("sdr.json", fmt.Errorf("bad line"))
	if got := testutil.ToFloat64(obs.counters["tempexporter_parse_errors_total"]); got != 1 {
		t.Fatalf("expected parse error counter 1, got %f", got)
	}

	// Unregistered names are ignored rather than panicking.
	obs.IncCounter("tempexporter_no_such_counter", 1)
	obs.SetGauge("tempexporter_no_such_gauge", 1)
}
