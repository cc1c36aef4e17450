package pipeline

import (
	"github.com/jclulow/junk-tempexporter/internal/adapters/parse"
	"github.com/jclulow/junk-tempexporter/internal/adapters/tail"
	"github.com/jclulow/junk-tempexporter/internal/domain"
	"github.com/jclulow/junk-tempexporter/internal/ports"
)

// RecordHandler observes each reading after it has been applied to the store.
type RecordHandler func(id string, r domain.SensorReading)

// Ingest builds the tail.LineHandler that decodes each complete log line and
// upserts the result into the store. All parse-level conditions are recovered
// in place: a bad line is dropped and the stream continues, an unrecognized
// device model is skipped silently.
func Ingest(path string, store ports.RecordStore, obs ports.Observability, onRecord ...RecordHandler) tail.LineHandler {
	return func(line []byte) {
		obs.IncCounter("tempexporter_lines_total", 1)

		r, err := parse.Record(line)
		if err != nil {
			obs.RecordParseFailure(path, err)
			return
		}
		if r == nil {
			obs.IncCounter("tempexporter_unknown_model_total", 1)
			return
		}

		id := r.SensorID()
		store.Upsert(id, r)
		obs.IncCounter("tempexporter_records_total", 1)
		obs.SetGauge("tempexporter_sensors_tracked", float64(store.Len()))

		for _, fn := range onRecord {
			fn(id, *r)
		}
	}
}
