package ports

import "github.com/jclulow/junk-tempexporter/internal/domain"

// SensorEntry is one (canonical id, latest reading) pair copied out of the
// store. The Reading is a value copy; mutating it has no effect on the store.
type SensorEntry struct {
	ID      string
	Reading domain.SensorReading
}

// SnapshotReader is the read-only view handed to exposition layers. It must
// not be able to mutate the store.
type SnapshotReader interface {
	// Snapshot returns all entries in a stable, id-sorted order.
	Snapshot() []SensorEntry
	Len() int
}

// RecordStore is the writer-side view used by the ingest path.
type RecordStore interface {
	SnapshotReader
	Upsert(id string, r *domain.SensorReading)
}
