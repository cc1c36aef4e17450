package cache

import (
	"sort"
	"sync"

	"github.com/jclulow/junk-tempexporter/internal/domain"
	"github.com/jclulow/junk-tempexporter/internal/ports"
)

// SensorCache holds the most recent reading per canonical sensor id. There is
// exactly one writer (the tail supervisor) and any number of concurrent
// snapshot readers. Entries are never evicted.
type SensorCache struct {
	mu      sync.RWMutex
	current map[string]domain.SensorReading
}

func New() *SensorCache {
	return &SensorCache{
		current: make(map[string]domain.SensorReading),
	}
}

// Upsert replaces or inserts the reading for id. Last write wins; ordering is
// guaranteed by the single-writer ingest path, not by record timestamps.
func (c *SensorCache) Upsert(id string, r *domain.SensorReading) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current[id] = *r
}

// Snapshot copies out every entry, sorted by id. The lock is held only for
// the copy, never across formatting or I/O downstream.
func (c *SensorCache) Snapshot() []ports.SensorEntry {
	c.mu.RLock()
	out := make([]ports.SensorEntry, 0, len(c.current))
	for id, r := range c.current {
		out = append(out, ports.SensorEntry{ID: id, Reading: r})
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (c *SensorCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.current)
}

var _ ports.RecordStore = (*SensorCache)(nil)
