package tail

import (
	"sync"
	"time"

	"github.com/jclulow/junk-tempexporter/internal/ports"
)

// fakeClock records sleeps instead of performing them. The onSleep hook runs
// on the sleeping goroutine, so tests can mutate the tailed file between poll
// cycles without races.
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	sleeps  int
	onSleep func(n int)
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.sleeps++
	n := c.sleeps
	hook := c.onSleep
	c.mu.Unlock()

	if hook != nil {
		hook(n)
	}
}

type mockObs struct {
	mu            sync.Mutex
	counters      map[string]float64
	gauges        map[string]float64
	errors        []error
	parseFailures []error
}

func newMockObs() *mockObs {
	return &mockObs{
		counters: map[string]float64{},
		gauges:   map[string]float64{},
	}
}

func (m *mockObs) LogInfo(msg string, fields ...ports.Field) {}

func (m *mockObs) LogError(msg string, err error, fields ...ports.Field) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, err)
}

func (m *mockObs) LogCritical(msg string, err error, fields ...ports.Field) {
	m.LogError(msg, err, fields...)
}

func (m *mockObs) IncCounter(name string, v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name] += v
}

func (m *mockObs) ObserveDuration(name string, seconds float64) {}

func (m *mockObs) SetGauge(name string, v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gauges[name] = v
}

func (m *mockObs) RecordParseFailure(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.parseFailures = append(m.parseFailures, err)
}

func (m *mockObs) counter(name string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[name]
}

var (
	_ ports.Clock         = (*fakeClock)(nil)
	_ ports.Observability = (*mockObs)(nil)
)
