package tempexporter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	nuts "github.com/vaudience/go-nuts"

	"github.com/jclulow/junk-tempexporter/internal/adapters/cache"
	"github.com/jclulow/junk-tempexporter/internal/adapters/export"
	"github.com/jclulow/junk-tempexporter/internal/adapters/observability"
	"github.com/jclulow/junk-tempexporter/internal/adapters/tail"
	"github.com/jclulow/junk-tempexporter/internal/app/pipeline"
	"github.com/jclulow/junk-tempexporter/internal/ports"
)

// Option customizes the dependencies used by Runtime.
type Option func(*overrides)

type overrides struct {
	store    ports.RecordStore
	obs      ports.Observability
	clock    ports.Clock
	onRecord []pipeline.RecordHandler
}

// WithStore injects a custom latest-value store implementation.
func WithStore(store ports.RecordStore) Option {
	return func(o *overrides) {
		o.store = store
	}
}

// WithObservability plugs in a custom metrics/logging backend.
func WithObservability(obs ports.Observability) Option {
	return func(o *overrides) {
		o.obs = obs
	}
}

// WithClock overrides the time source used for the poll and backoff sleeps.
func WithClock(clock ports.Clock) Option {
	return func(o *overrides) {
		o.clock = clock
	}
}

// WithRecordHandler registers a callback invoked for every reading after it
// lands in the store, so callers can forward readings anywhere they like.
func WithRecordHandler(fn RecordHandler) Option {
	return func(o *overrides) {
		if fn != nil {
			o.onRecord = append(o.onRecord, fn)
		}
	}
}

// Runtime wires the tail supervisor, the latest-value cache, and the metrics
// HTTP server together, and exposes simple lifecycle hooks for embedding the
// exporter inside any Go service.
type Runtime struct {
	cfg      *Config
	store    ports.RecordStore
	obs      ports.Observability
	clock    ports.Clock
	onRecord []pipeline.RecordHandler

	collector *export.SensorCollector
	srv       *http.Server
	cancel    context.CancelFunc
	tailDone  chan struct{}
}

// NewRuntime bootstraps the default adapters (in-memory sensor cache,
// Prometheus observability, system clock). Option values can override any of
// them.
func NewRuntime(cfg *Config, opts ...Option) (*Runtime, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var ov overrides
	for _, opt := range opts {
		if opt != nil {
			opt(&ov)
		}
	}

	store := ov.store
	if store == nil {
		store = cache.New()
	}

	obs := ov.obs
	if obs == nil {
		obs = observability.NewPromObs()
	}

	collector := export.NewSensorCollector(store, cfg.Locations)
	if err := prometheus.Register(collector); err != nil {
		return nil, fmt.Errorf("register sensor collector: %w", err)
	}

	return &Runtime{
		cfg:       cfg,
		store:     store,
		obs:       obs,
		clock:     ov.clock,
		onRecord:  ov.onRecord,
		collector: collector,
	}, nil
}

// Store returns the read-only view of the sensor cache.
func (r *Runtime) Store() ports.SnapshotReader {
	return r.store
}

// Start launches the tail supervisor and the HTTP server and returns
// immediately; call Run to block on a context instead.
func (r *Runtime) Start() error {
	if r == nil {
		return fmt.Errorf("runtime is nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	handle := pipeline.Ingest(r.cfg.Input.Path, r.store, r.obs, r.onRecord...)
	sup := tail.NewSupervisor(r.cfg.Input.Path, r.cfg.Input.PollInterval,
		r.cfg.Input.ReopenBackoff, handle, r.obs, r.clock)

	r.tailDone = make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(r.tailDone)
	}()

	r.startHTTP()
	return nil
}

// Run starts the runtime and blocks until the provided context is cancelled,
// then attempts a graceful shutdown of the HTTP side. The tail loop itself
// stops before its next session.
func (r *Runtime) Run(ctx context.Context) error {
	if err := r.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.Shutdown(shutdownCtx)
}

// Shutdown stops the HTTP server, prevents the supervisor from starting
// further sessions, and releases the collector registration so a fresh
// Runtime can be built in the same process.
func (r *Runtime) Shutdown(ctx context.Context) error {
	var errs []error

	if r.cancel != nil {
		r.cancel()
	}

	if r.collector != nil {
		prometheus.Unregister(r.collector)
		r.collector = nil
	}

	if r.srv != nil {
		if err := r.srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs = append(errs, err)
		}
	}

	if r.tailDone != nil {
		select {
		case <-r.tailDone:
		case <-ctx.Done():
		}
	}

	return errors.Join(errs...)
}

func (r *Runtime) startHTTP() {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	router.HandleFunc("/sensors", r.handleSensors).Methods(http.MethodGet)

	r.srv = &http.Server{
		Addr:    r.cfg.Metrics.Addr,
		Handler: handlers.LoggingHandler(os.Stdout, router),
	}

	go func() {
		nuts.L.Infof("[Server] listening on %s", r.srv.Addr)
		if err := r.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			nuts.L.Errorf("[Server] metrics server exited: %v", err)
		}
	}()
}

func (r *Runtime) handleSensors(w http.ResponseWriter, _ *http.Request) {
	type sensorView struct {
		ID       string `json:"id"`
		Location string `json:"location,omitempty"`
		SensorReading
	}

	entries := r.store.Snapshot()
	out := make([]sensorView, 0, len(entries))
	for _, e := range entries {
		out = append(out, sensorView{
			ID:            e.ID,
			Location:      r.cfg.Locations[e.ID],
			SensorReading: e.Reading,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		nuts.L.Errorf("[Server] encode sensors: %v", err)
	}
}
