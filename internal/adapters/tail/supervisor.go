package tail

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jclulow/junk-tempexporter/internal/ports"
)

// Supervisor restarts tail sessions forever, separated by a fixed backoff.
// It is the sole writer into whatever the LineHandler feeds; only one session
// ever runs at a time and each gets a fresh file handle and accumulator.
type Supervisor struct {
	path    string
	poll    time.Duration
	backoff time.Duration
	clock   ports.Clock
	obs     ports.Observability
	handle  LineHandler
}

func NewSupervisor(path string, poll, backoff time.Duration, handle LineHandler, obs ports.Observability, clock ports.Clock) *Supervisor {
	if clock == nil {
		clock = systemClock{}
	}
	return &Supervisor{
		path:    path,
		poll:    poll,
		backoff: backoff,
		clock:   clock,
		obs:     obs,
		handle:  handle,
	}
}

// Run blocks, restarting sessions until ctx is cancelled. Session failures
// are logged and retried; nothing that happens inside a session is fatal to
// the caller.
func (s *Supervisor) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		sess := &session{
			id:     uuid.NewString(),
			path:   s.path,
			poll:   s.poll,
			clock:  s.clock,
			obs:    s.obs,
			handle: s.handle,
		}

		s.obs.IncCounter("tempexporter_sessions_total", 1)
		start := s.clock.Now()
		err := sess.run(ctx)
		s.obs.ObserveDuration("tempexporter_session_duration_seconds",
			s.clock.Now().Sub(start).Seconds())

		switch {
		case errors.Is(err, context.Canceled):
			return
		case err != nil:
			s.obs.IncCounter("tempexporter_session_errors_total", 1)
			s.obs.LogError("session_failed", err,
				ports.Field{Key: "session", Value: sess.id},
				ports.Field{Key: "path", Value: s.path})
		default:
			s.obs.LogInfo("session_reopening",
				ports.Field{Key: "session", Value: sess.id},
				ports.Field{Key: "path", Value: s.path})
		}

		if ctx.Err() != nil {
			return
		}
		s.clock.Sleep(s.backoff)
	}
}
