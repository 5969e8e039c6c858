// FILE: logforge/src/internal/service/session.go
package service

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"logforge/src/internal/clock"
	"logforge/src/internal/config"
	"logforge/src/internal/engine"
	"logforge/src/internal/format"
	"logforge/src/internal/metrics"
	"logforge/src/internal/sink"
	"logforge/src/internal/source"

	"github.com/google/uuid"
	"github.com/lixenwraith/log"
)

// Session is one running generation engine together with its sink and
// formatter. Stopping the session cancels the engine within one pacing
// tick and closes the sink.
type Session struct {
	ID string

	engine *engine.Engine
	out    sink.Sink
	cancel context.CancelFunc
	done   chan struct{}
	logger *log.Logger

	mu    sync.Mutex
	final metrics.Snapshot
	err   error
}

// newSession wires formatter, sink, synthesizer and engine from the
// configuration and launches the run loop.
func newSession(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Session, error) {
	formatter, err := format.New(&cfg.Format, logger)
	if err != nil {
		return nil, err
	}

	out, err := sink.New(&cfg.Output, logger)
	if err != nil {
		return nil, err
	}

	rng := newRand(cfg.Generator.Seed)
	synth, err := source.NewSynthesizer(cfg, rng, logger)
	if err != nil {
		out.Close()
		return nil, err
	}

	eng, err := engine.New(&cfg.Generator, synth, formatter, out, clock.NewSystem(), rng, logger)
	if err != nil {
		out.Close()
		return nil, err
	}

	sessionCtx, cancel := context.WithCancel(ctx)
	sess := &Session{
		ID:     uuid.NewString(),
		engine: eng,
		out:    out,
		cancel: cancel,
		done:   make(chan struct{}),
		logger: logger,
	}

	go sess.run(sessionCtx)
	return sess, nil
}

func (s *Session) run(ctx context.Context) {
	defer close(s.done)

	snap, err := s.engine.Run(ctx)

	s.mu.Lock()
	s.final = snap
	s.err = err
	s.mu.Unlock()

	if closeErr := s.out.Close(); closeErr != nil {
		s.logger.Error("msg", "Failed to close sink",
			"component", "session",
			"session", s.ID,
			"error", closeErr)
	}

	if err != nil {
		s.logger.Error("msg", "Session ended with error",
			"component", "session",
			"session", s.ID,
			"error", err,
			"metrics", metrics.FormatSnapshot(snap))
		return
	}
	s.logger.Info("msg", "Session ended",
		"component", "session",
		"session", s.ID,
		"metrics", metrics.FormatSnapshot(snap))
}

// Stop cancels the engine, waits for the loop to finish and returns the
// final snapshot.
func (s *Session) Stop() metrics.Snapshot {
	s.cancel()
	<-s.done

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.final
}

// Wait blocks until the session ends on its own (bounded runs) or is
// stopped, returning the final snapshot and any run error.
func (s *Session) Wait() (metrics.Snapshot, error) {
	<-s.done

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.final, s.err
}

// Done reports session completion for select loops.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Snapshot returns current metrics without disturbing the engine.
func (s *Session) Snapshot() metrics.Snapshot {
	select {
	case <-s.done:
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.final
	default:
		return s.engine.Snapshot()
	}
}

// Stats exposes session metrics for the status endpoint.
func (s *Session) Stats() map[string]any {
	snap := s.Snapshot()
	return map[string]any{
		"total_lines":     snap.TotalLines,
		"total_bytes":     snap.TotalBytes,
		"elapsed_seconds": snap.Elapsed.Seconds(),
		"avg_rate":        snap.AvgRate,
		"sink":            s.out.GetStats(),
	}
}

// newRand derives a dedicated random source; seed 0 means time-seeded.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
