// FILE: logforge/src/internal/service/service.go
package service

import (
	"context"
	"fmt"
	"sync"

	"logforge/src/internal/config"
	"logforge/src/internal/metrics"

	"github.com/lixenwraith/log"
)

// Service manages a collection of generation sessions.
type Service struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *log.Logger
}

// New creates a new, empty service.
func New(ctx context.Context, logger *log.Logger) *Service {
	serviceCtx, cancel := context.WithCancel(ctx)
	return &Service{
		sessions: make(map[string]*Session),
		ctx:      serviceCtx,
		cancel:   cancel,
		logger:   logger,
	}
}

// GetSession returns a session by its handle.
func (s *Service) GetSession(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, exists := s.sessions[id]
	if !exists {
		return nil, fmt.Errorf("session '%s' not found", id)
	}
	return session, nil
}

// ListSessions returns the handles of all currently managed sessions.
func (s *Service) ListSessions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids
}

// StopSession stops a session, removes it from the service and returns
// its final metrics snapshot.
func (s *Service) StopSession(id string) (metrics.Snapshot, error) {
	s.mu.Lock()
	session, exists := s.sessions[id]
	if exists {
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	if !exists {
		return metrics.Snapshot{}, fmt.Errorf("session '%s' not found", id)
	}

	s.logger.Info("msg", "Stopping session", "session", id)
	return session.Stop(), nil
}

// Shutdown gracefully stops all sessions managed by the service.
func (s *Service) Shutdown() {
	s.logger.Info("msg", "Service shutdown initiated")

	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()

	var wg sync.WaitGroup
	for _, session := range sessions {
		wg.Add(1)
		go func(sess *Session) {
			defer wg.Done()
			sess.Stop()
		}(session)
	}
	wg.Wait()

	s.cancel()
	s.logger.Info("msg", "Service shutdown complete")
}

// GetGlobalStats returns statistics for all sessions, keyed by handle.
func (s *Service) GetGlobalStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessionStats := make(map[string]any, len(s.sessions))
	for id, session := range s.sessions {
		sessionStats[id] = session.Stats()
	}

	return map[string]any{
		"total_sessions": len(s.sessions),
		"sessions":       sessionStats,
	}
}

// StartSession builds a session from the configuration and begins
// generating. The returned session handle drives Stop and Snapshot.
func (s *Service) StartSession(cfg *config.Config) (*Session, error) {
	session, err := newSession(s.ctx, cfg, s.logger)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.logger.Info("msg", "Session started",
		"component", "service",
		"session", session.ID,
		"output", cfg.Output.Type,
		"format", cfg.Format.Mode)
	return session, nil
}
