// FILE: logforge/src/internal/status/server.go
package status

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"logforge/src/internal/config"
	"logforge/src/internal/service"
	"logforge/src/internal/version"

	"github.com/lixenwraith/log"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

// Server exposes a read-only HTTP status endpoint with the service's
// aggregated metrics. Requests are rate limited per client address.
type Server struct {
	cfg     *config.StatusConfig
	svc     *service.Service
	server  *fasthttp.Server
	clients sync.Map // remote IP -> *clientLimiter
	logger  *log.Logger
	done    chan struct{}
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewServer creates the status server; call Start to begin serving.
func NewServer(cfg *config.StatusConfig, svc *service.Service, logger *log.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		svc:    svc,
		logger: logger,
		done:   make(chan struct{}),
	}
	s.server = &fasthttp.Server{
		Handler:         s.handleRequest,
		CloseOnShutdown: true,
	}
	return s
}

// Start launches the listener in the background.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("msg", "Starting status server",
			"component", "status_server",
			"addr", addr)
		errChan <- s.server.ListenAndServe(addr)
	}()

	go s.cleanupLoop()

	select {
	case err := <-errChan:
		return fmt.Errorf("status server failed: %w", err)
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// Shutdown stops the listener and the limiter cleanup.
func (s *Server) Shutdown() {
	close(s.done)
	if err := s.server.Shutdown(); err != nil {
		s.logger.Error("msg", "Status server shutdown error",
			"component", "status_server",
			"error", err)
	}
}

func (s *Server) handleRequest(ctx *fasthttp.RequestCtx) {
	if !s.allow(ctx.RemoteIP().String()) {
		ctx.Error("Rate limit exceeded", fasthttp.StatusTooManyRequests)
		return
	}

	if string(ctx.Path()) != "/status" {
		ctx.Error("Not found", fasthttp.StatusNotFound)
		return
	}

	stats := s.svc.GetGlobalStats()
	stats["version"] = version.Short()

	body, err := json.Marshal(stats)
	if err != nil {
		ctx.Error("Internal error", fasthttp.StatusInternalServerError)
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}

// allow checks the per-client token bucket, creating one on first
// contact.
func (s *Server) allow(clientIP string) bool {
	if val, ok := s.clients.Load(clientIP); ok {
		client := val.(*clientLimiter)
		client.lastSeen = time.Now()
		return client.limiter.Allow()
	}

	client := &clientLimiter{
		limiter:  rate.NewLimiter(rate.Limit(s.cfg.RequestsPerSecond), int(s.cfg.Burst)),
		lastSeen: time.Now(),
	}
	s.clients.Store(clientIP, client)
	return client.limiter.Allow()
}

// cleanupLoop drops limiters for clients not seen recently.
func (s *Server) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			threshold := time.Now().Add(-2 * time.Minute)
			s.clients.Range(func(key, value any) bool {
				if value.(*clientLimiter).lastSeen.Before(threshold) {
					s.clients.Delete(key)
				}
				return true
			})
		}
	}
}
