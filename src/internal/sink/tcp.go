// FILE: logforge/src/internal/sink/tcp.go
package sink

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"logforge/src/internal/config"

	"github.com/lixenwraith/log"
	"github.com/lixenwraith/log/compat"
	"github.com/panjf2000/gnet/v2"
)

// TCPSink broadcasts rendered lines to connected TCP clients, so a
// downstream collector can be exercised over the wire instead of a
// file. Writes never block the engine: when the broadcast buffer is
// full the line is dropped and counted.
type TCPSink struct {
	cfg *config.TCPSinkConfig

	server   *tcpServer
	engine   *gnet.Engine
	engineMu sync.Mutex

	input     chan []byte
	done      chan struct{}
	wg        sync.WaitGroup
	startTime time.Time
	logger    *log.Logger

	// Statistics
	activeConns atomic.Int64
	totalWrites atomic.Uint64
	totalBytes  atomic.Uint64
	droppedFull atomic.Uint64
	writeErrors atomic.Uint64
}

// NewTCPSink starts the broadcast server and returns once it is
// accepting connections.
func NewTCPSink(cfg *config.TCPSinkConfig, logger *log.Logger) (*TCPSink, error) {
	t := &TCPSink{
		cfg:       cfg,
		input:     make(chan []byte, cfg.BufferSize),
		done:      make(chan struct{}),
		startTime: time.Now(),
		logger:    logger,
	}
	t.server = &tcpServer{
		sink:    t,
		clients: make(map[gnet.Conn]struct{}),
	}

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.broadcastLoop()
	}()

	addr := fmt.Sprintf("tcp://%s:%d", cfg.Host, cfg.Port)
	gnetLogger := compat.NewGnetAdapter(logger)

	errChan := make(chan error, 1)
	go func() {
		err := gnet.Run(t.server, addr,
			gnet.WithLogger(gnetLogger),
			gnet.WithMulticore(true),
			gnet.WithReusePort(true),
		)
		if err != nil {
			logger.Error("msg", "TCP server failed",
				"component", "tcp_sink",
				"port", cfg.Port,
				"error", err)
		}
		errChan <- err
	}()

	// Wait briefly for the server to start or fail
	select {
	case err := <-errChan:
		close(t.done)
		t.wg.Wait()
		return nil, fmt.Errorf("tcp sink failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
		logger.Info("msg", "TCP sink started",
			"component", "tcp_sink",
			"port", cfg.Port)
		return t, nil
	}
}

func (t *TCPSink) Write(line []byte) error {
	data := make([]byte, len(line))
	copy(data, line)

	select {
	case t.input <- data:
		t.totalWrites.Add(1)
		t.totalBytes.Add(uint64(len(line)))
	default:
		t.droppedFull.Add(1)
	}
	return nil
}

func (t *TCPSink) Close() error {
	t.logger.Info("msg", "Stopping TCP sink")
	close(t.done)

	t.engineMu.Lock()
	engine := t.engine
	t.engineMu.Unlock()

	if engine != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		(*engine).Stop(ctx)
	}

	t.wg.Wait()
	t.logger.Info("msg", "TCP sink stopped")
	return nil
}

func (t *TCPSink) GetStats() Stats {
	return Stats{
		Type:              "tcp",
		TotalWrites:       t.totalWrites.Load(),
		TotalBytes:        t.totalBytes.Load(),
		ActiveConnections: t.activeConns.Load(),
		StartTime:         t.startTime,
		Details: map[string]any{
			"port":         t.cfg.Port,
			"dropped_full": t.droppedFull.Load(),
			"write_errors": t.writeErrors.Load(),
		},
	}
}

func (t *TCPSink) broadcastLoop() {
	for {
		select {
		case data := <-t.input:
			t.server.broadcast(data)
		case <-t.done:
			return
		}
	}
}

// tcpServer implements the gnet.EventHandler interface for the sink.
type tcpServer struct {
	gnet.BuiltinEventEngine
	sink    *TCPSink
	clients map[gnet.Conn]struct{}
	mu      sync.RWMutex
}

func (s *tcpServer) broadcast(data []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for c := range s.clients {
		if err := c.AsyncWrite(data, nil); err != nil {
			s.sink.writeErrors.Add(1)
		}
	}
}

func (s *tcpServer) OnBoot(eng gnet.Engine) gnet.Action {
	s.sink.engineMu.Lock()
	s.sink.engine = &eng
	s.sink.engineMu.Unlock()

	s.sink.logger.Debug("msg", "TCP server booted",
		"component", "tcp_sink",
		"port", s.sink.cfg.Port)
	return gnet.None
}

func (s *tcpServer) OnOpen(c gnet.Conn) (out []byte, action gnet.Action) {
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	newCount := s.sink.activeConns.Add(1)
	s.sink.logger.Debug("msg", "TCP client connected",
		"component", "tcp_sink",
		"remote_addr", c.RemoteAddr().String(),
		"active_connections", newCount)
	return nil, gnet.None
}

func (s *tcpServer) OnClose(c gnet.Conn, err error) gnet.Action {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()

	newCount := s.sink.activeConns.Add(-1)
	s.sink.logger.Debug("msg", "TCP client disconnected",
		"component", "tcp_sink",
		"active_connections", newCount,
		"error", err)
	return gnet.None
}

// OnTraffic drains and discards anything a client sends; the sink is
// broadcast-only.
func (s *tcpServer) OnTraffic(c gnet.Conn) gnet.Action {
	_, _ = c.Next(-1)
	return gnet.None
}
