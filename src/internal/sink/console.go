// FILE: logforge/src/internal/sink/console.go
package sink

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"logforge/src/internal/config"

	"github.com/lixenwraith/log"
)

// ConsoleSink writes rendered lines directly to stdout or stderr.
type ConsoleSink struct {
	target    string
	out       io.Writer
	startTime time.Time
	logger    *log.Logger

	// Statistics
	totalWrites atomic.Uint64
	totalBytes  atomic.Uint64
}

// NewConsoleSink creates a console sink for the configured target.
func NewConsoleSink(cfg *config.ConsoleSinkConfig, logger *log.Logger) (*ConsoleSink, error) {
	s := &ConsoleSink{
		target:    cfg.Target,
		startTime: time.Now(),
		logger:    logger,
	}

	switch cfg.Target {
	case "stdout":
		s.out = os.Stdout
	case "stderr":
		s.out = os.Stderr
	default:
		return nil, fmt.Errorf("invalid console target: %s", cfg.Target)
	}

	logger.Info("msg", "Console sink started",
		"component", "console_sink",
		"target", cfg.Target)
	return s, nil
}

func (s *ConsoleSink) Write(line []byte) error {
	if _, err := s.out.Write(line); err != nil {
		return fmt.Errorf("console write failed: %w", err)
	}
	s.totalWrites.Add(1)
	s.totalBytes.Add(uint64(len(line)))
	return nil
}

func (s *ConsoleSink) Close() error {
	s.logger.Info("msg", "Console sink stopped", "component", "console_sink")
	return nil
}

func (s *ConsoleSink) GetStats() Stats {
	return Stats{
		Type:        "console",
		TotalWrites: s.totalWrites.Load(),
		TotalBytes:  s.totalBytes.Load(),
		StartTime:   s.startTime,
		Details: map[string]any{
			"target": s.target,
		},
	}
}
