// FILE: logforge/src/internal/sink/sink.go
package sink

import (
	"fmt"
	"time"

	"logforge/src/internal/config"

	"github.com/lixenwraith/log"
)

// Sink is a destination for rendered log lines. The engine is the only
// writer: writes are sequential, and a single Write call is never split
// across rotation boundaries.
type Sink interface {
	// Write emits one rendered line, newline included.
	Write(line []byte) error

	// Close releases the sink's resources.
	Close() error

	// GetStats returns sink statistics
	GetStats() Stats
}

// Stats contains statistics about a sink
type Stats struct {
	Type              string
	TotalWrites       uint64
	TotalBytes        uint64
	ActiveConnections int64
	StartTime         time.Time
	Details           map[string]any
}

// New creates the sink selected by the output configuration.
func New(cfg *config.OutputConfig, logger *log.Logger) (Sink, error) {
	switch cfg.Type {
	case "console":
		return NewConsoleSink(&cfg.Console, logger)
	case "file":
		return NewFileSink(&cfg.File, logger)
	case "tcp":
		return NewTCPSink(&cfg.TCP, logger)
	default:
		return nil, fmt.Errorf("unknown sink type: %s", cfg.Type)
	}
}
