// FILE: logforge/src/internal/format/format.go
package format

import (
	"fmt"

	"logforge/src/internal/config"
	"logforge/src/internal/core"

	"github.com/lixenwraith/log"
)

// Formatter transforms a LogRecord into a rendered line. The returned
// slice always ends with exactly one newline.
type Formatter interface {
	Format(rec core.LogRecord) ([]byte, error)

	// Name returns the formatter type name
	Name() string
}

// New creates a Formatter based on the format configuration.
func New(cfg *config.FormatConfig, logger *log.Logger) (Formatter, error) {
	switch cfg.Mode {
	case "http":
		return NewHTTPFormatter(cfg, logger)
	case "custom":
		return NewTemplateFormatter(cfg, logger)
	case "json":
		return NewJSONFormatter(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown format mode: %s", cfg.Mode)
	}
}

func terminate(line []byte) []byte {
	if len(line) == 0 || line[len(line)-1] != '\n' {
		line = append(line, '\n')
	}
	return line
}
