// FILE: logforge/src/internal/format/http.go
package format

import (
	"fmt"

	"logforge/src/internal/config"
	"logforge/src/internal/core"

	"github.com/lixenwraith/log"
)

// HTTPFormatter renders records in an access-log-like layout:
// timestamp, level, client IP, request line, status, message and the
// quoted user agent.
type HTTPFormatter struct {
	timestampFormat string
	logger          *log.Logger
}

// NewHTTPFormatter creates an access-log formatter.
func NewHTTPFormatter(cfg *config.FormatConfig, logger *log.Logger) (*HTTPFormatter, error) {
	return &HTTPFormatter{
		timestampFormat: cfg.TimestampFormat,
		logger:          logger,
	}, nil
}

// Format renders one record.
func (f *HTTPFormatter) Format(rec core.LogRecord) ([]byte, error) {
	line := fmt.Sprintf("%s %s %s \"%s %s HTTP/1.1\" %d %s \"%s\"",
		rec.Time.Format(f.timestampFormat),
		rec.Level,
		rec.ClientIP,
		rec.Method,
		rec.Path,
		rec.HTTPStatus,
		rec.Message,
		rec.UserAgent)
	return terminate([]byte(line)), nil
}

// Returns the formatter name
func (f *HTTPFormatter) Name() string {
	return "http"
}
