// FILE: logforge/src/internal/format/json.go
package format

import (
	"encoding/json"
	"fmt"

	"logforge/src/internal/config"
	"logforge/src/internal/core"

	"github.com/lixenwraith/log"
)

// JSONFormatter produces one JSON object per line.
type JSONFormatter struct {
	timestampFormat string
	logger          *log.Logger
}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter(cfg *config.FormatConfig, logger *log.Logger) (*JSONFormatter, error) {
	return &JSONFormatter{
		timestampFormat: cfg.TimestampFormat,
		logger:          logger,
	}, nil
}

// Format marshals the record, omitting the HTTP fields when unset.
func (f *JSONFormatter) Format(rec core.LogRecord) ([]byte, error) {
	output := map[string]any{
		"timestamp": rec.Time.Format(f.timestampFormat),
		"level":     rec.Level,
		"message":   rec.Message,
	}

	if rec.AppName != "" {
		output["app_name"] = rec.AppName
	}
	if rec.HTTPStatus != 0 {
		output["status"] = rec.HTTPStatus
		output["method"] = rec.Method
		output["path"] = rec.Path
		output["client_ip"] = rec.ClientIP
		output["user_agent"] = rec.UserAgent
	}

	result, err := json.Marshal(output)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return terminate(result), nil
}

// Returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
