// FILE: logforge/src/internal/format/template.go
package format

import (
	"regexp"
	"strconv"

	"logforge/src/internal/config"
	"logforge/src/internal/core"

	"github.com/lixenwraith/log"
)

var placeholderRe = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// TemplateFormatter renders records through a user-defined layout with
// ${placeholder} fields. Placeholders that do not name a record field
// pass through literally; a malformed template degrades, it never
// aborts the run.
type TemplateFormatter struct {
	template        string
	timestampFormat string
	logger          *log.Logger
}

// NewTemplateFormatter creates a custom-template formatter.
func NewTemplateFormatter(cfg *config.FormatConfig, logger *log.Logger) (*TemplateFormatter, error) {
	return &TemplateFormatter{
		template:        cfg.Template,
		timestampFormat: cfg.TimestampFormat,
		logger:          logger,
	}, nil
}

// Format substitutes the known placeholders and leaves the rest intact.
func (f *TemplateFormatter) Format(rec core.LogRecord) ([]byte, error) {
	message := rec.Message
	if rec.AppName != "" {
		message = rec.AppName + ": " + message
	}

	values := map[string]string{
		"timestamp":   rec.Time.Format(f.timestampFormat),
		"log_level":   rec.Level,
		"level":       rec.Level,
		"message":     message,
		"app_name":    rec.AppName,
		"client_ip":   rec.ClientIP,
		"method":      rec.Method,
		"path":        rec.Path,
		"user_agent":  rec.UserAgent,
		"status_code": strconv.Itoa(rec.HTTPStatus),
	}

	line := placeholderRe.ReplaceAllStringFunc(f.template, func(match string) string {
		name := match[2 : len(match)-1]
		if v, ok := values[name]; ok {
			return v
		}
		return match
	})

	return terminate([]byte(line)), nil
}

// Returns the formatter name
func (f *TemplateFormatter) Name() string {
	return "custom"
}
