// FILE: logforge/src/internal/core/record.go
package core

import "time"

// LogRecord is a single synthesized log line before rendering.
// Records are created per emission, handed to a formatter and a sink,
// and never retained.
type LogRecord struct {
	Time    time.Time `json:"time"`
	Level   string    `json:"level"`
	Message string    `json:"message"`
	AppName string    `json:"app_name,omitempty"`

	// HTTP access-log fields, populated only in http format mode.
	HTTPStatus int    `json:"http_status,omitempty"`
	Method     string `json:"method,omitempty"`
	Path       string `json:"path,omitempty"`
	ClientIP   string `json:"client_ip,omitempty"`
	UserAgent  string `json:"user_agent,omitempty"`
}
