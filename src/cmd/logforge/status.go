// FILE: logforge/src/cmd/logforge/status.go
package main

import (
	"context"
	"time"

	"logforge/src/internal/metrics"
	"logforge/src/internal/service"
)

// Periodically logs generation metrics
func metricsReporter(ctx context.Context, session *service.Session) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-session.Done():
			return
		case <-ticker.C:
			snap := session.Snapshot()
			logger.Info("msg", "Metrics report",
				"component", "metrics_reporter",
				"session", session.ID,
				"metrics", metrics.FormatSnapshot(snap))
		}
	}
}
