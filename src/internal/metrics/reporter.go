// FILE: logforge/src/internal/metrics/reporter.go
package metrics

import (
	"fmt"

	"logforge/src/internal/core"
)

// FormatSnapshot renders a snapshot as a human-readable one-liner for
// operational logging.
func FormatSnapshot(s Snapshot) string {
	return fmt.Sprintf(
		"Total Lines: %d, Total Data: %.3f MB, Duration: %.3f seconds, "+
			"Average Rate: %.3f MB/s, Maximum Rate: %.3f MB/s, Minimum Rate: %.3f MB/s",
		s.TotalLines,
		float64(s.TotalBytes)/core.BytesPerMB,
		s.Elapsed.Seconds(),
		s.AvgRate/core.BytesPerMB,
		s.MaxRate/core.BytesPerMB,
		s.MinRate/core.BytesPerMB,
	)
}
