// FILE: logforge/src/internal/core/const.go
package core

import "time"

// Pacing floor and stall polling for the generation loop.
const (
	// MinEmitDelay clamps the per-line delay so extreme rates do not
	// busy-spin the scheduler.
	MinEmitDelay = 500 * time.Microsecond

	// ZeroRatePollInterval is how long the engine waits before
	// re-checking when the sampled rate is zero.
	ZeroRatePollInterval = 100 * time.Millisecond

	// RetryDelay is the wait before retrying when the pacing bucket
	// has no tokens available.
	RetryDelay = 50 * time.Millisecond
)

const BytesPerMB = 1024 * 1024
