// FILE: logforge/src/internal/metrics/collector.go
package metrics

import (
	"sync"
	"time"
)

// Snapshot is a point-in-time, immutable copy of the collector state.
// Rates are in bytes/sec.
type Snapshot struct {
	TotalLines uint64        `json:"total_lines"`
	TotalBytes uint64        `json:"total_bytes"`
	Elapsed    time.Duration `json:"elapsed"`
	AvgRate    float64       `json:"avg_rate"`
	MaxRate    float64       `json:"max_rate"`
	MinRate    float64       `json:"min_rate"`
}

// Collector accumulates generation counters for the lifetime of a run.
// The engine is the only writer; readers get consistent snapshots
// without blocking it beyond a brief mutex hold.
type Collector struct {
	mu         sync.Mutex
	totalLines uint64
	totalBytes uint64
	rates      []float64
	startTime  time.Time
	lastRecord time.Time
	now        func() time.Time
}

// NewCollector creates a collector using the given time source. The
// engine passes its injected clock's Now so virtual-time tests observe
// coherent elapsed values.
func NewCollector(now func() time.Time) *Collector {
	start := now()
	return &Collector{
		startTime:  start,
		lastRecord: start,
		now:        now,
	}
}

// Record accumulates one emission of lines/bytes and samples the
// instantaneous rate since the previous record.
func (c *Collector) Record(lines, bytes uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.totalLines += lines
	c.totalBytes += bytes

	now := c.now()
	if interval := now.Sub(c.lastRecord).Seconds(); interval > 0 {
		c.rates = append(c.rates, float64(bytes)/interval)
	}
	c.lastRecord = now
}

// Snapshot returns an immutable copy of the current totals.
func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		TotalLines: c.totalLines,
		TotalBytes: c.totalBytes,
		Elapsed:    c.now().Sub(c.startTime),
	}

	if len(c.rates) > 0 {
		var sum float64
		snap.MinRate = c.rates[0]
		for _, r := range c.rates {
			sum += r
			if r > snap.MaxRate {
				snap.MaxRate = r
			}
			if r < snap.MinRate {
				snap.MinRate = r
			}
		}
		snap.AvgRate = sum / float64(len(c.rates))
	}

	return snap
}
