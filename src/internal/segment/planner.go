// FILE: logforge/src/internal/segment/planner.go
package segment

import (
	"math/rand/v2"
	"time"

	"logforge/src/internal/rate"
)

// Kind identifies the generation regime of a segment.
type Kind int

const (
	Normal Kind = iota
	Peak
)

func (k Kind) String() string {
	if k == Peak {
		return "peak"
	}
	return "normal"
}

// Segment is one contiguous generation window under a single regime.
// PlannedDuration is a ceiling, not a promise: the early-exit check can
// end the segment sooner.
type Segment struct {
	Kind            Kind
	PlannedDuration time.Duration
	StartedAt       time.Time
}

// Planner alternates strictly between normal and peak segments and
// decides per-tick whether the active segment ends early. It has no
// terminal state; the engine stops it externally.
type Planner struct {
	normalDuration time.Duration
	peakDuration   time.Duration
	baseExitProb   float64

	rates *rate.State
	rng   *rand.Rand

	next Kind
}

// NewPlanner creates a planner whose first segment is normal.
func NewPlanner(normalDuration, peakDuration time.Duration, baseExitProb float64, rates *rate.State, rng *rand.Rand) *Planner {
	return &Planner{
		normalDuration: normalDuration,
		peakDuration:   peakDuration,
		baseExitProb:   baseExitProb,
		rates:          rates,
		rng:            rng,
		next:           Normal,
	}
}

// Next plans the upcoming segment. Rate drift is applied at this
// checkpoint, before normal segments only; the peak rate is fixed
// configuration and never drifts.
func (p *Planner) Next(now time.Time) Segment {
	seg := Segment{
		Kind:      p.next,
		StartedAt: now,
	}

	switch p.next {
	case Normal:
		seg.PlannedDuration = p.normalDuration
		p.rates.Drift(p.rng)
		p.next = Peak
	case Peak:
		seg.PlannedDuration = p.peakDuration
		p.next = Normal
	}

	return seg
}

// ExitProbability maps the elapsed fraction of a segment to the chance
// of ending it at this tick. The curve is base + (1-base)*frac^2:
// it starts at the configured base probability and rises monotonically
// to 1 at the planned end, so segments cluster near their planned
// length but rarely hit it exactly.
func (p *Planner) ExitProbability(elapsedFraction float64) float64 {
	if elapsedFraction < 0 {
		elapsedFraction = 0
	}
	if elapsedFraction > 1 {
		elapsedFraction = 1
	}
	return p.baseExitProb + (1-p.baseExitProb)*elapsedFraction*elapsedFraction
}

// ShouldExit draws the per-tick early-exit check for the active segment.
func (p *Planner) ShouldExit(seg Segment, now time.Time) bool {
	if seg.PlannedDuration <= 0 {
		return true
	}

	elapsed := now.Sub(seg.StartedAt)
	if elapsed >= seg.PlannedDuration {
		return true
	}

	frac := float64(elapsed) / float64(seg.PlannedDuration)
	return p.rng.Float64() < p.ExitProbability(frac)
}
