// FILE: logforge/src/internal/rate/band.go
package rate

import (
	"fmt"
	"math/rand/v2"
)

// Band bounds the instantaneous byte rate during normal segments.
// Invariant: 0 <= Min <= Max.
type Band struct {
	Min float64 // bytes/sec
	Max float64 // bytes/sec
}

// State tracks the drifting rate band and the current target rate within
// it. The band's upper bound wanders over the run so the generated load
// has no perfectly periodic signature. State is owned exclusively by the
// engine and is not safe for concurrent use.
type State struct {
	band    Band
	current float64

	driftProbability float64 // chance of a drift at each planning point
	driftMaxPct      float64 // bound on the relative change of band.Max
}

// NewState creates a rate state. The initial current rate is sampled
// uniformly from the band.
func NewState(band Band, driftProbability, driftMaxPct float64, rng *rand.Rand) (*State, error) {
	if band.Min < 0 || band.Max < band.Min {
		return nil, fmt.Errorf("invalid rate band: min=%f max=%f", band.Min, band.Max)
	}

	s := &State{
		band:             band,
		driftProbability: driftProbability,
		driftMaxPct:      driftMaxPct,
	}
	s.current = s.resample(rng)
	return s, nil
}

// Sample returns the current target rate in bytes/sec. The value only
// changes at drift checkpoints, never mid-segment.
func (s *State) Sample() float64 {
	return s.current
}

// Band returns the current band bounds.
func (s *State) Band() Band {
	return s.band
}

// Drift perturbs the band's upper bound with the configured probability.
// When triggered, Max moves by a uniform delta within ±driftMaxPct of its
// value, clamped to stay >= Min, and the current rate is re-sampled
// uniformly from the adjusted band. Returns true if a drift occurred.
func (s *State) Drift(rng *rand.Rand) bool {
	if rng.Float64() >= s.driftProbability {
		return false
	}

	delta := (rng.Float64()*2 - 1) * s.driftMaxPct
	s.band.Max *= 1 + delta
	if s.band.Max < s.band.Min {
		s.band.Max = s.band.Min
	}
	s.current = s.resample(rng)
	return true
}

func (s *State) resample(rng *rand.Rand) float64 {
	if s.band.Max == s.band.Min {
		return s.band.Min
	}
	return s.band.Min + rng.Float64()*(s.band.Max-s.band.Min)
}
