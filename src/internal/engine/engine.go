// FILE: logforge/src/internal/engine/engine.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"logforge/src/internal/clock"
	"logforge/src/internal/config"
	"logforge/src/internal/core"
	"logforge/src/internal/format"
	"logforge/src/internal/metrics"
	"logforge/src/internal/rate"
	"logforge/src/internal/segment"
	"logforge/src/internal/sink"
	"logforge/src/internal/source"

	"github.com/lixenwraith/log"
)

// Engine runs the segmented generation loop: it plans segments back to
// back, paces line emission inside each segment to approximate the
// target byte rate, and feeds rendered lines to the sink. The engine
// exclusively owns the rate state, the active segment and the metrics
// collector; everything else is an injected collaborator.
type Engine struct {
	cfg *config.GeneratorConfig

	rates   *rate.State
	planner *segment.Planner

	synth     *source.Synthesizer
	formatter format.Formatter
	out       sink.Sink
	collector *metrics.Collector

	clk    clock.Clock
	rng    *rand.Rand
	logger *log.Logger

	peakRate float64 // bytes/sec, fixed, never drifts
	lineSize float64 // bytes
}

// New builds an engine from validated configuration and its
// collaborators. The random source must be dedicated to this engine;
// it is not used concurrently.
func New(cfg *config.GeneratorConfig, synth *source.Synthesizer, formatter format.Formatter,
	out sink.Sink, clk clock.Clock, rng *rand.Rand, logger *log.Logger) (*Engine, error) {

	band := rate.Band{
		Min: cfg.RateNormalMin * core.BytesPerMB,
		Max: cfg.RateNormalMax * core.BytesPerMB,
	}
	rates, err := rate.NewState(band, cfg.RateChangeProbability, cfg.RateChangeMaxPercentage, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate state: %w", err)
	}

	planner := segment.NewPlanner(
		secondsToDuration(cfg.DurationNormal),
		secondsToDuration(cfg.DurationPeak),
		cfg.BaseExitProbability,
		rates,
		rng,
	)

	return &Engine{
		cfg:       cfg,
		rates:     rates,
		planner:   planner,
		synth:     synth,
		formatter: formatter,
		out:       out,
		collector: metrics.NewCollector(clk.Now),
		clk:       clk,
		rng:       rng,
		logger:    logger,
		peakRate:  cfg.RatePeak * core.BytesPerMB,
		lineSize:  float64(cfg.LogLineSize),
	}, nil
}

// Snapshot returns the current metrics without blocking the loop.
func (e *Engine) Snapshot() metrics.Snapshot {
	return e.collector.Snapshot()
}

// Run drives segments until the configured run time elapses or ctx is
// cancelled. Cancellation is a graceful stop; a sink write failure
// aborts the run and is returned alongside the final snapshot.
func (e *Engine) Run(ctx context.Context) (metrics.Snapshot, error) {
	start := e.clk.Now()

	for {
		if ctx.Err() != nil || e.expired(start) {
			break
		}

		seg := e.planner.Next(e.clk.Now())
		e.logger.Debug("msg", "Starting segment",
			"component", "engine",
			"kind", seg.Kind.String(),
			"planned_duration", seg.PlannedDuration.String(),
			"target_rate", e.targetRate(seg))

		if err := e.runSegment(ctx, seg, start); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				break
			}
			e.logger.Error("msg", "Generation aborted",
				"component", "engine",
				"error", err)
			return e.collector.Snapshot(), err
		}
	}

	return e.collector.Snapshot(), nil
}

// runSegment paces line emission for one segment. Cancellation and the
// global stop bound are polled every tick, so shutdown latency is at
// most one tick.
func (e *Engine) runSegment(ctx context.Context, seg segment.Segment, runStart time.Time) error {
	linesPerSec := e.targetRate(seg) / e.lineSize
	bucket := rate.NewTokenBucket(max(linesPerSec, 1), max(linesPerSec, 0), e.clk)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		now := e.clk.Now()
		if e.expired(runStart) || e.planner.ShouldExit(seg, now) {
			return nil
		}

		targetRate := e.targetRate(seg)
		if targetRate <= 0 {
			// Emit nothing, re-check after the minimum poll interval.
			if err := e.clk.Sleep(ctx, core.ZeroRatePollInterval); err != nil {
				return err
			}
			continue
		}

		if !bucket.Allow() {
			if err := e.clk.Sleep(ctx, core.RetryDelay); err != nil {
				return err
			}
			continue
		}

		rec := e.synth.Next(now)
		line, err := e.formatter.Format(rec)
		if err != nil {
			// Formatting degrades, it never aborts the run.
			e.logger.Error("msg", "Failed to format record",
				"component", "engine",
				"error", err)
			continue
		}

		if err := e.out.Write(line); err != nil {
			return fmt.Errorf("sink write failed: %w", err)
		}
		e.collector.Record(1, uint64(len(line)))

		delay := time.Duration(e.lineSize / targetRate * float64(time.Second))
		if delay < core.MinEmitDelay {
			delay = core.MinEmitDelay
		}
		if err := e.clk.Sleep(ctx, delay); err != nil {
			return err
		}
	}
}

// targetRate resolves the byte rate for the segment's regime: the
// drifting band sample for normal, the fixed peak rate for peak.
func (e *Engine) targetRate(seg segment.Segment) float64 {
	if seg.Kind == segment.Peak {
		return e.peakRate
	}
	return e.rates.Sample()
}

// expired reports whether the global stop bound has been reached.
// StopAfterSeconds == -1 means the run is unbounded.
func (e *Engine) expired(runStart time.Time) bool {
	if e.cfg.StopAfterSeconds < 0 {
		return false
	}
	return e.clk.Now().Sub(runStart) >= secondsToDuration(e.cfg.StopAfterSeconds)
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
