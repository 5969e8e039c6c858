// FILE: logforge/src/internal/clock/clock_test.go
package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulated(t *testing.T) {
	start := time.Date(2023, 10, 27, 10, 0, 0, 0, time.UTC)

	t.Run("SleepAdvancesVirtualTime", func(t *testing.T) {
		clk := NewSimulated(start)

		before := time.Now()
		err := clk.Sleep(context.Background(), 5*time.Hour)
		elapsed := time.Since(before)

		require.NoError(t, err)
		assert.Equal(t, start.Add(5*time.Hour), clk.Now())
		assert.Less(t, elapsed, time.Second, "virtual sleep must not block")
	})

	t.Run("AdvanceMovesTime", func(t *testing.T) {
		clk := NewSimulated(start)
		clk.Advance(90 * time.Second)
		assert.Equal(t, start.Add(90*time.Second), clk.Now())
	})

	t.Run("SleepHonorsCancelledContext", func(t *testing.T) {
		clk := NewSimulated(start)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := clk.Sleep(ctx, time.Minute)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, start, clk.Now(), "cancelled sleep must not advance time")
	})
}

func TestSystem(t *testing.T) {
	t.Run("SleepWaitsRealTime", func(t *testing.T) {
		clk := NewSystem()

		before := time.Now()
		err := clk.Sleep(context.Background(), 20*time.Millisecond)
		elapsed := time.Since(before)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, elapsed, 20*time.Millisecond)
	})

	t.Run("SleepInterruptedByCancel", func(t *testing.T) {
		clk := NewSystem()
		ctx, cancel := context.WithCancel(context.Background())

		go func() {
			time.Sleep(10 * time.Millisecond)
			cancel()
		}()

		before := time.Now()
		err := clk.Sleep(ctx, 10*time.Second)
		elapsed := time.Since(before)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Less(t, elapsed, 5*time.Second)
	})
}
