// FILE: logforge/src/internal/rate/bucket_test.go
package rate

import (
	"testing"
	"time"

	"logforge/src/internal/clock"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucket(t *testing.T) {
	start := time.Date(2023, 10, 27, 10, 0, 0, 0, time.UTC)

	t.Run("StartsFull", func(t *testing.T) {
		clk := clock.NewSimulated(start)
		tb := NewTokenBucket(10, 10, clk)
		assert.Equal(t, 10.0, tb.Tokens())
	})

	t.Run("ConsumesUntilEmpty", func(t *testing.T) {
		clk := clock.NewSimulated(start)
		tb := NewTokenBucket(10, 10, clk)

		for i := 0; i < 10; i++ {
			assert.True(t, tb.Allow(), "token %d should be available", i)
		}
		assert.False(t, tb.Allow())
	})

	t.Run("RefillsWithVirtualTime", func(t *testing.T) {
		clk := clock.NewSimulated(start)
		tb := NewTokenBucket(10, 10, clk)

		assert.True(t, tb.AllowN(10))
		assert.False(t, tb.Allow())

		clk.Advance(500 * time.Millisecond)
		assert.True(t, tb.AllowN(5))
		assert.False(t, tb.Allow())
	})

	t.Run("CapsAtCapacity", func(t *testing.T) {
		clk := clock.NewSimulated(start)
		tb := NewTokenBucket(10, 10, clk)

		clk.Advance(time.Hour)
		assert.Equal(t, 10.0, tb.Tokens())
	})
}
