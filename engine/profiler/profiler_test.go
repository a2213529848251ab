package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickLogsOncePerInterval(t *testing.T) {
	now := time.Unix(0, 0)
	p := NewProfiler(WithInterval(2*time.Second), WithClock(func() time.Time { return now }))

	for range 9 {
		now = now.Add(100 * time.Millisecond)
		p.Suppress()
		assert.False(t, p.Tick())
	}
	assert.Zero(t, p.Last())

	now = now.Add(1100 * time.Millisecond)
	for range 4 {
		p.Redraw()
	}
	require.True(t, p.Tick())

	s := p.Last()
	assert.Equal(t, 4, s.Redraws)
	assert.Equal(t, 9, s.Suppressed)
	assert.InDelta(t, 2.0, s.FPS, 1e-9)
	assert.InDelta(t, 5.0, s.LoopRate, 1e-9)
	assert.Positive(t, s.SysMB)
}

func TestCountersResetAfterInterval(t *testing.T) {
	now := time.Unix(0, 0)
	p := NewProfiler(WithClock(func() time.Time { return now }))

	p.Redraw()
	now = now.Add(time.Second)
	require.True(t, p.Tick())

	now = now.Add(time.Second)
	require.True(t, p.Tick())
	assert.Zero(t, p.Last().Redraws)
	assert.InDelta(t, 1.0, p.Last().LoopRate, 1e-9)
}

func TestWithIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler(WithInterval(0))
	assert.Equal(t, time.Second, p.updateInterval)
}
