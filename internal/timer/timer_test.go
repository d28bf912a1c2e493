package timer

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Clock Tests
// =============================================================================

func TestFakeSleepAdvances(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := NewFake(start)

	require.NoError(t, f.Sleep(context.Background(), 100*time.Millisecond))
	require.NoError(t, f.Sleep(context.Background(), 2*time.Second))

	assert.Equal(t, start.Add(2100*time.Millisecond), f.Now())
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 2 * time.Second}, f.Sleeps())
	assert.Equal(t, 2100*time.Millisecond, f.Elapsed())
}

func TestFakeOnSleepSeesOldTime(t *testing.T) {
	start := time.Unix(0, 0)
	f := NewFake(start)

	var seen time.Time
	f.OnSleep = func(time.Duration) { seen = f.Now() }
	require.NoError(t, f.Sleep(context.Background(), time.Second))

	assert.Equal(t, start, seen)
	assert.Equal(t, start.Add(time.Second), f.Now())
}

func TestFakeSleepCancelled(t *testing.T) {
	f := NewFake(time.Unix(0, 0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.Sleep(ctx, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.Sleeps())
}

func TestFakeAdvance(t *testing.T) {
	f := NewFake(time.Unix(0, 0))
	f.Advance(time.Minute)
	assert.Equal(t, time.Unix(60, 0), f.Now())
	assert.Empty(t, f.Sleeps())
}

func TestRealSleep(t *testing.T) {
	var c Real

	start := time.Now()
	require.NoError(t, c.Sleep(context.Background(), 5*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)

	require.NoError(t, c.Sleep(context.Background(), 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, c.Sleep(ctx, time.Hour), context.Canceled)
}

// =============================================================================
// Format Tests
// =============================================================================

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		expected string
	}{
		{0, "00:00"},
		{30 * time.Second, "00:30"},
		{1*time.Minute + 30*time.Second, "01:30"},
		{59*time.Minute + 59*time.Second, "59:59"},
		{1 * time.Hour, "01:00:00"},
		{2*time.Hour + 15*time.Minute + 30*time.Second, "02:15:30"},
		{-5 * time.Second, "00:00"}, // Negative treated as 0
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.duration))
		})
	}
}

func TestFormatRemaining(t *testing.T) {
	now := time.Unix(100, 0)
	assert.Equal(t, "1.5s", FormatRemaining(now, now.Add(1500*time.Millisecond)))
	assert.Equal(t, "0.0s", FormatRemaining(now, now.Add(-time.Second)))
}

func TestSeconds(t *testing.T) {
	assert.Equal(t, 2*time.Second, Seconds(2))
	assert.Equal(t, 500*time.Millisecond, Seconds(0.5))
	assert.Equal(t, time.Duration(0), Seconds(-1))
	assert.Equal(t, time.Duration(0), Seconds(math.NaN()))
}

func TestSecondsSaturates(t *testing.T) {
	assert.Equal(t, time.Duration(math.MaxInt64), Seconds(math.Inf(1)))
	assert.Equal(t, time.Duration(math.MaxInt64), Seconds(1e12))
	assert.Positive(t, Seconds(9e9))
}
