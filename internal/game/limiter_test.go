package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameLimiter(t *testing.T) {
	l := newFrameLimiter(10) // 100ms
	t0 := time.Unix(0, 0)

	assert.True(t, l.Allow(t0), "first call always runs")
	assert.False(t, l.Allow(t0.Add(50*time.Millisecond)))
	assert.True(t, l.Allow(t0.Add(100*time.Millisecond)))
	assert.False(t, l.Allow(t0.Add(150*time.Millisecond)), "measured from last allowed step")
	assert.True(t, l.Allow(t0.Add(200*time.Millisecond)))
}

func TestFrameLimiterJitter(t *testing.T) {
	l := newFrameLimiter(60)
	t0 := time.Unix(0, 0)

	assert.True(t, l.Allow(t0))
	assert.True(t, l.Allow(t0.Add(16500*time.Microsecond)), "jitter within interval/16 tolerated")
}

func TestFrameLimiterSlackScalesWithRate(t *testing.T) {
	l := newFrameLimiter(240) // ~4.17ms, early by at most ~0.26ms
	t0 := time.Unix(0, 0)

	assert.True(t, l.Allow(t0))
	assert.False(t, l.Allow(t0.Add(3500*time.Microsecond)))
	assert.True(t, l.Allow(t0.Add(3950*time.Microsecond)))
}

func TestFrameLimiterSetFPS(t *testing.T) {
	l := newFrameLimiter(60)
	l.SetFPS(0)
	assert.Equal(t, time.Second, l.interval, "non-positive falls back to 1 fps")

	l.SetFPS(20)
	assert.Equal(t, 50*time.Millisecond, l.interval)
}

func TestSmoothRate(t *testing.T) {
	assert.Equal(t, 50.0, smoothRate(0, 20*time.Millisecond), "first sample taken as is")
	assert.InDelta(t, 0.6*50+0.4*100, smoothRate(50, 10*time.Millisecond), 1e-9)
	assert.Equal(t, 42.0, smoothRate(42, 0))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00", formatDuration(0))
	assert.Equal(t, "01:05", formatDuration(65*time.Second))
	assert.Equal(t, "61:01", formatDuration(time.Hour+61*time.Second))
}

func TestOverlayText(t *testing.T) {
	s := overlayText(24, 60, 60, 59.6, 90*time.Second)
	assert.Contains(t, s, "points 24")
	assert.Contains(t, s, "edges 60")
	assert.Contains(t, s, "fps 60/60")
	assert.Contains(t, s, "up 01:30")
}
