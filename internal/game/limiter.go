package game

import "time"

// slackDivisor sets how much vsync jitter is absorbed: a step may run
// interval/slackDivisor early, so a 60 fps target on a 60 Hz display does
// not drop every other frame.
const slackDivisor = 16

// frameLimiter skips steps that arrive sooner than 1/fps after the last one it allowed.
type frameLimiter struct {
	interval time.Duration
	last     time.Time
	started  bool
}

func newFrameLimiter(fps float64) *frameLimiter {
	l := &frameLimiter{}
	l.SetFPS(fps)
	return l
}

func (l *frameLimiter) SetFPS(fps float64) {
	if fps <= 0 {
		fps = 1
	}
	l.interval = time.Duration(float64(time.Second) / fps)
}

// Allow reports whether a step may run at now, and if so records it.
func (l *frameLimiter) Allow(now time.Time) bool {
	if l.started && now.Sub(l.last) < l.interval-l.interval/slackDivisor {
		return false
	}
	l.last = now
	l.started = true
	return true
}
