package game

import (
	"fmt"
	"time"
)

// smoothingFactor weights the previous measured rate against the newest sample.
const smoothingFactor = 0.6

// smoothRate folds the interval since the last step into a running fps estimate.
func smoothRate(prev float64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return prev
	}
	sample := float64(time.Second) / float64(elapsed)
	if prev == 0 {
		return sample
	}
	return smoothingFactor*prev + (1-smoothingFactor)*sample
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func overlayText(points, edges int, target, measured float64, uptime time.Duration) string {
	return fmt.Sprintf("points %d  edges %d  fps %.0f/%.0f  up %s\nC: color  B: background  O: overlay  Esc/Q: quit",
		points, edges, measured, target, formatDuration(uptime))
}
