package timer

import (
	"fmt"
	"math"
	"time"
)

// FormatDuration formats a duration as MM:SS or HH:MM:SS.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	totalSeconds := int(d.Seconds())
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// FormatRemaining renders the time left until deadline in tenths of a
// second, e.g. "1.4s". Past deadlines render as "0.0s".
func FormatRemaining(now, deadline time.Time) string {
	left := deadline.Sub(now)
	if left < 0 {
		left = 0
	}
	return fmt.Sprintf("%.1fs", left.Seconds())
}

// Seconds converts fractional seconds to a duration. Negative and NaN
// inputs yield zero; values beyond the Duration range saturate.
func Seconds(s float64) time.Duration {
	if s <= 0 || math.IsNaN(s) {
		return 0
	}
	ns := s * float64(time.Second)
	if ns >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(ns)
}
