package session

import (
	"fmt"
	"math"
)

// LapSplit is the time of one credited lap.
type LapSplit struct {
	Lap   int
	Time  float64 // seconds spent on this lap
	Total float64 // seconds since the race started
}

// Result is the outcome of a finished race.
type Result struct {
	League  string
	Race    string
	Machine string
	Splits  []LapSplit
	Total   float64
}

// Best returns the fastest lap. ok is false when no lap was recorded.
func (r Result) Best() (best LapSplit, ok bool) {
	for i, s := range r.Splits {
		if i == 0 || s.Time < best.Time {
			best = s
		}
	}
	return best, len(r.Splits) > 0
}

// Clock splits seconds into the minutes, seconds and milliseconds shown on
// the timer. Minutes saturate at 99.
func Clock(t float64) (minutes, seconds, millis int) {
	if t <= 0 || math.IsNaN(t) {
		return 0, 0, 0
	}
	total := int64(t * 1000)
	minutes = int(total / 60000)
	if minutes > 99 {
		return 99, 59, 999
	}
	return minutes, int(total/1000) % 60, int(total % 1000)
}

// FormatClock renders seconds as MM:SS.mmm.
func FormatClock(t float64) string {
	m, s, ms := Clock(t)
	return fmt.Sprintf("%02d:%02d.%03d", m, s, ms)
}
