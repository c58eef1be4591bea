package domain

import (
	"fmt"
	"time"
)

// Solution is the reported result of one (puzzle, mode) job.
type Solution struct {
	Puzzle      string
	Mode        Mode
	Status      JobStatus
	Paths       int
	Err         error
	Elapsed     time.Duration
	Runs        int
	Fingerprint uint64
}

// Failed reports whether the job ended without a usable count.
func (s Solution) Failed() bool {
	return s.Status == JobStatusFailed || s.Status == JobStatusSkipped
}

// FormatElapsed renders a duration with a unit chosen so that three or four
// significant digits are shown: ns below 10µs, µs below 10ms, ms below 10s, else s.
func FormatElapsed(d time.Duration) string {
	ns := d.Nanoseconds()
	switch {
	case ns < 10_000:
		return fmt.Sprintf("%d ns", ns)
	case ns < 10_000_000:
		return fmt.Sprintf("%.1f µs", float64(ns)/1e3)
	case ns < 10_000_000_000:
		return fmt.Sprintf("%.1f ms", float64(ns)/1e6)
	default:
		return fmt.Sprintf("%.1f s", float64(ns)/1e9)
	}
}
