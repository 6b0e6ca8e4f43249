package entities

import "time"

const (
	// SLAWindow is the platform guarantee window after project creation.
	SLAWindow = 24 * time.Hour
	// SLAQuoteTarget is the minimum quote count promised within the window.
	SLAQuoteTarget = 2
)

type SLAStatus struct {
	Deadline    time.Time
	QuoteTarget int
	QuoteCount  int
	Met         bool
	Remaining   time.Duration
}

// EvaluateSLA is a pure function of the deadline, the current quote count,
// and the evaluation instant. Remaining clamps at zero once the deadline
// has passed.
func EvaluateSLA(deadline time.Time, quoteCount int, now time.Time) SLAStatus {
	remaining := deadline.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	return SLAStatus{
		Deadline:    deadline.UTC(),
		QuoteTarget: SLAQuoteTarget,
		QuoteCount:  quoteCount,
		Met:         quoteCount >= SLAQuoteTarget,
		Remaining:   remaining,
	}
}
