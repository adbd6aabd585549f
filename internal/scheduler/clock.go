package scheduler

import "time"

// Clock abstracts time so tests can drive the cadence deterministically
// instead of waiting on real intervals.
type Clock interface {
	Now() time.Time
	// Ticker returns a channel that delivers on every cadence interval and
	// a stop function releasing its resources.
	Ticker(d time.Duration) (<-chan time.Time, func())
}

type realClock struct{}

// NewClock returns a Clock backed by the wall clock.
func NewClock() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now().UTC() }

func (realClock) Ticker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}
