package scheduler

import "time"

// Clock is the scheduler's monotonic time authority, spec §4.5.1. A
// host embeds a real wall clock in production and a fake one in tests
// to drive the tick loop deterministically (scenario 6 of spec §8).
type Clock interface {
	// Now returns seconds on a monotonic timeline; only differences
	// between two calls are meaningful; the origin is arbitrary.
	Now() float64
}

// RealClock wraps time.Now(), anchored to its own construction time so
// Now() returns small, readable second offsets instead of huge epoch
// values.
type RealClock struct {
	origin time.Time
}

func NewRealClock() *RealClock {
	return &RealClock{origin: time.Now()}
}

func (c *RealClock) Now() float64 {
	return time.Since(c.origin).Seconds()
}

// beatsToTime converts a cycle position to wall-clock seconds, spec
// §4.5.1: beats_to_time(b) = (b - start_beat) / cps + start_time.
func beatsToTime(b, startBeat, cps, startTime float64) float64 {
	return (b-startBeat)/cps + startTime
}

// timeToBeats converts wall-clock seconds to a cycle position, spec
// §4.5.1: time_to_beats(t) = (t - start_time) * cps + start_beat.
func timeToBeats(t, startTime, cps, startBeat float64) float64 {
	return (t-startTime)*cps + startBeat
}
