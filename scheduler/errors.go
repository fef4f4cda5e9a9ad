package scheduler

import "fmt"

// ClockDrift is raised when the scheduler detects now > window_end
// repeatedly, spec §7. The tick re-anchors start_time and keeps
// running; this is never fatal.
type ClockDrift struct {
	Now       float64
	WindowEnd float64
	Streak    int
}

func (e *ClockDrift) Error() string {
	return fmt.Sprintf("scheduler: clock drift detected (now=%.4f window_end=%.4f, %d consecutive ticks)",
		e.Now, e.WindowEnd, e.Streak)
}

// SinkError wraps a failure from Sink.OnEvent, spec §7: logged
// per-event, never stops the tick.
type SinkError struct {
	Deadline float64
	Err      error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("scheduler: sink rejected event at deadline %.4f: %v", e.Deadline, e.Err)
}

func (e *SinkError) Unwrap() error { return e.Err }

// FatalError wraps the one class of error spec §7 calls fatal:
// inability to obtain monotonic time. The scheduler stops and the
// sink is hushed.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string { return fmt.Sprintf("scheduler: fatal: %v", e.Err) }
func (e *FatalError) Unwrap() error { return e.Err }
