package scheduler

import "github.com/wbrown/janus-pattern/pattern"

// Sink is the scheduler's only collaborator, spec §4.7/§6: the
// scheduler knows nothing about audio, MIDI, or OSC, only that events
// arrive with a deadline and that a hush can flush held state.
type Sink interface {
	// OnEvent dispatches one hap. deadline and cps are wall-clock
	// seconds and cycles-per-second at the moment of dispatch, so a
	// sink can compute absolute note-off times, OSC time tags, etc.
	// per spec §6.
	OnEvent(value pattern.Value, whole *pattern.TimeSpan, part pattern.TimeSpan, deadline float64, cps float64) error

	// OnHush flushes any held sink state: note-offs for MIDI, cancel-
	// all for audio, spec §4.5.3.
	OnHush()
}
