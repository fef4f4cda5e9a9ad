// Package sink provides reference Sink implementations (spec §4.7):
// a debug table-printing sink for interactive use, and an in-memory
// sink for tests. Audio/MIDI/OSC sinks stay descriptive per spec §6's
// Non-goals and are not implemented here.
package sink

import (
	"fmt"
	"strings"
	"sync"

	"github.com/wbrown/janus-pattern/pattern"
)

// Event is the value a MemorySink captures per dispatch.
type Event struct {
	Value    pattern.Value
	Whole    *pattern.TimeSpan
	Part     pattern.TimeSpan
	Deadline float64
	CPS      float64
}

func (e Event) valueString() string {
	return e.Value.String()
}

func (e Event) wholeString() string {
	if e.Whole == nil {
		return "-"
	}
	return fmt.Sprintf("%s..%s", e.Whole.Begin.String(), e.Whole.End.String())
}

// MemorySink accumulates every dispatched event and hush call; a test
// double and an embeddable no-op backend.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
	hushes int
}

func NewMemorySink() *MemorySink { return &MemorySink{} }

func (m *MemorySink) OnEvent(v pattern.Value, whole *pattern.TimeSpan, part pattern.TimeSpan, deadline, cps float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, Event{Value: v, Whole: whole, Part: part, Deadline: deadline, CPS: cps})
	return nil
}

func (m *MemorySink) OnHush() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hushes++
}

func (m *MemorySink) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

func (m *MemorySink) Hushes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hushes
}

func (m *MemorySink) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var b strings.Builder
	for _, e := range m.events {
		fmt.Fprintf(&b, "%s @ %.4f: %s\n", e.wholeString(), e.Deadline, e.valueString())
	}
	return b.String()
}
