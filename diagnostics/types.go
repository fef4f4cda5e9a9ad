// Package diagnostics is a low-overhead event/annotation system for
// the pattern engine, mini-notation parser, and scheduler: ported from
// the teacher's annotations package, adapted from query-execution
// events to pattern-engine/scheduler events.
package diagnostics

import (
	"sync"
	"time"
)

// Event name constants, hierarchical like the teacher's (spec §2
// ambient-stack supplement): "component/action[.phase]".
const (
	QueryInvoked = "query/invoked"
	QueryError   = "query/error"

	ParserError = "parser/error"

	SchedulerTickBegin    = "scheduler/tick.begin"
	SchedulerTickDispatch = "scheduler/tick.dispatch"
	SchedulerTickDrop     = "scheduler/tick.drop"
	SchedulerTickEnd      = "scheduler/tick.end"
	SchedulerClockDrift   = "scheduler/clock.drift"
	SchedulerSinkError    = "scheduler/tick.sinkerror"
	SchedulerHush         = "scheduler/hush"
)

// Event is a single diagnostic occurrence.
type Event struct {
	Name    string
	At      time.Time
	Latency time.Duration
	Data    map[string]interface{}
}

// Handler processes events as they occur.
type Handler func(Event)

// Collector accumulates events and fans them out to a handler,
// mirroring the teacher's annotations.Collector.
type Collector struct {
	mu      sync.Mutex
	enabled bool
	handler Handler
	events  []Event
}

func NewCollector(handler Handler) *Collector {
	return &Collector{enabled: handler != nil, handler: handler}
}

// Notify records one event, satisfying scheduler.DiagnosticsSink.
func (c *Collector) Notify(name string, fields map[string]interface{}) {
	c.Record(Event{Name: name, At: time.Now(), Data: fields})
}

// Record appends ev to the collector's history and invokes the
// handler, if any, synchronously.
func (c *Collector) Record(ev Event) {
	c.mu.Lock()
	c.events = append(c.events, ev)
	handler := c.handler
	c.mu.Unlock()
	if handler != nil {
		handler(ev)
	}
}

// Events returns every event recorded so far.
func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}
