package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/wbrown/janus-pattern/pattern"
)

// LatePolicy decides what happens to a hap whose deadline has already
// passed by the time a tick would dispatch it, spec §4.5.2 step 5.
type LatePolicy int

const (
	// DropLate discards the event and logs a warning. The default,
	// per spec §4.5.2.
	DropLate LatePolicy = iota
	// DispatchImmediately sends the event to the sink right away,
	// treating "now" as its effective deadline.
	DispatchImmediately
)

// DispatchRecord is one (whole, part, value, deadline) tuple handed to
// a sink, spec §8's "no duplication across a full run" property.
// EventLog implementations persist these for replay/audit.
type DispatchRecord struct {
	Whole    *pattern.TimeSpan
	Part     pattern.TimeSpan
	Value    pattern.Value
	Deadline float64
}

// EventLog receives a DispatchRecord for every event the scheduler
// actually sends to the sink, in dispatch order.
type EventLog interface {
	Append(DispatchRecord) error
}

// Options configures a Scheduler, spec §4.5.2/§7.
type Options struct {
	// Interval is the wall-clock tick period in seconds. Default 0.05.
	Interval float64
	// Lookahead is how far past "now" each tick queries, in seconds.
	// Default 0.1. Must be >= 2*Interval (spec §4.5.2 invariant).
	Lookahead float64
	// LatePolicy governs haps whose deadline has already passed.
	LatePolicy LatePolicy
	// DropThreshold is how far past "now" a deadline may lag before
	// being unconditionally dropped regardless of LatePolicy, spec §8
	// "deadline respect".
	DropThreshold float64
	// EventLog, if set, records every dispatched event.
	EventLog EventLog
	// Diagnostics, if set, receives tick-end, drop, sink-error and
	// clock-drift events.
	Diagnostics DiagnosticsSink
}

// DiagnosticsSink receives scheduler lifecycle notifications; kept as
// a narrow interface here so package scheduler has no import-time
// dependency on package diagnostics.
type DiagnosticsSink interface {
	Notify(name string, fields map[string]interface{})
}

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = 0.05
	}
	if o.Lookahead <= 0 {
		o.Lookahead = 0.1
	}
	if o.DropThreshold <= 0 {
		o.DropThreshold = 1.0
	}
	return o
}

// Scheduler implements the lookahead scheduler of spec §4.5: a single
// writer thread (the tick goroutine) owns cps/start_time/start_beat/
// phase; every external call goes through commandQueue instead of
// mutating shared state directly, per spec §5's single-writer,
// multi-reader model.
type Scheduler struct {
	opts   Options
	clock  Clock
	sink   Sink
	cmds   *commandQueue
	stopCh chan struct{}
	doneCh chan struct{}
	running int32

	// fields below are owned exclusively by the tick goroutine once
	// running; Start initializes them before the goroutine launches.
	currentPattern pattern.Pattern
	cps            float64
	startTime      float64
	startBeat      pattern.Time
	phase          pattern.Time

	driftStreak int
}

// New constructs a Scheduler over clock and sink with the given
// pattern as its initial current_pattern and cps as its initial rate.
func New(clock Clock, sink Sink, initial pattern.Pattern, cps float64, opts Options) *Scheduler {
	return &Scheduler{
		opts:           opts.withDefaults(),
		clock:          clock,
		sink:           sink,
		cmds:           newCommandQueue(),
		currentPattern: initial,
		cps:            cps,
	}
}

// Start runs the first tick at the start time itself, then launches
// the tick goroutine and returns; the scheduler runs until ctx is
// cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		return fmt.Errorf("scheduler: already running")
	}
	now := s.clock.Now()
	s.startTime = now
	s.startBeat = pattern.Zero
	s.phase = pattern.Zero
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})

	s.tick()
	go s.run(ctx)
	return nil
}

// Stop signals the tick loop to exit after its current tick and
// blocks until it has.
func (s *Scheduler) Stop() {
	if !atomic.CompareAndSwapInt32(&s.running, 1, 0) {
		return
	}
	close(s.stopCh)
	<-s.doneCh
}

// Hush enqueues a hush command: the tick flushes held sink state at
// the top of its next iteration, spec §4.5.3.
func (s *Scheduler) Hush() {
	s.cmds.push(command{kind: cmdHush})
}

// SetPattern atomically swaps current_pattern, spec §4.5.3.
func (s *Scheduler) SetPattern(p pattern.Pattern) {
	s.cmds.push(command{kind: cmdSetPattern, pattern: p})
}

// SetCPS re-anchors start_time/start_beat to now and updates cps,
// preserving beat/time continuity, spec §4.5.3.
func (s *Scheduler) SetCPS(cps float64) {
	s.cmds.push(command{kind: cmdSetCPS, cps: cps})
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.doneCh)
	ticker := time.NewTicker(time.Duration(s.opts.Interval * float64(time.Second)))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.sink.OnHush()
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

// tick runs exactly the seven steps of spec §4.5.2.
func (s *Scheduler) tick() {
	s.drainCommands()

	now := s.clock.Now()
	windowEnd := now + s.opts.Lookahead
	s.checkDrift(now, windowEnd)

	b0 := s.phase
	b1f := timeToBeats(windowEnd, s.startTime, s.cps, floatBeat(s.startBeat))
	b1 := rationalizeBeat(b1f)
	if !b1.Greater(b0) {
		b1 = b0.MustAdd(pattern.MustTime(1, microbeat))
	}

	span := pattern.NewSpan(b0, b1)
	state := pattern.NewState(span)
	haps := s.currentPattern.Query(state)

	type dispatchable struct {
		hap      pattern.Hap
		deadline float64
	}
	var ready []dispatchable
	for _, h := range haps {
		if !h.HasOnset() {
			continue
		}
		deadline := beatsToTime(floatBeat(h.Part.Begin), floatBeat(s.startBeat), s.cps, s.startTime)
		ready = append(ready, dispatchable{h, deadline})
	}
	sort.Slice(ready, func(i, j int) bool { return ready[i].deadline < ready[j].deadline })

	for _, d := range ready {
		effective := d.deadline
		if d.deadline < now {
			late := now - d.deadline
			if late > s.opts.DropThreshold {
				s.notify("scheduler/tick.drop", map[string]interface{}{"deadline": d.deadline, "now": now})
				continue
			}
			if s.opts.LatePolicy == DropLate {
				s.notify("scheduler/tick.drop", map[string]interface{}{"deadline": d.deadline, "now": now})
				continue
			}
			effective = now
		}
		if err := s.sink.OnEvent(d.hap.Value, d.hap.Whole, d.hap.Part, effective, s.cps); err != nil {
			s.notify("scheduler/tick.sinkerror", map[string]interface{}{"error": err.Error()})
		}
		if s.opts.EventLog != nil {
			_ = s.opts.EventLog.Append(DispatchRecord{Whole: d.hap.Whole, Part: d.hap.Part, Value: d.hap.Value, Deadline: effective})
		}
	}

	s.phase = b1
	s.notify("scheduler/tick.end", map[string]interface{}{"phase": floatBeat(s.phase)})
}

func (s *Scheduler) checkDrift(now, windowEnd float64) {
	if now > windowEnd {
		s.driftStreak++
		if s.driftStreak >= 3 {
			s.startTime = now
			s.notify("scheduler/clock.drift", map[string]interface{}{"now": now, "window_end": windowEnd, "streak": s.driftStreak})
			s.driftStreak = 0
		}
	} else {
		s.driftStreak = 0
	}
}

func (s *Scheduler) drainCommands() {
	for _, c := range s.cmds.drain() {
		switch c.kind {
		case cmdSetPattern:
			s.currentPattern = c.pattern
		case cmdSetCPS:
			now := s.clock.Now()
			s.startTime = now
			s.startBeat = s.phase
			s.cps = c.cps
		case cmdHush:
			s.sink.OnHush()
		}
	}
}

func (s *Scheduler) notify(name string, fields map[string]interface{}) {
	if s.opts.Diagnostics != nil {
		s.opts.Diagnostics.Notify(name, fields)
	}
}
