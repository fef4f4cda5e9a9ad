package scheduler

import "github.com/wbrown/janus-pattern/pattern"

type commandKind int

const (
	cmdSetPattern commandKind = iota
	cmdSetCPS
	cmdHush
	cmdStart
	cmdStop
)

type command struct {
	kind    commandKind
	pattern pattern.Pattern
	cps     float64
}

// commandQueue is the external-call side of spec §5's "external set_*
// calls enqueue a command that the tick drains at the top of each
// iteration": a buffered channel gives lock-free, goroutine-safe
// enqueue from any caller while the tick remains the sole reader and
// sole mutator of scheduler state.
type commandQueue struct {
	ch chan command
}

func newCommandQueue() *commandQueue {
	return &commandQueue{ch: make(chan command, 256)}
}

func (q *commandQueue) push(c command) {
	q.ch <- c
}

// drain reads every command currently queued without blocking, so a
// tick never waits on a command producer.
func (q *commandQueue) drain() []command {
	var out []command
	for {
		select {
		case c := <-q.ch:
			out = append(out, c)
		default:
			return out
		}
	}
}
