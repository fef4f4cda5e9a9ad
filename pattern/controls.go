package pattern

import (
	"sort"
	"strings"
	"sync"
)

// Control is an interned control-map key ("s", "n", "note", "gain",
// "pan", "speed", "cutoff", ...). Interning means key comparisons in
// the merge hot path are pointer/int compares rather than string
// compares, mirroring how the teacher interns Keyword and Identity
// (datalog/intern.go) so high-frequency equality checks never
// re-walk a string.
type Control struct {
	name string
}

func (c Control) String() string { return c.name }

// controlIntern caches the mapping from control-name strings to their
// canonical Control value. Backed by sync.Map for lock-free reads,
// exactly as KeywordIntern is.
type controlIntern struct {
	cache sync.Map // map[string]Control
}

var globalControlIntern = &controlIntern{}

// wellKnownControls seeds the intern table so the control set named
// in spec §3 is always available without a first-use allocation; the
// set stays open (InternControl accepts any name) per spec's
// "control set is open" rule.
var wellKnownControls = []string{
	"s", "n", "note", "gain", "pan", "speed", "cutoff", "resonance",
	"delay", "delaytime", "delayfeedback", "room", "begin", "end",
	"cut", "orbit", "midichan", "shape", "vowel", "accelerate", "legato",
}

func init() {
	for _, name := range wellKnownControls {
		globalControlIntern.cache.Store(name, Control{name: name})
	}
}

// InternControl returns the canonical Control for name, creating and
// caching it on first use.
func InternControl(name string) Control {
	if v, ok := globalControlIntern.cache.Load(name); ok {
		return v.(Control)
	}
	c := Control{name: name}
	actual, _ := globalControlIntern.cache.LoadOrStore(name, c)
	return actual.(Control)
}

// ControlMap is a mapping from interned control names to Scalars; the
// "Map" alternative of the Value sum type (spec §3).
type ControlMap map[Control]Scalar

// Set returns a new ControlMap with key bound to val, leaving the
// receiver untouched (ControlMaps are treated as immutable once built
// into a Value, matching Relations being immutable in the teacher).
func (m ControlMap) Set(key string, val Scalar) ControlMap {
	out := make(ControlMap, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out[InternControl(key)] = val
	return out
}

// Get looks up a control by name.
func (m ControlMap) Get(key string) (Scalar, bool) {
	v, ok := m[InternControl(key)]
	return v, ok
}

// Merge key-wise unions two control maps. On key collision, bias
// decides the winner; BiasUnion panics-free reports the right-hand
// value but records no error (callers that need strict disjointness
// should check key sets themselves before calling Merge with
// BiasUnion - the engine itself never needs to reject a program here,
// only the combinator-level query errors in §4.3.9 ever do).
func (m ControlMap) Merge(o ControlMap, bias MergeBias) ControlMap {
	out := make(ControlMap, len(m)+len(o))
	for k, v := range m {
		out[k] = v
	}
	switch bias {
	case BiasLeft:
		for k, v := range o {
			if _, exists := out[k]; !exists {
				out[k] = v
			}
		}
	default: // BiasRight, BiasUnion
		for k, v := range o {
			out[k] = v
		}
	}
	return out
}

func (m ControlMap) String() string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k.name)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + m[InternControl(k)].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
