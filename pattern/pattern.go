package pattern

// QueryFunc is the raw query function a Pattern wraps: spec §3's
// "query : (State) -> [Hap]". Implementations may return haps whose
// Part extends outside state.Span; Pattern.Query clips them and drops
// anything that ends up empty, so QueryFunc authors don't have to get
// boundary arithmetic exactly right.
type QueryFunc func(State) []Hap

// Pattern is a lazy, pure, referentially transparent time -> events
// function (spec §3 Pattern). Patterns are values: composing them
// never queries anything, and the same Pattern can be queried any
// number of times, from any spans, in any order, with identical
// results for identical inputs (modulo RNG, which is seeded
// deterministically — spec §4.3.7).
type Pattern struct {
	query QueryFunc
	// steps is the pattern's structural step count, consumed by
	// alignment-sensitive combinators (polymeter, step-aligned joins)
	// per spec §4.3.8. nil means "no opinion" (e.g. silence, signal).
	steps *Time
}

// New wraps a raw QueryFunc as a Pattern with no steps opinion.
func New(q QueryFunc) Pattern {
	return Pattern{query: q}
}

// NewWithSteps wraps a raw QueryFunc as a Pattern with an explicit
// steps value.
func NewWithSteps(q QueryFunc, steps Time) Pattern {
	return Pattern{query: q, steps: &steps}
}

// Steps returns the pattern's steps value and whether one is set.
func (p Pattern) Steps() (Time, bool) {
	if p.steps == nil {
		return Time{}, false
	}
	return *p.steps, true
}

// WithSteps returns a copy of p with an explicit steps value attached,
// without altering its query behavior.
func (p Pattern) WithSteps(steps Time) Pattern {
	out := p
	s := steps
	out.steps = &s
	return out
}

// Query runs the pattern's query function against state and enforces
// the universal invariants from spec §4.3.7 and §3: every returned
// Hap's Part is clipped to state.Span and dropped if that leaves it
// empty (unless the query span is itself an empty point span, in
// which case a Part equal to that point is kept — this is what lets
// `signal` be sampled at a single instant).
//
// A panic escaping the underlying QueryFunc (e.g. a division that
// slipped past checked arithmetic) is recovered here and converted to
// a QueryError on state.Diagnostics, then surfaced as an empty result
// for that subtree — per spec §4.3.9/§7, a failing combinator must
// never stop the rest of the query.
func (p Pattern) Query(state State) (haps []Hap) {
	defer func() {
		if r := recover(); r != nil {
			state.Diagnostics.record("Pattern.Query", panicError{r})
			haps = nil
		}
	}()

	if p.query == nil {
		return nil
	}
	raw := p.query(state)
	if raw == nil {
		return nil
	}

	out := make([]Hap, 0, len(raw))
	for _, h := range raw {
		clipped, ok := h.Clip(state.Span)
		if !ok {
			continue
		}
		out = append(out, clipped)
	}
	return out
}

type panicError struct{ v interface{} }

func (p panicError) Error() string {
	if err, ok := p.v.(error); ok {
		return err.Error()
	}
	return "panic during query"
}

// --- §4.3.1 Constructors ---

// Silence is the pattern that never produces any Haps.
var Silence = New(func(State) []Hap { return nil })

// Pure returns the pattern that, for every cycle intersected by the
// query, yields one Hap whose Whole is that full cycle and whose Part
// is the intersection with the query (spec §4.3.1 pure).
func Pure(v Value) Pattern {
	return NewWithSteps(func(state State) []Hap {
		var haps []Hap
		for _, span := range state.Span.SpanCycles() {
			cycle := span.Begin.Floor()
			whole := TimeSpan{Begin: cycle, End: cycle.MustAdd(One)}
			part, ok := whole.Intersect(span)
			if !ok {
				continue
			}
			haps = append(haps, NewHap(whole, part, v))
		}
		return haps
	}, One)
}

// Signal builds a continuous pattern from f: Time -> Value. Per spec
// §4.3.1, a continuous pattern has no Whole; for each query it is
// sampled once per cycle-aligned sub-span at that sub-span's
// midpoint, which is the fixed, deterministic sampling rule the spec
// requires.
func Signal(f func(Time) Value) Pattern {
	return New(func(state State) []Hap {
		var haps []Hap
		for _, span := range state.Span.SpanCycles() {
			v := f(span.Midpoint())
			haps = append(haps, NewContinuousHap(span, v))
		}
		return haps
	})
}

// FromListSeq is equivalent to Sequence(Pure(x) for x in xs), spec
// §4.3.1 from_list_seq.
func FromListSeq(xs []Value) Pattern {
	pats := make([]Pattern, len(xs))
	for i, x := range xs {
		pats[i] = Pure(x)
	}
	return Sequence(pats...)
}

// Fmap rewrites every Hap's Value with f, leaving timing untouched.
// Used by the notation lowering pass to turn a bare atom value into a
// control map (e.g. attaching a sample-index tail).
func Fmap(pat Pattern, f func(Value) Value) Pattern {
	out := New(func(state State) []Hap {
		haps := pat.Query(state)
		result := make([]Hap, len(haps))
		for i, h := range haps {
			result[i] = h.WithValue(f)
		}
		return result
	})
	if steps, ok := pat.Steps(); ok {
		out = out.WithSteps(steps)
	}
	return out
}
