package pattern

// Hap ("happening") is a single occurrence produced by querying a
// Pattern: a value, the logical span it belongs to, and the part of
// that span the query actually asked for (spec §3 Hap).
type Hap struct {
	// Whole is the logical extent of the event. It is nil for
	// continuous signals, which have no discrete extent.
	Whole *TimeSpan
	// Part is the intersection of Whole with the queried span; it is
	// never empty and always a subset of the query span.
	Part TimeSpan
	// Value is the opaque payload.
	Value Value
	// Context carries provenance.
	Context Context
}

// NewHap constructs a Hap with a Whole.
func NewHap(whole TimeSpan, part TimeSpan, value Value) Hap {
	w := whole
	return Hap{Whole: &w, Part: part, Value: value}
}

// NewContinuousHap constructs a Hap with no Whole, as produced by
// signal.
func NewContinuousHap(part TimeSpan, value Value) Hap {
	return Hap{Whole: nil, Part: part, Value: value}
}

// HasWhole reports whether this Hap carries a logical extent.
func (h Hap) HasWhole() bool { return h.Whole != nil }

// WholeOrPart returns Whole if present, otherwise Part; this is the
// "effective logical span" used by applicative combinators per spec
// §4.2 wholes_or_parts.
func (h Hap) WholeOrPart() TimeSpan {
	if h.Whole != nil {
		return *h.Whole
	}
	return h.Part
}

// HasOnset reports whether Part.Begin equals Whole.Begin, i.e. this
// Hap is the start of its event rather than a fragment produced by a
// query that began mid-event. Onset-only haps are what the scheduler
// dispatches (spec §4.5.2 step 5 keys deadlines off Part.Begin, which
// is only meaningful at onset).
func (h Hap) HasOnset() bool {
	if h.Whole == nil {
		return false
	}
	return h.Whole.Begin.Equal(h.Part.Begin)
}

// WithSpan maps Part (and Whole, if present) through a monotonic time
// function, per spec §4.2 with_span.
func (h Hap) WithSpan(f func(TimeSpan) TimeSpan) Hap {
	out := h
	out.Part = f(h.Part)
	if h.Whole != nil {
		w := f(*h.Whole)
		out.Whole = &w
	}
	return out
}

// WithValue maps Value through f, per spec §4.2 with_value.
func (h Hap) WithValue(f func(Value) Value) Hap {
	out := h
	out.Value = f(h.Value)
	return out
}

// CombineContext merges h's Context with another's, per spec §4.2.
func (h Hap) CombineContext(o Hap) Hap {
	out := h
	out.Context = h.Context.Combine(o.Context)
	return out
}

// Clip intersects Part with span, returning the clipped Hap and
// whether the result is non-empty. Whole is left untouched: clipping
// only ever narrows what was actually queried, never the event's
// logical extent.
func (h Hap) Clip(span TimeSpan) (Hap, bool) {
	part, ok := h.Part.Intersect(span)
	if !ok || part.IsEmpty() && !span.IsEmpty() {
		return Hap{}, false
	}
	out := h
	out.Part = part
	return out, true
}

// SameOccurrence reports whether two Haps have identical (Whole, Part,
// Value) and may therefore be collapsed as duplicates (spec §3
// invariants).
func (h Hap) SameOccurrence(o Hap) bool {
	if h.HasWhole() != o.HasWhole() {
		return false
	}
	if h.HasWhole() && !(h.Whole.Begin.Equal(o.Whole.Begin) && h.Whole.End.Equal(o.Whole.End)) {
		return false
	}
	if !(h.Part.Begin.Equal(o.Part.Begin) && h.Part.End.Equal(o.Part.End)) {
		return false
	}
	return valuesEqual(h.Value, o.Value)
}

func valuesEqual(a, b Value) bool {
	if a.IsScalar() != b.IsScalar() {
		return false
	}
	if a.IsScalar() {
		return a.Scalar().Equal(b.Scalar())
	}
	am, bm := a.Controls(), b.Controls()
	if len(am) != len(bm) {
		return false
	}
	for k, v := range am {
		ov, ok := bm[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// DedupeHaps collapses duplicate occurrences, preserving first-seen
// order. Pattern.Query does not call it; query results are returned
// without deduplication.
func DedupeHaps(haps []Hap) []Hap {
	out := make([]Hap, 0, len(haps))
	for _, h := range haps {
		dup := false
		for _, seen := range out {
			if h.SameOccurrence(seen) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, h)
		}
	}
	return out
}
