package pattern

// TimeSpan is an ordered pair (Begin, End) of rational times with
// Begin <= End. It represents either the logical extent of a Hap
// (its Whole) or the portion of a query that was actually asked for
// (its Part).
type TimeSpan struct {
	Begin Time
	End   Time
}

// NewSpan constructs a TimeSpan. It does not validate Begin <= End;
// callers that build spans from untrusted arithmetic should check
// with IsValid.
func NewSpan(begin, end Time) TimeSpan {
	return TimeSpan{Begin: begin, End: end}
}

// IsValid reports whether Begin <= End.
func (s TimeSpan) IsValid() bool { return !s.Begin.Greater(s.End) }

// IsEmpty reports whether the span has zero width.
func (s TimeSpan) IsEmpty() bool { return s.Begin.Equal(s.End) }

// Width returns End - Begin.
func (s TimeSpan) Width() Time { return s.End.MustSub(s.Begin) }

// Midpoint returns (Begin+End)/2, used by signal's sampling rule.
func (s TimeSpan) Midpoint() Time {
	sum := s.Begin.MustAdd(s.End)
	return sum.MustDiv(Time{2, 1})
}

// Intersect returns the overlap of two spans and whether they meet at
// all. ok is false only when one span ends before the other begins;
// spans that merely touch (a point at an edge, or two adjacent spans
// such as [0,1) and [1,2)) yield an empty span with ok=true, so callers
// that need a non-empty overlap also check IsEmpty.
func (s TimeSpan) Intersect(o TimeSpan) (TimeSpan, bool) {
	begin := s.Begin
	if o.Begin.Greater(begin) {
		begin = o.Begin
	}
	end := s.End
	if o.End.Less(end) {
		end = o.End
	}
	if begin.Greater(end) {
		return TimeSpan{}, false
	}
	return TimeSpan{Begin: begin, End: end}, true
}

// WithTime maps both endpoints through f, e.g. for fast/slow/early/
// late time transforms. f must be monotonic non-decreasing so the
// resulting span stays valid.
func (s TimeSpan) WithTime(f func(Time) Time) TimeSpan {
	return TimeSpan{Begin: f(s.Begin), End: f(s.End)}
}

// CycleAligned reports whether Begin sits exactly on an integer cycle
// boundary.
func (s TimeSpan) CycleAligned() bool { return s.Begin.IsInt() }

// SpanCycles splits a span at every integer cycle boundary it
// crosses, returning the ordered list of sub-spans each fully
// contained within one cycle. A span with zero width that sits on an
// integer boundary still yields itself as a single (empty) sub-span,
// matching the "query span but it's a point" case used by signal.
func (s TimeSpan) SpanCycles() []TimeSpan {
	if s.Begin.Greater(s.End) {
		return nil
	}
	if s.Begin.Equal(s.End) {
		return []TimeSpan{s}
	}

	var spans []TimeSpan
	begin := s.Begin
	for begin.Less(s.End) {
		next := begin.Floor().MustAdd(One)
		end := s.End
		if next.Less(end) {
			end = next
		}
		spans = append(spans, TimeSpan{Begin: begin, End: end})
		begin = end
	}
	return spans
}

// Cycle returns the integer cycle this span's Begin lies within.
func (s TimeSpan) Cycle() int64 {
	return s.Begin.Floor().Num()
}

// WithCycle remaps a span from absolute cycle time into the [0,1)
// frame of a single cycle by subtracting cycle from both endpoints.
func (s TimeSpan) WithCycle(cycle Time) TimeSpan {
	return TimeSpan{
		Begin: s.Begin.MustSub(cycle),
		End:   s.End.MustSub(cycle),
	}
}
