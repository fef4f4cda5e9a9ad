package pattern

// Fast scales time by k: the child is queried over the span widened
// by k, and the returned haps have their times divided by k again
// (spec §4.3.3 fast). k == 0 degenerates to Silence; a negative k
// plays Rev(p) at speed -k.
func Fast(k Time, p Pattern) Pattern {
	if k.Num() == 0 {
		return Silence
	}
	if k.Num() < 0 {
		return Fast(k.Neg(), Rev(p))
	}
	out := New(func(state State) []Hap {
		scaled := state.Span.WithTime(func(t Time) Time { return t.MustMul(k) })
		haps := p.Query(state.WithSpan(scaled))
		result := make([]Hap, len(haps))
		for i, h := range haps {
			result[i] = h.WithSpan(func(ts TimeSpan) TimeSpan {
				return ts.WithTime(func(t Time) Time { return t.MustDiv(k) })
			})
		}
		return result
	})
	if steps, ok := p.Steps(); ok {
		out = out.WithSteps(steps.MustDiv(k))
	}
	return out
}

// Slow is Fast(1/k), spec §4.3.3.
func Slow(k Time, p Pattern) Pattern {
	if k.Num() == 0 {
		return Silence
	}
	return Fast(One.MustDiv(k), p)
}

// Early translates time earlier (towards zero) by t: querying cycle C
// effectively plays what would have happened at C+t, spec §4.3.3.
func Early(t Time, p Pattern) Pattern {
	out := New(func(state State) []Hap {
		shifted := state.Span.WithTime(func(x Time) Time { return x.MustAdd(t) })
		haps := p.Query(state.WithSpan(shifted))
		result := make([]Hap, len(haps))
		for i, h := range haps {
			result[i] = h.WithSpan(func(ts TimeSpan) TimeSpan {
				return ts.WithTime(func(x Time) Time { return x.MustSub(t) })
			})
		}
		return result
	})
	if steps, ok := p.Steps(); ok {
		out = out.WithSteps(steps)
	}
	return out
}

// Late translates time later by t: Early(-t), spec §4.3.3.
func Late(t Time, p Pattern) Pattern {
	return Early(t.Neg(), p)
}

// Rev reflects time within each cycle: local t in [0,1) maps to 1-t,
// spec §4.3.3 rev.
func Rev(p Pattern) Pattern {
	out := New(func(state State) []Hap {
		var result []Hap
		for _, span := range state.Span.SpanCycles() {
			cycle := span.Begin.Floor()
			next := cycle.MustAdd(One)
			reflect := func(t Time) Time {
				// next - (t - cycle) = next + cycle - t
				return next.MustAdd(cycle).MustSub(t)
			}
			// reflecting a span swaps and reverses begin/end
			reflected := TimeSpan{Begin: reflect(span.End), End: reflect(span.Begin)}
			haps := p.Query(state.WithSpan(reflected))
			for _, h := range haps {
				result = append(result, h.WithSpan(func(ts TimeSpan) TimeSpan {
					return TimeSpan{Begin: reflect(ts.End), End: reflect(ts.Begin)}
				}))
			}
		}
		return result
	})
	if steps, ok := p.Steps(); ok {
		out = out.WithSteps(steps)
	}
	return out
}

// Iter rotates the pattern by C/n on cycle C: across n consecutive
// cycles the pattern's phase advances by one n-th of a cycle each
// time, then repeats, spec §4.3.3 iter. Implemented as a slowcat of
// the n rotations, mirroring Tidal's `_iter`.
func Iter(n int64, p Pattern) Pattern {
	if n == 0 {
		return p
	}
	if n < 0 {
		return Iter(-n, Rev(p))
	}
	variants := make([]Pattern, n)
	for i := int64(0); i < n; i++ {
		phase := MustTime(i, n)
		variants[i] = Early(phase, p)
	}
	out := SlowCat(variants...)
	if steps, ok := p.Steps(); ok {
		out = out.WithSteps(steps)
	}
	return out
}

// Every applies f to p on every n-th cycle (cycle index mod n == 0)
// and leaves p untouched on other cycles, spec §4.3.3 every. The
// choice of which cycles get transformed is a pure function of the
// absolute cycle index, so it is deterministic for a fixed n
// regardless of where in a larger query a given cycle falls.
func Every(n int64, f func(Pattern) Pattern, p Pattern) Pattern {
	if n <= 0 {
		return p
	}
	return WhenCycle(func(cycle int64) bool { return mod64(cycle, n) == 0 }, f, p)
}

// WhenCycle applies f to p on cycles where test(cycle) is true and
// leaves p untouched otherwise, per-cycle. This generalizes Every and
// backs mini-notation's cycle-indexed operators.
func WhenCycle(test func(int64) bool, f func(Pattern) Pattern, p Pattern) Pattern {
	transformed := f(p)
	out := New(func(state State) []Hap {
		var result []Hap
		for _, span := range state.Span.SpanCycles() {
			cycle := span.Begin.Floor().Num()
			target := p
			if test(cycle) {
				target = transformed
			}
			result = append(result, target.Query(state.WithSpan(span))...)
		}
		return result
	})
	if steps, ok := p.Steps(); ok {
		out = out.WithSteps(steps)
	}
	return out
}
