package pattern

// Degrade drops each Hap of pat independently with probability prob.
// The coin flip for a given Hap is derived from a seeded hash of the
// cycle it falls in plus its onset time (spec §4.3.6 degrade: "using a
// seeded hash of (cycle_index, hap_index)") rather than its position
// in the returned slice, since §4.3.7 explicitly does not guarantee
// that order — keying on time instead of slice index keeps the same
// Hap degraded (or not) the same way regardless of how it was queried,
// which the Locality property (§8) requires.
func Degrade(prob float64, pat Pattern) Pattern {
	out := New(func(state State) []Hap {
		haps := pat.Query(state)
		result := make([]Hap, 0, len(haps))
		for _, h := range haps {
			if randFloat(hapSeed(state, h)) >= prob {
				result = append(result, h)
			}
		}
		return result
	})
	if steps, ok := pat.Steps(); ok {
		out = out.WithSteps(steps)
	}
	return out
}

// Undegrade is Degrade's complement: it keeps exactly the Haps
// Degrade(prob, pat) would drop, using the identical coin flip so the
// two partition pat's events with no overlap and no gaps.
func Undegrade(prob float64, pat Pattern) Pattern {
	return New(func(state State) []Hap {
		haps := pat.Query(state)
		result := make([]Hap, 0, len(haps))
		for _, h := range haps {
			if randFloat(hapSeed(state, h)) < prob {
				result = append(result, h)
			}
		}
		return result
	})
}

func hapSeed(state State, h Hap) uint64 {
	span := h.WholeOrPart()
	cycle := span.Begin.Floor().Num()
	timeTag := uint64(span.Begin.Num())*0x100000001B3 ^ uint64(span.Begin.Den())
	return state.seedFor(cycle) ^ mixPath(timeTag, 0x2545F4914F6CDD1D)
}

// Choose returns a pattern that picks one of xs per cycle, seeded by
// cycle index (spec §4.3.6 choose).
func Choose(xs []Value) Pattern {
	if len(xs) == 0 {
		return Silence
	}
	return New(func(state State) []Hap {
		var out []Hap
		for _, span := range state.Span.SpanCycles() {
			cycle := span.Begin.Floor()
			idx := randIndex(state.seedFor(cycle.Num()), len(xs))
			haps := Pure(xs[idx]).Query(state.WithSpan(span))
			out = append(out, haps...)
		}
		return out
	}).WithSteps(One)
}

// RandCat selects one whole pattern per cycle, uniformly at random,
// seeded by cycle index. This is the pattern-level analogue of Choose
// (which selects among plain Values), backing mini-notation's `|`
// random-choice group.
func RandCat(pats []Pattern) Pattern {
	if len(pats) == 0 {
		return Silence
	}
	if len(pats) == 1 {
		return pats[0]
	}
	return New(func(state State) []Hap {
		var out []Hap
		for _, span := range state.Span.SpanCycles() {
			cycle := span.Begin.Floor()
			idx := randIndex(state.seedFor(cycle.Num()), len(pats))
			out = append(out, pats[idx].Query(state.WithSpan(span).withPath(uint64(idx)))...)
		}
		return out
	})
}

// Weighted pairs a value with its relative selection weight for
// WChoose.
type Weighted struct {
	Weight float64
	Value  Value
}

// WChoose is Choose with non-uniform weights (spec §4.3.6 wchoose).
func WChoose(items []Weighted) Pattern {
	if len(items) == 0 {
		return Silence
	}
	total := 0.0
	for _, it := range items {
		total += it.Weight
	}
	return New(func(state State) []Hap {
		var out []Hap
		for _, span := range state.Span.SpanCycles() {
			cycle := span.Begin.Floor()
			r := randFloat(state.seedFor(cycle.Num())) * total
			chosen := items[len(items)-1].Value
			acc := 0.0
			for _, it := range items {
				acc += it.Weight
				if r < acc {
					chosen = it.Value
					break
				}
			}
			haps := Pure(chosen).Query(state.WithSpan(span))
			out = append(out, haps...)
		}
		return out
	}).WithSteps(One)
}
