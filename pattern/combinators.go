package pattern

// Stack plays every pattern simultaneously: the union of each child's
// query against the same span, concatenated (spec §4.3.2 stack).
// Its steps is the LCM of its children's steps (spec §4.3.8), falling
// back to "no opinion" when no child declares one.
func Stack(pats ...Pattern) Pattern {
	if len(pats) == 1 {
		return pats[0]
	}
	p := New(func(state State) []Hap {
		var out []Hap
		for i, child := range pats {
			out = append(out, child.Query(state.withPath(uint64(i)))...)
		}
		return out
	})
	if steps, ok := lcmSteps(pats); ok {
		p = p.WithSteps(steps)
	}
	return p
}

// lcmSteps combines each child's steps fraction p/q via the rational
// LCM identity lcm(a/b, c/d) = lcm(a,c) / gcd(b,d), folded pairwise
// across all children that declare a steps value.
func lcmSteps(pats []Pattern) (Time, bool) {
	var acc Time
	have := false
	for _, p := range pats {
		s, ok := p.Steps()
		if !ok {
			continue
		}
		if !have {
			acc = s
			have = true
			continue
		}
		acc = MustTime(LCM(acc.Num(), s.Num()), gcd(acc.Den(), s.Den()))
	}
	return acc, have
}

// SlowCat ("alternate") plays one whole child pattern per cycle,
// selecting child C mod n for absolute cycle C and querying it as if
// it were cycle floor(C/n), per spec §4.3.2 slowcat. This is what
// lets a nested pattern inside a slot keep advancing its own
// internal cycle count only on the cycles it is actually selected,
// matching Tidal's `slowcat`.
func SlowCat(pats ...Pattern) Pattern {
	n := int64(len(pats))
	if n == 0 {
		return Silence
	}
	if n == 1 {
		return pats[0]
	}
	return New(func(state State) []Hap {
		var out []Hap
		for _, span := range state.Span.SpanCycles() {
			cyc := span.Begin.Floor().Num()
			idx := mod64(cyc, n)
			child := pats[idx]
			childCycle := floorDiv(cyc, n)
			offset := FromInt(cyc).MustSub(FromInt(childCycle))

			childSpan := span.WithTime(func(t Time) Time { return t.MustSub(offset) })
			childState := state.WithSpan(childSpan).withPath(uint64(idx))
			haps := child.Query(childState)
			for _, h := range haps {
				out = append(out, h.WithSpan(func(ts TimeSpan) TimeSpan {
					return ts.WithTime(func(t Time) Time { return t.MustAdd(offset) })
				}))
			}
		}
		return out
	})
}

func mod64(a, n int64) int64 {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

func floorDiv(a, n int64) int64 {
	q := a / n
	if a%n != 0 && (a < 0) != (n < 0) {
		q--
	}
	return q
}

// Sequence splits each cycle into len(pats) equal fractions, playing
// pats[k] in the k-th fraction by speeding a SlowCat of them up by
// len(pats), per spec §4.3.2 sequence. This composition is exactly
// Tidal's `fastcat = _fast (length xs) . slowcat`.
func Sequence(pats ...Pattern) Pattern {
	n := int64(len(pats))
	if n == 0 {
		return Silence
	}
	return Fast(FromInt(n), SlowCat(pats...)).WithSteps(FromInt(n))
}

// FastCat is an alias for Sequence, spec §4.3.2.
func FastCat(pats ...Pattern) Pattern { return Sequence(pats...) }

// Polymeter fits every child to a common step count (the LCM of their
// own steps, unless stepsOverride is supplied), stretching each child
// so that its step count equals that common value, per spec §4.3.2 and
// §4.3.8/§9 (fixed to LCM when not explicit). Each child is itself
// assumed to behave like a Sequence of its own elements; the step
// count named on construction (via NewWithSteps / sequence) is what
// Polymeter reads to compute the stretch factor.
func Polymeter(stepsOverride *Time, pats ...Pattern) Pattern {
	if len(pats) == 0 {
		return Silence
	}
	var common Time
	if stepsOverride != nil {
		common = *stepsOverride
	} else {
		common = polymeterLCM(pats)
	}

	stretched := make([]Pattern, len(pats))
	for i, p := range pats {
		childSteps, ok := p.Steps()
		if !ok || childSteps.Num() == 0 {
			stretched[i] = p
			continue
		}
		factor := common.MustDiv(childSteps)
		stretched[i] = Fast(factor, p)
	}
	return Stack(stretched...).WithSteps(common)
}

// TimeCat divides one cycle among pats proportionally to weights
// (spec §4.4.2's lowering of `@`-weighted sequence slots), generalizing
// Sequence's equal-width split the same way Tidal's `timeCat` does: a
// child of weight w occupies a fraction w / sum(weights) of the cycle.
// Each child is queried directly for its slot, with the slot's width
// time-warped onto the child's own cycle, instead of using Fast
// uniformly.
func TimeCat(weights []Time, pats []Pattern) Pattern {
	if len(pats) == 0 {
		return Silence
	}
	if len(pats) == 1 {
		return pats[0]
	}
	total := weights[0]
	for _, w := range weights[1:] {
		total = total.MustAdd(w)
	}
	begins := make([]Time, len(pats))
	ends := make([]Time, len(pats))
	acc := Zero
	for i, w := range weights {
		begins[i] = acc.MustDiv(total)
		acc = acc.MustAdd(w)
		ends[i] = acc.MustDiv(total)
	}
	return New(func(state State) []Hap {
		var out []Hap
		for _, span := range state.Span.SpanCycles() {
			cycle := span.Begin.Floor()
			for i, child := range pats {
				b, e := begins[i], ends[i]
				scale := e.MustSub(b)
				if scale.Num() == 0 {
					continue
				}
				slot := TimeSpan{Begin: cycle.MustAdd(b), End: cycle.MustAdd(e)}
				part, ok := slot.Intersect(span)
				if !ok {
					continue
				}
				toLocal := func(t Time) Time {
					return t.MustSub(cycle).MustSub(b).MustDiv(scale).MustAdd(cycle)
				}
				toGlobal := func(t Time) Time {
					return t.MustSub(cycle).MustMul(scale).MustAdd(cycle).MustAdd(b)
				}
				childState := state.WithSpan(part.WithTime(toLocal)).withPath(uint64(i))
				haps := child.Query(childState)
				for _, h := range haps {
					out = append(out, h.WithSpan(func(ts TimeSpan) TimeSpan {
						return ts.WithTime(toGlobal)
					}))
				}
			}
		}
		return out
	}).WithSteps(FromInt(int64(len(pats))))
}

func polymeterLCM(pats []Pattern) Time {
	steps, ok := lcmSteps(pats)
	if !ok {
		return One
	}
	return steps
}
