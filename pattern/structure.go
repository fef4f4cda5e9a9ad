package pattern

// Struct keeps only the Haps of pat whose Part overlaps a true Hap of
// binary, clipping to the overlap and taking the resulting Whole from
// binary — i.e. binary supplies the rhythm, pat supplies the values,
// spec §4.3.5 struct. This is how a euclidean boolean pattern like
// `bd(3,8)` turns a single atom into a rhythm.
func Struct(binary, pat Pattern) Pattern {
	out := New(func(state State) []Hap {
		var result []Hap
		for _, bh := range binary.Query(state) {
			if !isTrue(bh.Value) {
				continue
			}
			for _, vh := range pat.Query(state.WithSpan(bh.WholeOrPart())) {
				part, ok := bh.Part.Intersect(vh.Part)
				if !ok || part.IsEmpty() {
					continue
				}
				result = append(result, Hap{
					Whole:   bh.Whole,
					Part:    part,
					Value:   vh.Value,
					Context: bh.Context.Combine(vh.Context),
				})
			}
		}
		return result
	})
	if steps, ok := binary.Steps(); ok {
		out = out.WithSteps(steps)
	}
	return out
}

// Mask keeps pat's own structure (its Whole, its events), discarding
// only the parts of it that fall outside a true Hap of binary, spec
// §4.3.5 mask. Unlike Struct, the surviving event's Whole is pat's,
// not binary's.
func Mask(binary, pat Pattern) Pattern {
	out := New(func(state State) []Hap {
		var result []Hap
		for _, ph := range pat.Query(state) {
			for _, bh := range binary.Query(state.WithSpan(ph.WholeOrPart())) {
				if !isTrue(bh.Value) {
					continue
				}
				part, ok := ph.Part.Intersect(bh.Part)
				if !ok || part.IsEmpty() {
					continue
				}
				result = append(result, Hap{
					Whole:   ph.Whole,
					Part:    part,
					Value:   ph.Value,
					Context: ph.Context.Combine(bh.Context),
				})
			}
		}
		return result
	})
	if steps, ok := pat.Steps(); ok {
		out = out.WithSteps(steps)
	}
	return out
}

// Invert flips every boolean scalar value in a binary pattern,
// non-boolean values pass through unchanged. Used to build the
// complement of a euclidean rhythm or a hand-written boolean pattern,
// spec §4.3.5 "invert variants with symmetric semantics".
func Invert(p Pattern) Pattern {
	out := New(func(state State) []Hap {
		haps := p.Query(state)
		result := make([]Hap, len(haps))
		for i, h := range haps {
			result[i] = h.WithValue(func(v Value) Value {
				if v.IsScalar() && v.Scalar().IsBool() {
					return ScalarValue(BoolScalar(!v.Scalar().Bool()))
				}
				return v
			})
		}
		return result
	})
	if steps, ok := p.Steps(); ok {
		out = out.WithSteps(steps)
	}
	return out
}

func isTrue(v Value) bool {
	return v.IsScalar() && v.Scalar().IsBool() && v.Scalar().Bool()
}
