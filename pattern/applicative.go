package pattern

// Combine merges the values of two overlapping Haps into one, the
// user-supplied half of an applicative combinator (spec §4.3.4 names
// this "fHap.value(vHap.value)"; Go has no convenient value-level
// function pattern, so the combining function is passed directly
// rather than threaded through a second Pattern of functions).
type Combine func(a, b Value) Value

// AppLeft drives iteration by patF: for each of its Haps, patV is
// queried over that Hap's WholeOrPart, and every overlapping result is
// combined, keeping patF's Whole. This is the product combinator
// behind e.g. `.note(pat).s(constant)` where the left pattern carries
// the rhythmic structure (spec §4.3.4 app_left).
func AppLeft(combine Combine, patF, patV Pattern) Pattern {
	return New(func(state State) []Hap {
		var out []Hap
		fHaps := patF.Query(state)
		for _, fh := range fHaps {
			vHaps := patV.Query(state.WithSpan(fh.WholeOrPart()))
			for _, vh := range vHaps {
				part, ok := fh.Part.Intersect(vh.Part)
				if !ok || part.IsEmpty() {
					continue
				}
				h := Hap{
					Whole:   fh.Whole,
					Part:    part,
					Value:   combine(fh.Value, vh.Value),
					Context: fh.Context.Combine(vh.Context),
				}
				out = append(out, h)
			}
		}
		return out
	})
}

// AppRight is AppLeft with the roles of patF and patV swapped: patV
// drives iteration and its Whole is kept, spec §4.3.4 app_right.
func AppRight(combine Combine, patF, patV Pattern) Pattern {
	flipped := func(a, b Value) Value { return combine(b, a) }
	return AppLeft(flipped, patV, patF)
}

// AppBoth queries both patterns over the same span and pairs every
// overlapping combination (a symmetric nested-loop join on time
// overlap), keeping the intersection of both Wholes — if either side
// is continuous (Whole == nil) the result is continuous too, spec
// §4.3.4 app_both.
func AppBoth(combine Combine, patF, patV Pattern) Pattern {
	return New(func(state State) []Hap {
		var out []Hap
		fHaps := patF.Query(state)
		vHaps := patV.Query(state)
		for _, fh := range fHaps {
			for _, vh := range vHaps {
				part, ok := fh.Part.Intersect(vh.Part)
				if !ok || part.IsEmpty() {
					continue
				}
				whole := intersectWholes(fh.Whole, vh.Whole)
				h := Hap{
					Whole:   whole,
					Part:    part,
					Value:   combine(fh.Value, vh.Value),
					Context: fh.Context.Combine(vh.Context),
				}
				out = append(out, h)
			}
		}
		return out
	})
}

func intersectWholes(a, b *TimeSpan) *TimeSpan {
	if a == nil || b == nil {
		return nil
	}
	ts, ok := a.Intersect(*b)
	if !ok {
		return nil
	}
	return &ts
}

// --- numeric combinators built on the applicatives, spec §4.3.4 ---

func numCombine(op func(Time, Time) Time) Combine {
	return func(a, b Value) Value {
		if a.IsScalar() && b.IsScalar() && a.Scalar().IsNumber() && b.Scalar().IsNumber() {
			return ScalarValue(NumberScalar(op(a.Scalar().Number(), b.Scalar().Number())))
		}
		// non-numeric operands: fall back to control-map union so that
		// `.note(...).s(...)`-style composition (disjoint keys) still
		// works through the same Add/Mul entry points.
		return Merge(a, b, BiasUnion, "n")
	}
}

// Add combines two value patterns with app_both, adding numeric
// scalars or union-merging control maps.
func Add(a, b Pattern) Pattern {
	return AppBoth(numCombine(func(x, y Time) Time { return x.MustAdd(y) }), a, b)
}

// Sub subtracts numeric scalars with app_both.
func Sub(a, b Pattern) Pattern {
	return AppBoth(numCombine(func(x, y Time) Time { return x.MustSub(y) }), a, b)
}

// Mul multiplies numeric scalars with app_both.
func Mul(a, b Pattern) Pattern {
	return AppBoth(numCombine(func(x, y Time) Time { return x.MustMul(y) }), a, b)
}

// Div divides numeric scalars with app_both.
func Div(a, b Pattern) Pattern {
	return AppBoth(numCombine(func(x, y Time) Time { return x.MustDiv(y) }), a, b)
}

// MergeWith combines two value patterns' control maps with app_left,
// applying bias on key collision, for composing e.g. a
// `.note(...).s(...)` chain where the left pattern supplies the
// rhythmic structure. The mini-notation parser has no operator that
// lowers to it.
func MergeWith(bias MergeBias, defaultKey string, a, b Pattern) Pattern {
	return AppLeft(func(x, y Value) Value { return Merge(x, y, bias, defaultKey) }, a, b)
}
