package mininotation

import (
	"strconv"
	"strings"

	"github.com/wbrown/janus-pattern/pattern"
)

// Lower turns a parsed AST into a queryable pattern.Pattern, spec
// §4.4.2. It is the single place notation semantics become engine
// semantics; everything above this point is pure syntax.
func Lower(n *Node) (pattern.Pattern, error) {
	return lowerElement(*n)
}

// lowerElement applies a node's attached post-operators (minus weight
// and replicate, which only make sense at the sequence that contains
// this element and are consumed by lowerSequence before this is ever
// called directly on a sequence child) around its lowered primary form.
func lowerElement(n Node) (pattern.Pattern, error) {
	base, err := lowerPrimary(n)
	if err != nil {
		return pattern.Silence, err
	}
	return applyOps(base, n.Ops)
}

func lowerPrimary(n Node) (pattern.Pattern, error) {
	switch n.Kind {
	case KindAtom:
		return pattern.Pure(atomValue(n.Token)), nil
	case KindRest:
		return pattern.Silence, nil
	case KindSequence:
		return lowerSequence(n.Children)
	case KindParallel:
		return lowerParallel(n.Children)
	case KindAlternate:
		return lowerAlternate(n.Children)
	case KindRandomChoose:
		return lowerRandomChoose(n.Children)
	case KindPolymeter:
		return lowerPolymeter(n)
	case KindRange:
		return lowerRange(n)
	default:
		return pattern.Silence, errAt(n.Loc, "cannot lower node kind %s", n.Kind)
	}
}

// lowerSequence expands '!' replication, pulls out any '@' weights, and
// assembles the result: an unweighted sequence uses the simpler,
// identically-behaved Sequence combinator; any explicit weight forces
// the proportional TimeCat form (spec §4.4.2 sequence-with-weights).
func lowerSequence(children []Node) (pattern.Pattern, error) {
	expanded, err := expandReplicates(children)
	if err != nil {
		return pattern.Silence, err
	}

	pats := make([]pattern.Pattern, len(expanded))
	weights := make([]pattern.Time, len(expanded))
	anyWeighted := false
	for i, child := range expanded {
		weight, rest, err := extractWeight(child.Ops)
		if err != nil {
			return pattern.Silence, err
		}
		child.Ops = rest
		p, err := lowerElement(child)
		if err != nil {
			return pattern.Silence, err
		}
		pats[i] = p
		if weight != nil {
			weights[i] = *weight
			anyWeighted = true
		} else {
			weights[i] = pattern.One
		}
	}

	if !anyWeighted {
		return pattern.Sequence(pats...), nil
	}
	return pattern.TimeCat(weights, pats), nil
}

func lowerParallel(children []Node) (pattern.Pattern, error) {
	pats, err := lowerAll(children)
	if err != nil {
		return pattern.Silence, err
	}
	return pattern.Stack(pats...), nil
}

func lowerAlternate(children []Node) (pattern.Pattern, error) {
	pats, err := lowerAll(children)
	if err != nil {
		return pattern.Silence, err
	}
	return pattern.SlowCat(pats...), nil
}

func lowerRandomChoose(children []Node) (pattern.Pattern, error) {
	pats, err := lowerAll(children)
	if err != nil {
		return pattern.Silence, err
	}
	return pattern.RandCat(pats), nil
}

func lowerAll(children []Node) ([]pattern.Pattern, error) {
	pats := make([]pattern.Pattern, len(children))
	for i, c := range children {
		p, err := lowerElement(c)
		if err != nil {
			return nil, err
		}
		pats[i] = p
	}
	return pats, nil
}

// lowerPolymeter lowers each clause as its own sequence (so its step
// count reflects its own element count) and lets pattern.Polymeter fit
// them to a common base, spec §4.4.2 polymeter.
func lowerPolymeter(n Node) (pattern.Pattern, error) {
	pats := make([]pattern.Pattern, len(n.Children))
	for i, c := range n.Children {
		var p pattern.Pattern
		var err error
		if c.Kind == KindSequence {
			p, err = lowerSequence(c.Children)
		} else {
			p, err = lowerElement(c)
		}
		if err != nil {
			return pattern.Silence, err
		}
		pats[i] = p
	}
	var override *pattern.Time
	if n.StepCount != nil {
		t := pattern.FromInt(int64(*n.StepCount))
		override = &t
	}
	return pattern.Polymeter(override, pats...), nil
}

// lowerRange expands integer sugar "a..b" into the sequence of
// Pure(n) for n from a to b inclusive, ascending or descending to
// match the direction given, spec §4.4.1 range sugar.
func lowerRange(n Node) (pattern.Pattern, error) {
	if len(n.Children) != 1 {
		return pattern.Silence, errAt(n.Loc, "malformed range")
	}
	start, err := strconv.Atoi(n.Token)
	if err != nil {
		return pattern.Silence, errAt(n.Loc, "range start %q is not an integer", n.Token)
	}
	end, err := strconv.Atoi(n.Children[0].Token)
	if err != nil {
		return pattern.Silence, errAt(n.Children[0].Loc, "range end %q is not an integer", n.Children[0].Token)
	}
	var vals []pattern.Value
	if start <= end {
		for v := start; v <= end; v++ {
			vals = append(vals, pattern.ScalarValue(pattern.NumberScalar(pattern.FromInt(int64(v)))))
		}
	} else {
		for v := start; v >= end; v-- {
			vals = append(vals, pattern.ScalarValue(pattern.NumberScalar(pattern.FromInt(int64(v)))))
		}
	}
	return pattern.FromListSeq(vals), nil
}

// expandReplicates turns any child carrying a bare '!' or '!n' op into
// n (default 2 — one extra copy) adjacent copies of itself with that
// op stripped, spec §4.4.1 replicate.
func expandReplicates(children []Node) ([]Node, error) {
	var out []Node
	for _, c := range children {
		count := 1
		var rest []Op
		found := false
		for _, op := range c.Ops {
			if op.Kind == OpReplicate && !found {
				found = true
				n := 2
				if len(op.Args) == 1 {
					parsed, err := strconv.Atoi(op.Args[0])
					if err != nil {
						return nil, errAt(op.Loc, "invalid replicate count %q", op.Args[0])
					}
					n = parsed
				}
				count = n
				continue
			}
			rest = append(rest, op)
		}
		c.Ops = rest
		for i := 0; i < count; i++ {
			out = append(out, c)
		}
	}
	return out, nil
}

// extractWeight removes a '@' op from ops if present, returning its
// parsed value and the remaining ops.
func extractWeight(ops []Op) (*pattern.Time, []Op, error) {
	var weight *pattern.Time
	var rest []Op
	for _, op := range ops {
		if op.Kind == OpWeight && weight == nil {
			t, err := parseTimeArg(op.Args[0])
			if err != nil {
				return nil, nil, errAt(op.Loc, "invalid weight %q: %v", op.Args[0], err)
			}
			weight = &t
			continue
		}
		rest = append(rest, op)
	}
	return weight, rest, nil
}

// applyOps threads a pattern through its remaining post-operators in
// source order, spec §4.4.2 operator lowering.
func applyOps(p pattern.Pattern, ops []Op) (pattern.Pattern, error) {
	for _, op := range ops {
		var err error
		p, err = applyOp(p, op)
		if err != nil {
			return pattern.Silence, err
		}
	}
	return p, nil
}

func applyOp(p pattern.Pattern, op Op) (pattern.Pattern, error) {
	switch op.Kind {
	case OpRepeat:
		t, err := parseTimeArg(op.Args[0])
		if err != nil {
			return p, errAt(op.Loc, "invalid repeat factor %q: %v", op.Args[0], err)
		}
		return pattern.Fast(t, p), nil
	case OpStretch:
		t, err := parseTimeArg(op.Args[0])
		if err != nil {
			return p, errAt(op.Loc, "invalid stretch factor %q: %v", op.Args[0], err)
		}
		return pattern.Slow(t, p), nil
	case OpDegrade:
		prob := 0.5
		if len(op.Args) == 1 {
			parsed, err := strconv.ParseFloat(op.Args[0], 64)
			if err != nil {
				return p, errAt(op.Loc, "invalid degrade probability %q: %v", op.Args[0], err)
			}
			prob = parsed
		}
		return pattern.Degrade(prob, p), nil
	case OpEuclid:
		return applyEuclid(p, op)
	case OpTail:
		tail := op.Args[0]
		return pattern.Fmap(p, func(v pattern.Value) pattern.Value {
			return withTail(v, tail)
		}), nil
	case OpWeight, OpReplicate:
		// consumed earlier by the enclosing sequence; a bare element
		// with no siblings still reaches here unconsumed and is a no-op.
		return p, nil
	default:
		return p, errAt(op.Loc, "unsupported operator")
	}
}

func applyEuclid(p pattern.Pattern, op Op) (pattern.Pattern, error) {
	if len(op.Args) < 2 {
		return p, errAt(op.Loc, "euclid needs at least (k,n)")
	}
	k, err := strconv.Atoi(op.Args[0])
	if err != nil {
		return p, errAt(op.Loc, "invalid euclid k %q", op.Args[0])
	}
	m, err := strconv.Atoi(op.Args[1])
	if err != nil {
		return p, errAt(op.Loc, "invalid euclid n %q", op.Args[1])
	}
	rot := 0
	if len(op.Args) == 3 {
		rot, err = strconv.Atoi(op.Args[2])
		if err != nil {
			return p, errAt(op.Loc, "invalid euclid rotation %q", op.Args[2])
		}
	}
	return pattern.Struct(pattern.Euclid(k, m, rot), p), nil
}

func withTail(v pattern.Value, tail string) pattern.Value {
	m := v.AsControls("s")
	if n, ok := parseNumber(tail); ok {
		m = m.Merge(pattern.ControlMap{pattern.InternControl("n"): pattern.NumberScalar(n)}, pattern.BiasRight)
	} else {
		m = m.Merge(pattern.ControlMap{pattern.InternControl("n"): pattern.StringScalar(tail)}, pattern.BiasRight)
	}
	return pattern.MapValue(m)
}

func atomValue(token string) pattern.Value {
	if n, ok := parseNumber(token); ok {
		return pattern.ScalarValue(pattern.NumberScalar(n))
	}
	return pattern.ScalarValue(pattern.StringScalar(token))
}

// parseNumber parses an integer or decimal literal, including a
// leading sign, into an exact rational Time — never through float64,
// so "0.1" composes the same way a hand-written Time(1,10) would.
func parseNumber(s string) (pattern.Time, bool) {
	if s == "" {
		return pattern.Zero, false
	}
	neg := false
	rest := s
	if rest[0] == '-' || rest[0] == '+' {
		neg = rest[0] == '-'
		rest = rest[1:]
	}
	if rest == "" {
		return pattern.Zero, false
	}
	intPart, fracPart, hasDot := strings.Cut(rest, ".")
	if !allDigits(intPart) || (hasDot && !allDigits(fracPart)) {
		return pattern.Zero, false
	}
	if intPart == "" && fracPart == "" {
		return pattern.Zero, false
	}
	num, den := int64(0), int64(1)
	if intPart != "" {
		v, err := strconv.ParseInt(intPart, 10, 64)
		if err != nil {
			return pattern.Zero, false
		}
		num = v
	}
	if fracPart != "" {
		v, err := strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return pattern.Zero, false
		}
		for range fracPart {
			den *= 10
		}
		num = num*den + v
	}
	if neg {
		num = -num
	}
	t, err := pattern.NewTime(num, den)
	if err != nil {
		return pattern.Zero, false
	}
	return t, true
}

func allDigits(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseTimeArg parses a post-operator's numeric argument (spec §4.4.1
// allows these to be plain integers or decimals).
func parseTimeArg(s string) (pattern.Time, error) {
	t, ok := parseNumber(s)
	if !ok {
		return pattern.Zero, errAt(Location{}, "not a number: %q", s)
	}
	return t, nil
}
