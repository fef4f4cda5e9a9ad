package pattern

import "fmt"

// Scalar is a leaf value: a number, string, or boolean. Numbers are
// kept as Time so they compose exactly with the rest of the engine
// (e.g. a "note" value can be added to a pattern's own time-derived
// values without floating point drift).
type Scalar struct {
	kind scalarKind
	num  Time
	str  string
	b    bool
}

type scalarKind uint8

const (
	scalarNumber scalarKind = iota
	scalarString
	scalarBool
)

func NumberScalar(t Time) Scalar { return Scalar{kind: scalarNumber, num: t} }
func StringScalar(s string) Scalar { return Scalar{kind: scalarString, str: s} }
func BoolScalar(b bool) Scalar   { return Scalar{kind: scalarBool, b: b} }

func (s Scalar) IsNumber() bool { return s.kind == scalarNumber }
func (s Scalar) IsString() bool { return s.kind == scalarString }
func (s Scalar) IsBool() bool   { return s.kind == scalarBool }

func (s Scalar) Number() Time  { return s.num }
func (s Scalar) String() string {
	switch s.kind {
	case scalarNumber:
		return s.num.String()
	case scalarBool:
		return fmt.Sprintf("%t", s.b)
	default:
		return s.str
	}
}
func (s Scalar) Bool() bool { return s.b }

func (s Scalar) Equal(o Scalar) bool {
	if s.kind != o.kind {
		return false
	}
	switch s.kind {
	case scalarNumber:
		return s.num.Equal(o.num)
	case scalarBool:
		return s.b == o.b
	default:
		return s.str == o.str
	}
}

// Value is the payload of a Hap: either a bare Scalar (e.g. a plain
// sound name in "bd sn hh") or a ControlMap (e.g. the merged result of
// `note(...).s(...)`), per spec §3 Control/value.
type Value struct {
	scalar   Scalar
	isScalar bool
	controls ControlMap
}

// ScalarValue wraps a Scalar as a Value.
func ScalarValue(s Scalar) Value { return Value{scalar: s, isScalar: true} }

// MapValue wraps a ControlMap as a Value.
func MapValue(m ControlMap) Value { return Value{controls: m} }

// IsScalar reports whether this Value is a bare scalar rather than a
// control map.
func (v Value) IsScalar() bool { return v.isScalar }

// Scalar returns the bare scalar payload; only meaningful when
// IsScalar() is true.
func (v Value) Scalar() Scalar { return v.scalar }

// Controls returns the control map payload; only meaningful when
// IsScalar() is false. Returns an empty map rather than nil when
// called on a scalar Value, so callers can always range over it.
func (v Value) Controls() ControlMap {
	if v.isScalar {
		return ControlMap{}
	}
	return v.controls
}

// AsControls coerces any Value into a ControlMap, wrapping a bare
// scalar under defaultKey (e.g. "s", the sample-name control), which
// is how mini-notation atoms like "bd" become playable events once
// merged with note/gain/etc.
func (v Value) AsControls(defaultKey string) ControlMap {
	if !v.isScalar {
		return v.controls
	}
	return ControlMap{InternControl(defaultKey): v.scalar}
}

func (v Value) String() string {
	if v.isScalar {
		return v.scalar.String()
	}
	return v.controls.String()
}

// MergeBias selects how two overlapping control keys resolve when
// Values are combined by an applicative combinator (spec §4.6).
type MergeBias int

const (
	// BiasRight keeps the right-hand operand's value on collision
	// (the `|>` merge policy).
	BiasRight MergeBias = iota
	// BiasLeft keeps the left-hand operand's value on collision
	// (the `<|` merge policy).
	BiasLeft
	// BiasUnion is the symmetric `|` merge policy, used by app_both
	// when composing e.g. .note(...).s(...) where the two sides are
	// expected not to collide. Disjointness is not checked: on a
	// collision the right-hand value wins, as with BiasRight.
	BiasUnion
)

// Merge combines two Values per spec §3/§4.6. Two scalars combine by
// treating both as controls under defaultKey before merging, so a
// bare atom pattern can still be stacked against a control pattern.
func Merge(a, b Value, bias MergeBias, defaultKey string) Value {
	if a.isScalar && b.isScalar {
		switch bias {
		case BiasLeft:
			return a
		default:
			return b
		}
	}
	am := a.AsControls(defaultKey)
	bm := b.AsControls(defaultKey)
	return MapValue(am.Merge(bm, bias))
}
