package pattern

import "fmt"

// Time is an exact rational number p/q, always stored in lowest terms
// with a positive denominator. It is the sole representation of
// musical time in the engine: cycle positions, span boundaries, and
// tempo-independent durations are all Time values.
type Time struct {
	num int64
	den int64
}

// Zero, One and Half are convenience constants used throughout the
// combinators.
var (
	Zero = Time{0, 1}
	One  = Time{1, 1}
	Half = Time{1, 2}
)

// NewTime constructs a Time from a numerator and denominator, reducing
// it to lowest terms and normalizing the sign onto the numerator. A
// zero denominator is reported through TimeError rather than by
// panicking, per spec §4.1.
func NewTime(num, den int64) (Time, error) {
	if den == 0 {
		return Time{}, errZeroDenominator("NewTime")
	}
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd(abs64(num), den)
	if g == 0 {
		g = 1
	}
	return Time{num: num / g, den: den / g}, nil
}

// MustTime is NewTime for callers that know the denominator is never
// zero (integer literals, constants).
func MustTime(num, den int64) Time {
	t, err := NewTime(num, den)
	if err != nil {
		panic(err)
	}
	return t
}

// FromInt returns the Time for an integer cycle count.
func FromInt(n int64) Time { return Time{num: n, den: 1} }

// FromFloat approximates a float64 as a rational with a bounded
// denominator of 2^20. Mini-notation lowering does not use it: numeric
// literals are parsed exactly from their digits.
func FromFloat(f float64) Time {
	const denom = 1 << 20 // matches the design note: denom rarely exceeds 2^20
	num := int64(f * float64(denom))
	return MustTime(num, denom)
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// Num and Den expose the reduced numerator/denominator pair.
func (t Time) Num() int64 { return t.num }
func (t Time) Den() int64 { return t.den }

func (t Time) String() string {
	if t.den == 1 {
		return fmt.Sprintf("%d", t.num)
	}
	return fmt.Sprintf("%d/%d", t.num, t.den)
}

// Float64 returns an approximate floating-point value, used only at
// the boundary with wall-clock math in the scheduler.
func (t Time) Float64() float64 {
	return float64(t.num) / float64(t.den)
}

// Add returns t+u, reporting overflow via TimeError instead of
// wrapping or panicking.
func (t Time) Add(u Time) (Time, error) {
	num, ok := checkedCross(t.num, u.den, u.num, t.den, addOp)
	if !ok {
		return Time{}, errOverflow("Add")
	}
	den, ok := checkedMul(t.den, u.den)
	if !ok {
		return Time{}, errOverflow("Add")
	}
	return NewTime(num, den)
}

// MustAdd panics on overflow; used for constant folding where the
// operands are known-small.
func (t Time) MustAdd(u Time) Time {
	r, err := t.Add(u)
	if err != nil {
		panic(err)
	}
	return r
}

func (t Time) Sub(u Time) (Time, error) {
	return t.Add(Time{num: -u.num, den: u.den})
}

func (t Time) MustSub(u Time) Time {
	r, err := t.Sub(u)
	if err != nil {
		panic(err)
	}
	return r
}

func (t Time) Mul(u Time) (Time, error) {
	num, ok := checkedMul(t.num, u.num)
	if !ok {
		return Time{}, errOverflow("Mul")
	}
	den, ok := checkedMul(t.den, u.den)
	if !ok {
		return Time{}, errOverflow("Mul")
	}
	return NewTime(num, den)
}

func (t Time) MustMul(u Time) Time {
	r, err := t.Mul(u)
	if err != nil {
		panic(err)
	}
	return r
}

func (t Time) Div(u Time) (Time, error) {
	if u.num == 0 {
		return Time{}, errZeroDenominator("Div")
	}
	return t.Mul(Time{num: u.den, den: u.num})
}

func (t Time) MustDiv(u Time) Time {
	r, err := t.Div(u)
	if err != nil {
		panic(err)
	}
	return r
}

// Neg returns -t.
func (t Time) Neg() Time { return Time{num: -t.num, den: t.den} }

// Cmp returns -1, 0, or 1 as t is less than, equal to, or greater
// than u.
func (t Time) Cmp(u Time) int {
	// cross-multiply; denominators are always positive so sign is safe
	lhs := t.num * u.den
	rhs := u.num * t.den
	switch {
	case lhs < rhs:
		return -1
	case lhs > rhs:
		return 1
	default:
		return 0
	}
}

func (t Time) Less(u Time) bool    { return t.Cmp(u) < 0 }
func (t Time) LessEq(u Time) bool  { return t.Cmp(u) <= 0 }
func (t Time) Greater(u Time) bool { return t.Cmp(u) > 0 }
func (t Time) GreaterEq(u Time) bool {
	return t.Cmp(u) >= 0
}
func (t Time) Equal(u Time) bool { return t.num == u.num && t.den == u.den }

// Floor returns the greatest integer Time <= t.
func (t Time) Floor() Time {
	q := t.num / t.den
	if t.num%t.den != 0 && (t.num < 0) != (t.den < 0) {
		q--
	}
	return Time{num: q, den: 1}
}

// Ceil returns the least integer Time >= t.
func (t Time) Ceil() Time {
	f := t.Floor()
	if f.Equal(t) {
		return f
	}
	return f.MustAdd(One)
}

// CyclePos returns t - floor(t), the position within the current
// cycle, always in [0, 1).
func (t Time) CyclePos() Time {
	return t.MustSub(t.Floor())
}

// IsInt reports whether t is a whole cycle boundary.
func (t Time) IsInt() bool { return t.den == 1 }

func checkedMul(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	r := a * b
	if r/b != a {
		return 0, false
	}
	return r, true
}

func checkedAdd(a, b int64) (int64, bool) {
	r := a + b
	if (r > a) != (b > 0) {
		return 0, false
	}
	return r, true
}

const addOp = 0

// checkedCross computes a*bd + c*ad, the cross-multiplied numerator
// for a/b + c/d, reporting overflow.
func checkedCross(a, bd, c, ad int64, _ int) (int64, bool) {
	lhs, ok := checkedMul(a, bd)
	if !ok {
		return 0, false
	}
	rhs, ok := checkedMul(c, ad)
	if !ok {
		return 0, false
	}
	return checkedAdd(lhs, rhs)
}

// LCM returns the least common multiple of two positive integers,
// used by Stack's steps arithmetic and by polymeter alignment.
func LCM(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	return abs64(a/gcd(abs64(a), abs64(b))*b)
}
