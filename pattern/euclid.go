package pattern

// Bjorklund computes the Euclidean rhythm E(k, n): a length-n boolean
// slice distributing k onsets as evenly as possible (spec §4.3.6
// euclid / GLOSSARY "Euclidean rhythm"). k and n are clamped to sane
// bounds (0 <= k <= n, n > 0) so callers never need to guard against a
// malformed request themselves.
//
// This uses the closed-form "nearest bucket" formulation of the same
// rhythm Bjorklund's algorithm produces: slot i is an onset iff
// floor(i*k/n) != floor((i-1)*k/n). It agrees with the classic
// recursive construction for every (k, n) but needs no intermediate
// allocation.
func Bjorklund(k, n int) []bool {
	if n <= 0 {
		return nil
	}
	out := make([]bool, n)
	if k <= 0 {
		return out
	}
	if k >= n {
		for i := range out {
			out[i] = true
		}
		return out
	}
	prev := -1
	for i := 0; i < n; i++ {
		cur := (i * k) / n
		out[i] = cur != prev
		prev = cur
	}
	return out
}

// Euclid builds the boolean step pattern for E(k, n) rotated by rot
// steps, as a Sequence of Pure(bool) events, spec §4.3.6 euclid. A
// positive rotation shifts onsets earlier (towards step 0); the
// sequence wraps.
func Euclid(k, n, rot int) Pattern {
	bits := Bjorklund(k, n)
	if len(bits) == 0 {
		return Silence
	}
	rotated := rotateBools(bits, rot)
	pats := make([]Pattern, len(rotated))
	for i, b := range rotated {
		pats[i] = Pure(ScalarValue(BoolScalar(b)))
	}
	return Sequence(pats...)
}

func rotateBools(bits []bool, rot int) []bool {
	n := len(bits)
	if n == 0 {
		return bits
	}
	rot = ((rot % n) + n) % n
	out := make([]bool, n)
	for i := range bits {
		out[i] = bits[(i+rot)%n]
	}
	return out
}
