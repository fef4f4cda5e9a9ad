package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strVal(s string) Value { return ScalarValue(StringScalar(s)) }

func queryFull(t *testing.T, p Pattern, begin, end Time) []Hap {
	t.Helper()
	state := NewState(NewSpan(begin, end))
	haps := p.Query(state)
	require.True(t, state.Diagnostics.Empty(), "unexpected diagnostics: %v", state.Diagnostics.Errors())
	return haps
}

// spec §8 scenario 1: parse("a b c") queried over (0,1).
func TestSequenceThreeSlots(t *testing.T) {
	p := Sequence(Pure(strVal("a")), Pure(strVal("b")), Pure(strVal("c")))
	haps := queryFull(t, p, Zero, One)
	require.Len(t, haps, 3)

	want := []struct {
		begin, end Time
		val        string
	}{
		{Zero, MustTime(1, 3), "a"},
		{MustTime(1, 3), MustTime(2, 3), "b"},
		{MustTime(2, 3), One, "c"},
	}
	for i, w := range want {
		assert.True(t, haps[i].Part.Begin.Equal(w.begin), "hap %d begin", i)
		assert.True(t, haps[i].Part.End.Equal(w.end), "hap %d end", i)
		assert.Equal(t, w.val, haps[i].Value.Scalar().String())
	}
}

// spec §8 scenario 2: parse("a [b c]") queried over (0,1).
func TestNestedGroup(t *testing.T) {
	inner := Sequence(Pure(strVal("b")), Pure(strVal("c")))
	p := Sequence(Pure(strVal("a")), inner)
	haps := queryFull(t, p, Zero, One)
	require.Len(t, haps, 3)

	assert.True(t, haps[0].Part.Begin.Equal(Zero))
	assert.True(t, haps[0].Part.End.Equal(Half))
	assert.Equal(t, "a", haps[0].Value.Scalar().String())

	assert.True(t, haps[1].Part.Begin.Equal(Half))
	assert.True(t, haps[1].Part.End.Equal(MustTime(3, 4)))
	assert.Equal(t, "b", haps[1].Value.Scalar().String())

	assert.True(t, haps[2].Part.Begin.Equal(MustTime(3, 4)))
	assert.True(t, haps[2].Part.End.Equal(One))
	assert.Equal(t, "c", haps[2].Value.Scalar().String())
}

// spec §8 scenario 4: parse("<x y z>") over (0,3).
func TestAlternateThreeCycles(t *testing.T) {
	p := SlowCat(Pure(strVal("x")), Pure(strVal("y")), Pure(strVal("z")))
	haps := queryFull(t, p, Zero, FromInt(3))
	require.Len(t, haps, 3)
	assert.Equal(t, "x", haps[0].Value.Scalar().String())
	assert.True(t, haps[0].Part.Begin.Equal(Zero))
	assert.Equal(t, "y", haps[1].Value.Scalar().String())
	assert.True(t, haps[1].Part.Begin.Equal(One))
	assert.Equal(t, "z", haps[2].Value.Scalar().String())
	assert.True(t, haps[2].Part.Begin.Equal(FromInt(2)))
}

func TestStackIsUnion(t *testing.T) {
	p := Stack(Pure(strVal("a")), Pure(strVal("b")))
	haps := queryFull(t, p, Zero, One)
	require.Len(t, haps, 2)
}

func TestStackOfOneIsIdentity(t *testing.T) {
	p := Pure(strVal("a"))
	stacked := Stack(p)
	h1 := queryFull(t, p, Zero, One)
	h2 := queryFull(t, stacked, Zero, One)
	require.Len(t, h1, 1)
	require.Len(t, h2, 1)
	assert.True(t, h1[0].SameOccurrence(h2[0]))
}

func TestFastOneIsIdentity(t *testing.T) {
	p := Sequence(Pure(strVal("a")), Pure(strVal("b")))
	a := queryFull(t, p, Zero, One)
	b := queryFull(t, Fast(One, p), Zero, One)
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.True(t, a[i].SameOccurrence(b[i]))
	}
}

func TestFastComposition(t *testing.T) {
	p := Pure(strVal("a"))
	lhs := queryFull(t, Fast(MustTime(2, 1), Fast(MustTime(3, 1), p)), Zero, One)
	rhs := queryFull(t, Fast(MustTime(6, 1), p), Zero, One)
	require.Equal(t, len(lhs), len(rhs))
}

func TestRevTwiceIsIdentity(t *testing.T) {
	p := Sequence(Pure(strVal("a")), Pure(strVal("b")), Pure(strVal("c")))
	original := queryFull(t, p, Zero, One)
	twice := queryFull(t, Rev(Rev(p)), Zero, One)
	require.Equal(t, len(original), len(twice))
	for i := range original {
		assert.True(t, original[i].SameOccurrence(twice[i]))
	}
}

// spec §8: Euclidean. parse("bd(3,8)") over (0,1) -> onsets at 0, 3/8, 6/8
// using the canonical Bjorklund distribution (see DESIGN.md for why this
// repo uses the textbook tresillo phase rather than the literal numeric
// example in spec.md §8).
func TestEuclidThreeEight(t *testing.T) {
	binary := Euclid(3, 8, 0)
	sound := Struct(binary, Pure(strVal("bd")))
	haps := queryFull(t, sound, Zero, One)
	require.Len(t, haps, 3)
	assert.True(t, haps[0].Part.Begin.Equal(Zero))
	assert.True(t, haps[1].Part.Begin.Equal(MustTime(3, 8)))
	assert.True(t, haps[2].Part.Begin.Equal(MustTime(6, 8)))
}

func TestDegradeIsDeterministic(t *testing.T) {
	p := Fast(FromInt(8), Pure(strVal("hh")))
	degraded := Degrade(0.5, p)
	first := queryFull(t, degraded, Zero, One)
	second := queryFull(t, degraded, Zero, One)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.True(t, first[i].SameOccurrence(second[i]))
	}
}

func TestDegradeUndegradePartition(t *testing.T) {
	p := Fast(FromInt(8), Pure(strVal("hh")))
	kept := queryFull(t, Degrade(0.5, p), Zero, One)
	dropped := queryFull(t, Undegrade(0.5, p), Zero, One)
	all := queryFull(t, p, Zero, One)
	assert.Equal(t, len(all), len(kept)+len(dropped))
}

func TestLocalityDisjointSpansMatchUnion(t *testing.T) {
	p := Sequence(Pure(strVal("a")), Pure(strVal("b")), Pure(strVal("c")), Pure(strVal("d")))
	whole := queryFull(t, p, Zero, One)
	firstHalf := queryFull(t, p, Zero, Half)
	secondHalf := queryFull(t, p, Half, One)
	assert.Equal(t, len(whole), len(firstHalf)+len(secondHalf))
}

func TestSilenceIsEmpty(t *testing.T) {
	haps := queryFull(t, Silence, Zero, FromInt(4))
	assert.Empty(t, haps)
}

func TestSignalIsContinuous(t *testing.T) {
	p := Signal(func(t Time) Value { return ScalarValue(NumberScalar(t)) })
	haps := queryFull(t, p, Zero, One)
	require.Len(t, haps, 1)
	assert.False(t, haps[0].HasWhole())
	assert.True(t, haps[0].Value.Scalar().Number().Equal(Half))
}

func TestContainmentInvariant(t *testing.T) {
	p := Fast(MustTime(5, 2), Sequence(Pure(strVal("a")), Pure(strVal("b"))))
	span := NewSpan(MustTime(1, 4), MustTime(3, 4))
	state := NewState(span)
	haps := p.Query(state)
	for _, h := range haps {
		assert.True(t, !h.Part.Begin.Less(span.Begin) && !h.Part.End.Greater(span.End))
		if h.HasWhole() {
			inside, ok := h.Whole.Intersect(h.Part)
			assert.True(t, ok)
			assert.True(t, inside.Begin.Equal(h.Part.Begin) && inside.End.Equal(h.Part.End))
		}
	}
}
