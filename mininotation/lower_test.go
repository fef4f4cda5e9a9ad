package mininotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/janus-pattern/pattern"
)

func mustLower(t *testing.T, src string) pattern.Pattern {
	t.Helper()
	n, err := Parse(src)
	require.NoError(t, err)
	p, err := Lower(n)
	require.NoError(t, err)
	return p
}

func queryAll(t *testing.T, p pattern.Pattern, begin, end pattern.Time) []pattern.Hap {
	t.Helper()
	state := pattern.NewState(pattern.NewSpan(begin, end))
	haps := p.Query(state)
	require.True(t, state.Diagnostics.Empty())
	return haps
}

func TestLowerSequenceMatchesSlotCount(t *testing.T) {
	p := mustLower(t, "bd sn hh")
	haps := queryAll(t, p, pattern.Zero, pattern.One)
	require.Len(t, haps, 3)
	assert.Equal(t, "bd", haps[0].Value.Scalar().String())
	assert.Equal(t, "sn", haps[1].Value.Scalar().String())
	assert.Equal(t, "hh", haps[2].Value.Scalar().String())
}

func TestLowerRestProducesNoHap(t *testing.T) {
	p := mustLower(t, "bd ~ sn")
	haps := queryAll(t, p, pattern.Zero, pattern.One)
	require.Len(t, haps, 2)
}

func TestLowerWeightedSequence(t *testing.T) {
	p := mustLower(t, "bd@3 sn")
	haps := queryAll(t, p, pattern.Zero, pattern.One)
	require.Len(t, haps, 2)
	assert.True(t, haps[0].Part.Begin.Equal(pattern.Zero))
	assert.True(t, haps[0].Part.End.Equal(pattern.MustTime(3, 4)))
	assert.True(t, haps[1].Part.Begin.Equal(pattern.MustTime(3, 4)))
	assert.True(t, haps[1].Part.End.Equal(pattern.One))
}

func TestLowerReplicate(t *testing.T) {
	p := mustLower(t, "bd!3 sn")
	haps := queryAll(t, p, pattern.Zero, pattern.One)
	require.Len(t, haps, 4)
	for i := 0; i < 3; i++ {
		assert.Equal(t, "bd", haps[i].Value.Scalar().String())
	}
	assert.Equal(t, "sn", haps[3].Value.Scalar().String())
}

func TestLowerEuclid(t *testing.T) {
	p := mustLower(t, "bd(3,8)")
	haps := queryAll(t, p, pattern.Zero, pattern.One)
	require.Len(t, haps, 3)
	assert.True(t, haps[0].Part.Begin.Equal(pattern.Zero))
	assert.True(t, haps[1].Part.Begin.Equal(pattern.MustTime(3, 8)))
	assert.True(t, haps[2].Part.Begin.Equal(pattern.MustTime(6, 8)))
}

func TestLowerAlternateAcrossCycles(t *testing.T) {
	p := mustLower(t, "<x y z>")
	haps := queryAll(t, p, pattern.Zero, pattern.FromInt(3))
	require.Len(t, haps, 3)
	assert.Equal(t, "x", haps[0].Value.Scalar().String())
	assert.Equal(t, "y", haps[1].Value.Scalar().String())
	assert.Equal(t, "z", haps[2].Value.Scalar().String())
}

func TestLowerNumericAtomIsNumberScalar(t *testing.T) {
	p := mustLower(t, "0 0.25 -1")
	haps := queryAll(t, p, pattern.Zero, pattern.One)
	require.Len(t, haps, 3)
	assert.True(t, haps[0].Value.Scalar().IsNumber())
	assert.True(t, haps[1].Value.Scalar().Number().Equal(pattern.MustTime(1, 4)))
	assert.True(t, haps[2].Value.Scalar().Number().Equal(pattern.FromInt(-1)))
}

func TestLowerTailBuildsControlMap(t *testing.T) {
	p := mustLower(t, "bd:3")
	haps := queryAll(t, p, pattern.Zero, pattern.One)
	require.Len(t, haps, 1)
	assert.False(t, haps[0].Value.IsScalar())
	s, ok := haps[0].Value.Controls().Get("s")
	require.True(t, ok)
	assert.Equal(t, "bd", s.String())
	n, ok := haps[0].Value.Controls().Get("n")
	require.True(t, ok)
	assert.True(t, n.Number().Equal(pattern.FromInt(3)))
}

func TestLowerRangeExpandsToSequence(t *testing.T) {
	p := mustLower(t, "0..3")
	haps := queryAll(t, p, pattern.Zero, pattern.One)
	require.Len(t, haps, 4)
	for i, h := range haps {
		assert.True(t, h.Value.Scalar().Number().Equal(pattern.FromInt(int64(i))))
	}
}

func TestLowerPolymeterStretchesToCommonSteps(t *testing.T) {
	p := mustLower(t, "{bd sn, hh hh hh}")
	haps := queryAll(t, p, pattern.Zero, pattern.One)
	// Common step count is LCM(2, 3) = 6: the bd/sn row is sped up 3x
	// and the hh row 2x, so each row plays 6 haps in the cycle.
	require.Len(t, haps, 12)
}

func TestLowerDegradeIsDeterministic(t *testing.T) {
	p := mustLower(t, "hh*8?0.5")
	first := queryAll(t, p, pattern.Zero, pattern.One)
	second := queryAll(t, p, pattern.Zero, pattern.One)
	require.Equal(t, len(first), len(second))
}
