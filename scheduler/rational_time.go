package scheduler

import (
	"math"

	"github.com/wbrown/janus-pattern/pattern"
)

// microbeat is the fixed denominator used to rationalize a continuous
// wall-clock-derived beat position into the exact pattern.Time the
// query engine requires. Per spec §9's fraction-precision design note
// ("checked 64-bit fractions ... most musical patterns never exceed
// denom < 2^20"), a microbeat resolution of one millionth of a cycle
// is comfortably finer than audio-rate jitter can ever distinguish.
const microbeat = 1_000_000

// rationalizeBeat converts a float64 cycle position (the result of
// timeToBeats, which is necessarily continuous since it derives from
// wall-clock seconds) into the nearest pattern.Time at microbeat
// resolution.
func rationalizeBeat(b float64) pattern.Time {
	n := int64(math.Round(b * microbeat))
	return pattern.MustTime(n, microbeat)
}

// floatBeat converts a pattern.Time back to a float64 cycle position
// for feeding into beatsToTime.
func floatBeat(t pattern.Time) float64 {
	return float64(t.Num()) / float64(t.Den())
}
