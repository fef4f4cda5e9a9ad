package pattern

import "github.com/cespare/xxhash/v2"

// splitmix64Mix is a splitmix64-style finalizer: it takes an
// arbitrary 64-bit seed (already mixed with cycle/path/external seed
// by the caller) and returns a well-distributed 64-bit value. Per the
// spec's design note ("Use a seeded hash (e.g., splitmix64) keyed by
// (cycle_index, path_in_AST, external_seed)"), we get the avalanche
// behavior of splitmix64's finalizer but feed it through xxhash
// rather than hand-rolling the magic constants, since xxhash is
// already in the dependency graph (the teacher hashes Keyword/Identity
// with it via badger's transitive closure) and produces an equally
// well-mixed 64-bit output for a small fixed-size input.
func splitmix64Mix(seed uint64) uint64 {
	var buf [8]byte
	putUint64(buf[:], seed)
	return xxhash.Sum64(buf[:])
}

func putUint64(b []byte, v uint64) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
	b[4] = byte(v >> 32)
	b[5] = byte(v >> 40)
	b[6] = byte(v >> 48)
	b[7] = byte(v >> 56)
}

// mixPath folds a small structural tag into a running path hash,
// giving every distinct position in a pattern tree an independent
// RNG lineage even when two subtrees are otherwise identical.
func mixPath(path uint64, tag uint64) uint64 {
	return splitmix64Mix(path ^ (tag * 0x9E3779B97F4A7C15))
}

// randFloat derives a deterministic float64 in [0, 1) from a seed,
// used by degrade's per-Hap coin flip and wchoose's weighted pick.
func randFloat(seed uint64) float64 {
	mixed := splitmix64Mix(seed)
	// Use the top 53 bits for a uniform double in [0,1), the standard
	// technique for turning a 64-bit hash into a float64.
	return float64(mixed>>11) / (1 << 53)
}

// randIndex derives a deterministic index in [0, n) from a seed.
func randIndex(seed uint64, n int) int {
	if n <= 0 {
		return 0
	}
	return int(splitmix64Mix(seed) % uint64(n))
}
