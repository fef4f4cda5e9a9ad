package pattern

// State is the argument to a Pattern's query function: the span being
// asked about plus whatever ambient context the combinators need to
// stay deterministic (spec §3 Pattern: "query : (State) -> [Hap],
// where State carries the query TimeSpan and an optional control
// map").
type State struct {
	// Span is the TimeSpan being queried.
	Span TimeSpan

	// Controls carries externally-bound control values (e.g. from a
	// host embedding the engine) that patterns may read but that are
	// not part of the pattern's own structure.
	Controls ControlMap

	// Seed roots the deterministic RNG used by degrade, choose,
	// wchoose and randcat. Per spec design notes, RNG
	// combinators seed from "(cycle_index, path_in_AST, external_seed)";
	// Seed supplies the external_seed component and defaults to 0.
	Seed uint64

	// path accumulates a structural path through the pattern tree so
	// that two structurally-identical-but-distinct degrade/choose
	// nodes never alias each other's randomness. It is opaque outside
	// this package; combinators extend it via withPath.
	path uint64

	// Diagnostics receives QueryError records from failing
	// sub-queries; may be nil, in which case errors are silently
	// dropped (NewState attaches a fresh one).
	Diagnostics *Diagnostics
}

// NewState constructs a State for querying span with fresh
// diagnostics attached.
func NewState(span TimeSpan) State {
	return State{Span: span, Diagnostics: NewDiagnostics()}
}

// WithSpan returns a copy of s with a different query span, keeping
// all other fields (diagnostics, seed, path) so a sub-query made by a
// combinator still shares the same diagnostics channel and RNG
// lineage as its parent query.
func (s State) WithSpan(span TimeSpan) State {
	out := s
	out.Span = span
	return out
}

// withPath extends the structural path with a small integer tag,
// returning a new State. Used by combinators that introduce
// RNG-bearing children (sequence slots, stack branches) so each
// child's degrade/choose draws from an independent stream.
func (s State) withPath(tag uint64) State {
	out := s
	out.path = mixPath(s.path, tag)
	return out
}

// seedFor derives the seed a RNG-bearing combinator at this point in
// the tree should use for a given cycle index, combining the
// external seed, the structural path, and the cycle per spec's design
// note on RNG seeding.
func (s State) seedFor(cycle int64) uint64 {
	return splitmix64Mix(s.Seed ^ s.path ^ uint64(cycle))
}
