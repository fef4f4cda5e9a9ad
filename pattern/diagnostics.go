package pattern

// Diagnostics is the per-query channel that query-time failures are
// recorded to instead of being returned as Go errors from Query,
// per spec §4.3.9: "a child query that would fail ... returns an
// empty list and records an error in a per-query diagnostics
// channel; the scheduler surfaces these diagnostics but does not stop
// the overall pattern." It is intentionally not thread-safe; a single
// Diagnostics value is scoped to one top-level Query call.
type Diagnostics struct {
	errs []*QueryError
}

// NewDiagnostics returns an empty diagnostics channel.
func NewDiagnostics() *Diagnostics { return &Diagnostics{} }

// record appends a query error. A nil receiver silently discards,
// so combinators can call d.record(...) without checking d != nil at
// every call site when a caller queried without wanting diagnostics.
func (d *Diagnostics) record(source string, err error) {
	if d == nil || err == nil {
		return
	}
	d.errs = append(d.errs, newQueryError(source, err))
}

// Errors returns every QueryError recorded during the query, in the
// order combinators raised them.
func (d *Diagnostics) Errors() []*QueryError {
	if d == nil {
		return nil
	}
	return d.errs
}

// Empty reports whether nothing was recorded.
func (d *Diagnostics) Empty() bool { return d == nil || len(d.errs) == 0 }
