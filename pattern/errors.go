package pattern

import "fmt"

// TimeError reports a failure in rational-time arithmetic.
type TimeError struct {
	Kind string // "zero-denominator" | "overflow"
	Op   string
}

func (e *TimeError) Error() string {
	return fmt.Sprintf("time error: %s during %s", e.Kind, e.Op)
}

func errZeroDenominator(op string) *TimeError {
	return &TimeError{Kind: "zero-denominator", Op: op}
}

func errOverflow(op string) *TimeError {
	return &TimeError{Kind: "overflow", Op: op}
}

// QueryError reports a failure in a single pattern combinator at query
// time. Query errors never panic the caller: a combinator that fails
// returns an empty slice of Haps and records a QueryError on the
// State's diagnostics sink instead.
type QueryError struct {
	Source string // which combinator raised this
	Err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query error in %s: %v", e.Source, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// newQueryError promotes a TimeError (or any error) to a QueryError,
// per spec §4.3.9 / §7: TimeError is never allowed to escape a query.
func newQueryError(source string, err error) *QueryError {
	return &QueryError{Source: source, Err: err}
}
