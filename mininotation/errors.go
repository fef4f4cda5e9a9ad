package mininotation

import "fmt"

// Location identifies a point in the original notation source, used to
// tag parse errors and AST nodes. Lower does not carry it into
// pattern.Context, so the Haps of a lowered pattern hold no source
// location.
type Location struct {
	Line   int
	Column int
	Offset int
	Length int
}

// ParseError reports a lexical or syntactic failure in mini-notation
// source, spec §4.4.3 / §7.
type ParseError struct {
	Loc     Location
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("mininotation: %s at %d:%d", e.Message, e.Loc.Line, e.Loc.Column)
}

func errAt(loc Location, format string, args ...interface{}) *ParseError {
	return &ParseError{Loc: loc, Message: fmt.Sprintf(format, args...)}
}
