package mininotation

import (
	"fmt"
	"strings"
)

// Render writes a canonical textual form of an AST back out, spec §8's
// round-trip testable property: Render(Parse(s)) need not equal s
// byte-for-byte, but re-parsing it must produce an AST with identical
// structure (whitespace and redundant nesting are not preserved).
func Render(n *Node) string {
	var b strings.Builder
	renderJoined(&b, []Node{*n}, "")
	return b.String()
}

func renderElement(b *strings.Builder, n Node) {
	renderPrimary(b, n)
	for _, op := range n.Ops {
		renderOp(b, op)
	}
}

func renderPrimary(b *strings.Builder, n Node) {
	switch n.Kind {
	case KindAtom:
		b.WriteString(n.Token)
	case KindRest:
		b.WriteByte('~')
	case KindSequence:
		renderJoined(b, n.Children, " ")
	case KindParallel:
		b.WriteByte('[')
		renderJoined(b, n.Children, ", ")
		b.WriteByte(']')
	case KindAlternate:
		b.WriteByte('<')
		renderJoined(b, n.Children, " ")
		b.WriteByte('>')
	case KindRandomChoose:
		b.WriteByte('[')
		renderJoined(b, n.Children, "|")
		b.WriteByte(']')
	case KindPolymeter:
		b.WriteByte('{')
		renderJoined(b, n.Children, ", ")
		b.WriteByte('}')
		if n.StepCount != nil {
			fmt.Fprintf(b, "%%%d", *n.StepCount)
		}
	case KindRange:
		b.WriteString(n.Token)
		b.WriteString("..")
		if len(n.Children) == 1 {
			renderPrimary(b, n.Children[0])
		}
	}
}

// renderJoined writes children separated by sep. A sequence child is
// bracketed when it sits inside a space-separated list or carries
// post-operators, since otherwise re-parsing would merge it into its
// surroundings or attach the operators to its last element.
func renderJoined(b *strings.Builder, children []Node, sep string) {
	for i, c := range children {
		if i > 0 {
			b.WriteString(sep)
		}
		if c.Kind == KindSequence && (sep == " " || len(c.Ops) > 0) {
			b.WriteByte('[')
			renderPrimary(b, c)
			b.WriteByte(']')
			for _, op := range c.Ops {
				renderOp(b, op)
			}
			continue
		}
		renderElement(b, c)
	}
}

func renderOp(b *strings.Builder, op Op) {
	switch op.Kind {
	case OpRepeat:
		fmt.Fprintf(b, "*%s", op.Args[0])
	case OpStretch:
		fmt.Fprintf(b, "/%s", op.Args[0])
	case OpWeight:
		fmt.Fprintf(b, "@%s", op.Args[0])
	case OpReplicate:
		b.WriteByte('!')
		if len(op.Args) == 1 {
			b.WriteString(op.Args[0])
		}
	case OpDegrade:
		b.WriteByte('?')
		if len(op.Args) == 1 {
			b.WriteString(op.Args[0])
		}
	case OpEuclid:
		b.WriteByte('(')
		b.WriteString(strings.Join(op.Args, ","))
		b.WriteByte(')')
	case OpTail:
		fmt.Fprintf(b, ":%s", op.Args[0])
	}
}
