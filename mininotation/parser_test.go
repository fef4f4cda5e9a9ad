package mininotation

import "testing"

func TestParseAtomSequence(t *testing.T) {
	n, err := Parse("bd sn hh")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Kind != KindSequence || len(n.Children) != 3 {
		t.Fatalf("expected 3-element sequence, got %#v", n)
	}
	for i, want := range []string{"bd", "sn", "hh"} {
		if n.Children[i].Kind != KindAtom || n.Children[i].Token != want {
			t.Errorf("child %d = %#v, want atom %q", i, n.Children[i], want)
		}
	}
}

func TestParseRest(t *testing.T) {
	n, err := Parse("bd ~ sn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Children[1].Kind != KindRest {
		t.Errorf("expected rest in middle slot, got %#v", n.Children[1])
	}
}

func TestParseNestedGroup(t *testing.T) {
	n, err := Parse("a [b c]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(n.Children) != 2 {
		t.Fatalf("expected 2 top-level elements, got %d", len(n.Children))
	}
	inner := n.Children[1]
	if inner.Kind != KindSequence || len(inner.Children) != 2 {
		t.Fatalf("expected nested 2-element sequence, got %#v", inner)
	}
}

func TestParseParallel(t *testing.T) {
	n, err := Parse("[bd, sn hh]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Kind != KindParallel || len(n.Children) != 2 {
		t.Fatalf("expected 2-clause parallel group, got %#v", n)
	}
}

func TestParseRandomChoose(t *testing.T) {
	n, err := Parse("[bd|sn|hh]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Kind != KindRandomChoose || len(n.Children) != 3 {
		t.Fatalf("expected 3-way random choice, got %#v", n)
	}
}

func TestParseMixedSeparatorsRejected(t *testing.T) {
	_, err := Parse("[bd,sn|hh]")
	if err == nil {
		t.Fatal("expected an error mixing ',' and '|' in one group")
	}
}

func TestParseAlternate(t *testing.T) {
	n, err := Parse("<x y z>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Kind != KindAlternate || len(n.Children) != 3 {
		t.Fatalf("expected 3-slot alternate, got %#v", n)
	}
}

func TestParsePolymeterWithSteps(t *testing.T) {
	n, err := Parse("{bd sn, hh hh hh}%4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Kind != KindPolymeter || len(n.Children) != 2 {
		t.Fatalf("expected 2-row polymeter, got %#v", n)
	}
	if n.StepCount == nil || *n.StepCount != 4 {
		t.Fatalf("expected explicit step count 4, got %v", n.StepCount)
	}
}

func TestParsePostOperators(t *testing.T) {
	n, err := Parse("bd*2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(n.Ops) != 1 || n.Ops[0].Kind != OpRepeat || n.Ops[0].Args[0] != "2" {
		t.Fatalf("expected a single *2 op, got %#v", n.Ops)
	}
}

func TestParseEuclidOp(t *testing.T) {
	n, err := Parse("bd(3,8,0)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(n.Ops) != 1 || n.Ops[0].Kind != OpEuclid {
		t.Fatalf("expected euclid op, got %#v", n.Ops)
	}
	want := []string{"3", "8", "0"}
	for i, w := range want {
		if n.Ops[0].Args[i] != w {
			t.Errorf("euclid arg %d = %q, want %q", i, n.Ops[0].Args[i], w)
		}
	}
}

func TestParseRange(t *testing.T) {
	n, err := Parse("0..3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Kind != KindRange || n.Token != "0" || n.Children[0].Token != "3" {
		t.Fatalf("expected range 0..3, got %#v", n)
	}
}

func TestParseTailAndReplicateAndDegrade(t *testing.T) {
	n, err := Parse("bd:3!2?0.3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(n.Ops) != 3 {
		t.Fatalf("expected 3 chained ops, got %#v", n.Ops)
	}
	if n.Ops[0].Kind != OpTail || n.Ops[1].Kind != OpReplicate || n.Ops[2].Kind != OpDegrade {
		t.Fatalf("ops in wrong order: %#v", n.Ops)
	}
}

func TestParseUnexpectedCharacterReportsLocation(t *testing.T) {
	_, err := Parse("bd & sn")
	if err == nil {
		t.Fatal("expected a parse error for '&'")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Loc.Column != 4 {
		t.Errorf("expected error column 4, got %d", pe.Loc.Column)
	}
}

func TestRenderRoundTripsStructurally(t *testing.T) {
	cases := []string{
		"bd sn hh",
		"a [b c]",
		"<x y z>",
		"bd*2 sn/3",
		"bd(3,8,0)",
		"bd:3",
	}
	for _, src := range cases {
		n, err := Parse(src)
		if err != nil {
			t.Fatalf("parse %q: %v", src, err)
		}
		rendered := Render(n)
		n2, err := Parse(rendered)
		if err != nil {
			t.Fatalf("re-parse rendering %q of %q: %v", rendered, src, err)
		}
		if !sameShape(*n, *n2) {
			t.Errorf("round trip mismatch for %q: %#v vs %#v", src, n, n2)
		}
	}
}

func sameShape(a, b Node) bool {
	if a.Kind != b.Kind || a.Token != b.Token || len(a.Children) != len(b.Children) || len(a.Ops) != len(b.Ops) {
		return false
	}
	for i := range a.Ops {
		if a.Ops[i].Kind != b.Ops[i].Kind {
			return false
		}
	}
	for i := range a.Children {
		if !sameShape(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
