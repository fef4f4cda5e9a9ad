package pattern

import "testing"

func TestTimeReduction(t *testing.T) {
	tm := MustTime(2, 4)
	if tm.Num() != 1 || tm.Den() != 2 {
		t.Errorf("expected 1/2, got %d/%d", tm.Num(), tm.Den())
	}
}

func TestTimeNegativeDenominatorNormalized(t *testing.T) {
	tm := MustTime(1, -2)
	if tm.Num() != -1 || tm.Den() != 2 {
		t.Errorf("expected -1/2, got %d/%d", tm.Num(), tm.Den())
	}
}

func TestTimeZeroDenominatorIsTimeError(t *testing.T) {
	_, err := NewTime(1, 0)
	if err == nil {
		t.Fatal("expected error for zero denominator")
	}
	if _, ok := err.(*TimeError); !ok {
		t.Fatalf("expected *TimeError, got %T", err)
	}
}

func TestTimeArithmetic(t *testing.T) {
	a := MustTime(1, 3)
	b := MustTime(1, 6)
	if sum := a.MustAdd(b); !sum.Equal(MustTime(1, 2)) {
		t.Errorf("1/3+1/6 = %v, want 1/2", sum)
	}
	if diff := a.MustSub(b); !diff.Equal(MustTime(1, 6)) {
		t.Errorf("1/3-1/6 = %v, want 1/6", diff)
	}
	if prod := a.MustMul(MustTime(3, 1)); !prod.Equal(One) {
		t.Errorf("1/3*3 = %v, want 1", prod)
	}
	if quot := a.MustDiv(MustTime(1, 3)); !quot.Equal(One) {
		t.Errorf("(1/3)/(1/3) = %v, want 1", quot)
	}
}

func TestTimeDivByZero(t *testing.T) {
	_, err := One.Div(Zero)
	if err == nil {
		t.Fatal("expected zero-denominator error dividing by zero time")
	}
}

func TestTimeFloorCeil(t *testing.T) {
	cases := []struct {
		in         Time
		floor, ceil Time
	}{
		{MustTime(3, 2), One, FromInt(2)},
		{FromInt(2), FromInt(2), FromInt(2)},
		{MustTime(-1, 2), FromInt(-1), Zero},
	}
	for _, c := range cases {
		if f := c.in.Floor(); !f.Equal(c.floor) {
			t.Errorf("Floor(%v) = %v, want %v", c.in, f, c.floor)
		}
		if cl := c.in.Ceil(); !cl.Equal(c.ceil) {
			t.Errorf("Ceil(%v) = %v, want %v", c.in, cl, c.ceil)
		}
	}
}

func TestCyclePos(t *testing.T) {
	tm := MustTime(7, 2) // 3.5
	if pos := tm.CyclePos(); !pos.Equal(Half) {
		t.Errorf("CyclePos(7/2) = %v, want 1/2", pos)
	}
}

func TestCompare(t *testing.T) {
	if !MustTime(1, 3).Less(MustTime(1, 2)) {
		t.Error("1/3 should be less than 1/2")
	}
	if !MustTime(1, 2).Equal(MustTime(2, 4)) {
		t.Error("1/2 should equal 2/4 after reduction")
	}
}

func TestLCM(t *testing.T) {
	if got := LCM(4, 6); got != 12 {
		t.Errorf("LCM(4,6) = %d, want 12", got)
	}
	if got := LCM(3, 3); got != 3 {
		t.Errorf("LCM(3,3) = %d, want 3", got)
	}
}
