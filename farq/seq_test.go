package farq

import "testing"

func TestValueLessThanWraparound(t *testing.T) {
	cases := []struct {
		a, b Value
		want bool
	}{
		{1, 2, true},
		{2, 1, false},
		{1, 1, false},
		{0xFFFFFFFF, 0, true},  // wrapped: 0xFFFFFFFF precedes 0
		{0, 0xFFFFFFFF, false},
	}
	for _, c := range cases {
		if got := c.a.LessThan(c.b); got != c.want {
			t.Errorf("Value(%d).LessThan(%d) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestValueAddWraps(t *testing.T) {
	var v Value = 0xFFFFFFFE
	v = v.Add(3)
	if v != 1 {
		t.Errorf("got %d, want 1", v)
	}
}

func TestInWindow(t *testing.T) {
	lo := Value(100)
	if !inWindow(100, lo, 10) {
		t.Error("lower bound should be in window")
	}
	if inWindow(110, lo, 10) {
		t.Error("upper bound is exclusive")
	}
	if !inWindow(109, lo, 10) {
		t.Error("109 should be in [100,110)")
	}
	if inWindow(99, lo, 10) {
		t.Error("99 precedes the window")
	}
	// wraparound: lo near the top of the space.
	lo = Value(0xFFFFFFFE)
	if !inWindow(0xFFFFFFFE, lo, 4) || !inWindow(1, lo, 4) {
		t.Error("window should wrap across 0")
	}
	if inWindow(2, lo, 4) {
		t.Error("2 should be outside a window of size 4 starting at 0xFFFFFFFE")
	}
}
