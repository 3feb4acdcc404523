package ms1

import "testing"

func TestClamp(t *testing.T) {
	cases := []struct{ v, min, max, want float32 }{
		{0, 1, 10, 1},
		{5, 1, 10, 5},
		{20, 1, 10, 10},
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.min, c.max); got != c.want {
			t.Errorf("Clamp(%v,%v,%v) = %v, want %v", c.v, c.min, c.max, got, c.want)
		}
	}
}

func TestSign(t *testing.T) {
	if Sign(0) != 0 || Sign(5) != 1 || Sign(-5) != -1 {
		t.Fatal("unexpected Sign result")
	}
}

func TestInterp(t *testing.T) {
	if got := Interp(0, 10, 0.5); got != 5 {
		t.Errorf("Interp = %v, want 5", got)
	}
}

func TestSmoothStep(t *testing.T) {
	if got := SmoothStep(0, 1, 0); got != 0 {
		t.Errorf("SmoothStep at edge0 = %v, want 0", got)
	}
	if got := SmoothStep(0, 1, 1); got != 1 {
		t.Errorf("SmoothStep at edge1 = %v, want 1", got)
	}
}

func TestEqualWithinAbs(t *testing.T) {
	if !EqualWithinAbs(1.0, 1.0000001, 1e-5) {
		t.Error("expected values within tolerance to compare equal")
	}
	if EqualWithinAbs(1.0, 2.0, 1e-5) {
		t.Error("expected values outside tolerance to compare unequal")
	}
}
