package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	if math.Abs(s[12]-1) > 1e-12 {
		t.Fatalf("s[12] = %v, want 1 at a quarter period", s[12])
	}
}

func TestRamp(t *testing.T) {
	got := Ramp(4, 1, 0.5)
	want := []float64{1, 1.5, 2, 2.5}
	RequireSliceNearlyEqual(t, got, want, 0)
	if len(Ramp(0, 1, 1)) != 0 {
		t.Fatal("empty ramp")
	}
}

func TestOnes(t *testing.T) {
	for i, v := range Ones(5) {
		if v != 1 {
			t.Fatalf("Ones[%d] = %v", i, v)
		}
	}
}
