package interp

import "testing"

func TestLinear2(t *testing.T) {
	for _, tc := range []struct {
		t, x0, x1, want float64
	}{
		{t: 0, x0: 2, x1: 4, want: 2},
		{t: 0.25, x0: 2, x1: 4, want: 2.5},
		{t: 1, x0: 2, x1: 4, want: 4},
		{t: 0.5, x0: 4, x1: 1, want: 2.5},
	} {
		if got := Linear2(tc.t, tc.x0, tc.x1); got != tc.want {
			t.Fatalf("Linear2(%v, %v, %v) = %v, want %v", tc.t, tc.x0, tc.x1, got, tc.want)
		}
	}
}

func TestHermite4IdentityOnLinearRamp(t *testing.T) {
	xm1, x0, x1, x2 := -1.0, 0.0, 1.0, 2.0
	for _, tc := range []struct {
		t float64
		w float64
	}{
		{t: 0.0, w: 0.0},
		{t: 0.25, w: 0.25},
		{t: 0.5, w: 0.5},
		{t: 1.0, w: 1.0},
	} {
		got := Hermite4(tc.t, xm1, x0, x1, x2)
		if diff := got - tc.w; diff < -1e-12 || diff > 1e-12 {
			t.Fatalf("t=%v: got %v want %v", tc.t, got, tc.w)
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{Linear, Hermite} {
		got, err := ParseMode(m.String())
		if err != nil {
			t.Fatal(err)
		}
		if got != m {
			t.Fatalf("ParseMode(%q) = %v, want %v", m.String(), got, m)
		}
	}
	if _, err := ParseMode("sinc"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if s := Mode(7).String(); s != "Mode(7)" {
		t.Fatalf("String() = %q", s)
	}
}
