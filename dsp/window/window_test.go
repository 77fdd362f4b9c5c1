package window

import (
	"math"
	"testing"
)

func TestGenerateSymmetric(t *testing.T) {
	for _, typ := range []Type{TypeHann, TypeHamming, TypeBlackman} {
		w := Generate(typ, 65)
		for i := range w {
			if math.Abs(w[i]-w[len(w)-1-i]) > 1e-12 {
				t.Fatalf("%s not symmetric at %d", typ, i)
			}
		}
		if math.Abs(w[32]-1) > 1e-12 {
			t.Fatalf("%s peak=%g, want 1", typ, w[32])
		}
	}
}

func TestHannEndpoints(t *testing.T) {
	w := Generate(TypeHann, 8)
	if math.Abs(w[0]) > 1e-15 || math.Abs(w[7]) > 1e-15 {
		t.Fatalf("endpoints %g %g", w[0], w[7])
	}
	p := Generate(TypeHann, 8, WithPeriodic())
	if math.Abs(p[4]-1) > 1e-12 || p[7] == 0 {
		t.Fatalf("periodic window %v", p)
	}
}

func TestGenerateEdgeCases(t *testing.T) {
	if Generate(TypeHann, 0) != nil {
		t.Fatal("expected nil for empty window")
	}
	if w := Generate(Type(99), 4); w[1] != 1 {
		t.Fatalf("unknown type should be rectangular: %v", w)
	}
	if Type(99).String() != "Type(99)" {
		t.Fatal(Type(99).String())
	}
}

func TestApply(t *testing.T) {
	buf := []float64{2, 2, 2, 2, 2}
	Apply(TypeHann, buf)
	want := []float64{0, 1, 2, 1, 0}
	for i := range want {
		if math.Abs(buf[i]-want[i]) > 1e-12 {
			t.Fatalf("buf[%d]=%g, want %g", i, buf[i], want[i])
		}
	}
}

func TestCoherentGain(t *testing.T) {
	if got := CoherentGain(Generate(TypeHann, 1024, WithPeriodic())); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("hann gain=%g", got)
	}
	if CoherentGain(nil) != 0 {
		t.Fatal("empty gain")
	}
}
