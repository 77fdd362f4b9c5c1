package dither

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestNewQuantizerValidation(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"bit depth too small", []Option{WithBitDepth(4)}},
		{"bit depth too large", []Option{WithBitDepth(48)}},
		{"bad dither type", []Option{WithDitherType(DitherType(99))}},
		{"negative amplitude", []Option{WithDitherAmplitude(-1)}},
		{"NaN amplitude", []Option{WithDitherAmplitude(math.NaN())}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewQuantizer(tt.opts...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNewQuantizerDefaults(t *testing.T) {
	q, err := NewQuantizer(nil)
	if err != nil {
		t.Fatal(err)
	}
	if q.BitDepth() != 16 {
		t.Errorf("BitDepth() = %d, want 16", q.BitDepth())
	}
	if q.DitherType() != DitherTriangular {
		t.Errorf("DitherType() = %v, want triangular", q.DitherType())
	}
	if q.Scale() != 32768 {
		t.Errorf("Scale() = %v", q.Scale())
	}
}

func TestQuantizeWithoutDither(t *testing.T) {
	q, err := NewQuantizer(WithDitherType(DitherNone))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{0.5, 16384},
		{-0.5, -16384},
		{-1, -32768},
		{1, 32767},
		{2, 32767},
		{-3, -32768},
		{math.NaN(), 0},
		{1.0 / 32768, 1},
	}
	for _, tt := range tests {
		if got := q.Quantize(tt.in); got != tt.want {
			t.Errorf("Quantize(%g) = %d, want %d", tt.in, got, tt.want)
		}
	}
	if got := q.ToFloat(16384); got != 0.5 {
		t.Errorf("ToFloat(16384) = %g", got)
	}
}

func TestTriangularDitherIsBounded(t *testing.T) {
	q, err := NewQuantizer(
		WithBitDepth(8),
		WithRNG(rand.New(rand.NewPCG(1, 2))),
	)
	if err != nil {
		t.Fatal(err)
	}
	seen := map[int]bool{}
	for i := 0; i < 10000; i++ {
		v := q.Quantize(0.25)
		if v < 31 || v > 33 {
			t.Fatalf("Quantize(0.25) = %d, outside one step of 32", v)
		}
		seen[v] = true
	}
	if len(seen) < 2 {
		t.Fatal("dither produced no variation")
	}
}

func TestQuantizeToDeterministic(t *testing.T) {
	src := []float64{0.1, -0.2, 0.3, -0.4}
	run := func() []int {
		q, err := NewQuantizer(WithBitDepth(24), WithRNG(rand.New(rand.NewPCG(7, 7))))
		if err != nil {
			t.Fatal(err)
		}
		dst := make([]int, len(src))
		if n := q.QuantizeTo(dst, src); n != len(src) {
			t.Fatalf("n=%d", n)
		}
		return dst
	}
	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("seeded runs differ at %d: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestParseDitherType(t *testing.T) {
	for dt := DitherNone; dt < ditherTypeCount; dt++ {
		got, err := ParseDitherType(dt.String())
		if err != nil || got != dt {
			t.Fatalf("ParseDitherType(%q) = %v, %v", dt.String(), got, err)
		}
	}
	if _, err := ParseDitherType("gauss"); err == nil {
		t.Fatal("expected error")
	}
	if DitherType(9).String() != "DitherType(9)" {
		t.Fatal(DitherType(9).String())
	}
}
