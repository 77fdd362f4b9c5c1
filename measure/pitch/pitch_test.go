package pitch

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/icebox/internal/testutil"
)

func TestDetectSine(t *testing.T) {
	tests := []struct {
		freq float64
		sr   float64
		n    int
	}{
		{440, 96000, 16384},
		{440, 44100, 8192},
		{1000, 48000, 4096},
		{110, 96000, 32768},
	}
	for _, tt := range tests {
		sig := testutil.DeterministicSine(tt.freq, tt.sr, 0.5, tt.n)
		got, err := Detect(sig, tt.sr)
		if err != nil {
			t.Fatalf("Detect(%g Hz) error = %v", tt.freq, err)
		}
		// Hann + parabolic refinement is accurate to a small fraction of a bin.
		tol := 0.1 * tt.sr / float64(tt.n)
		if math.Abs(got-tt.freq) > tol {
			t.Errorf("Detect(%g Hz @ %g)=%g, tol %g", tt.freq, tt.sr, got, tol)
		}
	}
}

func TestAnalyzeZeroPads(t *testing.T) {
	sig := testutil.DeterministicSine(440, 48000, 1, 3000)
	r, err := Analyze(sig, 48000)
	if err != nil {
		t.Fatal(err)
	}
	if r.FFTSize != 4096 {
		t.Fatalf("FFTSize=%d", r.FFTSize)
	}
	if math.Abs(r.Frequency-440) > 5 {
		t.Fatalf("Frequency=%g", r.Frequency)
	}
}

func TestDetectErrors(t *testing.T) {
	if _, err := Detect(make([]float64, 10), 48000); err == nil {
		t.Fatal("expected error for short signal")
	}
	if _, err := Detect(make([]float64, 1024), 0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if _, err := Detect(make([]float64, 1024), 48000); !errors.Is(err, ErrSilent) {
		t.Fatalf("err=%v, want ErrSilent", err)
	}
}

func TestParabolicOffset(t *testing.T) {
	if d := parabolicOffset(1, 2, 1); d != 0 {
		t.Fatalf("symmetric offset=%g", d)
	}
	if d := parabolicOffset(1, 2, 1.5); d <= 0 {
		t.Fatalf("offset=%g, want > 0", d)
	}
	if d := parabolicOffset(1.5, 2, 1); d >= 0 {
		t.Fatalf("offset=%g, want < 0", d)
	}
}

func TestDetectIgnoresOffset(t *testing.T) {
	sig := testutil.DeterministicSine(300, 48000, 0.1, 8192)
	for i := range sig {
		sig[i] += 0.9
	}
	got, err := Detect(sig, 48000)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-300) > 1 {
		t.Fatalf("Detect=%g, want 300", got)
	}
}
