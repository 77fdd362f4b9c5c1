package glide

import (
	"math"
	"testing"

	"github.com/cwbudde/icebox/dsp/core"
)

func TestFormantCoefficient(t *testing.T) {
	if got := FormantCoefficient(1); math.Abs(got-0.9999) > 1e-15 {
		t.Fatalf("FormantCoefficient(1) = %v, want 0.9999", got)
	}
	if got := FormantCoefficient(0); got != MaxCoefficient {
		t.Fatalf("FormantCoefficient(0) = %v, want clamp", got)
	}
	if got := FormantCoefficient(20000); got != 0 {
		t.Fatalf("FormantCoefficient(20000) = %v, want 0", got)
	}
}

func TestFormantOffsetSetsBase(t *testing.T) {
	f := NewFormant()
	f.SetOffset(12)
	if !core.NearlyEqual(f.Base(), 2, 1e-12) {
		t.Fatalf("Base() = %v, want 2", f.Base())
	}
	if !core.NearlyEqual(f.Ratio(), 2, 1e-12) {
		t.Fatalf("Ratio() = %v, want 2 (rescaled from rest)", f.Ratio())
	}
}

func TestFormantEnvelopeGlidesFromBaseToDepth(t *testing.T) {
	f := NewFormant()
	f.SetEnvelope(-12, 2, false)
	if !core.NearlyEqual(f.Target(), 0.5, 1e-12) {
		t.Fatalf("Target() = %v, want 0.5", f.Target())
	}

	f.Trigger(440)
	if f.Ratio() != 1 {
		t.Fatalf("Ratio() after trigger = %v, want 1", f.Ratio())
	}
	prev := f.Ratio()
	for i := 0; i < 1000; i++ {
		r := f.Step(96000)
		if r >= prev || r < 0.5 {
			t.Fatalf("step %d: ratio %v (prev %v)", i, r, prev)
		}
		prev = r
	}
}

func TestFormantOffsetChangeKeepsEnvelopeProgress(t *testing.T) {
	f := NewFormant()
	f.SetEnvelope(12, 2, true)
	f.Trigger(440)
	for f.Glide().Progress() < 0.5 {
		f.Step(96000)
	}
	before := f.Glide().Progress()

	f.SetOffset(5)
	after := f.Glide().Progress()
	if math.Abs(after-before) > 1e-9 {
		t.Fatalf("progress %v -> %v", before, after)
	}
	if !core.NearlyEqual(f.Target()/f.Base(), 2, 1e-12) {
		t.Fatalf("target/base = %v, want 2", f.Target()/f.Base())
	}
}

func TestFormantTargetFloor(t *testing.T) {
	f := NewFormant()
	f.SetFrequency(core.NoteToHz(0))
	f.SetEnvelope(-24, 1, false)
	if f.Target() != 1 {
		t.Fatalf("Target() = %v, want floor 1 at note 0", f.Target())
	}

	f.SetFrequency(core.NoteToHz(24))
	if !core.NearlyEqual(f.Target(), 0.25, 1e-12) {
		t.Fatalf("Target() = %v, want 0.25 once the floor is lower", f.Target())
	}
}

func TestFormantLawSelection(t *testing.T) {
	f := NewFormant()
	f.SetEnvelope(3, 1, true)
	if f.Glide().Law() != Linear {
		t.Fatalf("law = %v, want linear", f.Glide().Law())
	}
	f.SetEnvelope(3, 1, false)
	if f.Glide().Law() != Exponential {
		t.Fatalf("law = %v, want exponential", f.Glide().Law())
	}
}
