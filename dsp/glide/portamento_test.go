package glide

import (
	"math"
	"testing"
)

func TestPortamentoDisabledAtFullAmount(t *testing.T) {
	p := NewPortamento()
	p.SetAmount(100)
	if p.Enabled() {
		t.Fatal("portamento should be disabled at 100%")
	}
	p.NoteOn(440)
	p.NoteOn(880)
	if p.Frequency() != 880 {
		t.Fatalf("Frequency() = %v, want 880 at note-on", p.Frequency())
	}
	if got := p.Step(96000); got != 880 {
		t.Fatalf("Step() = %v, want immediate 880", got)
	}
}

func TestPortamentoFirstNoteJumps(t *testing.T) {
	p := NewPortamento()
	p.SetAmount(10)
	p.NoteOn(220)
	if p.Frequency() != 220 {
		t.Fatalf("Frequency() = %v, want 220", p.Frequency())
	}
	if got := p.Step(96000); got != 220 {
		t.Fatalf("Step() = %v, want 220", got)
	}
}

func TestPortamentoGlidesLinearlyBetweenNotes(t *testing.T) {
	p := NewPortamento()
	p.SetAmount(10)
	p.NoteOn(440)
	p.NoteOn(880)

	coef := PortamentoCoefficient(10)
	wantDelta := (440 - 880) * (1 - coef) * LinearRateScale / 96000
	prev := p.Frequency()
	steps := 0
	for p.Frequency() != 880 {
		f := p.Step(96000)
		if f > 880 {
			t.Fatalf("overshoot: %v", f)
		}
		if f != 880 && math.Abs((prev-f)-wantDelta) > 1e-9 {
			t.Fatalf("step %d: delta %v, want %v", steps, prev-f, wantDelta)
		}
		prev = f
		steps++
		if steps > 1e6 {
			t.Fatal("glide did not finish")
		}
	}
	if steps < 2 {
		t.Fatalf("glide finished in %d steps, expected a ramp", steps)
	}
}

func TestPortamentoRetargetAndReset(t *testing.T) {
	p := NewPortamento()
	p.SetAmount(100)
	p.NoteOn(440)
	p.SetTarget(466)
	if got := p.Step(48000); got != 466 {
		t.Fatalf("Step() = %v, want 466", got)
	}

	p.SetAmount(1)
	p.Reset()
	p.NoteOn(100)
	if p.Frequency() != 100 {
		t.Fatalf("Frequency() = %v, want jump to 100 after Reset", p.Frequency())
	}
}

func TestPortamentoCoefficientClamped(t *testing.T) {
	if got := PortamentoCoefficient(0); got != MaxCoefficient {
		t.Fatalf("PortamentoCoefficient(0) = %v, want clamp", got)
	}
	if got := PortamentoCoefficient(50); math.Abs(got-0.95) > 1e-15 {
		t.Fatalf("PortamentoCoefficient(50) = %v, want 0.95", got)
	}
}

// glideTo steps p until it reaches want and returns the number of steps.
func glideTo(t *testing.T, p *Portamento, want float64, limit int) int {
	t.Helper()
	lo, hi := math.Min(p.Frequency(), want), math.Max(p.Frequency(), want)
	for i := 1; i <= limit; i++ {
		f := p.Step(48000)
		if f < lo || f > hi {
			t.Fatalf("step %d: frequency %v left [%v, %v]", i, f, lo, hi)
		}
		if f == want {
			return i
		}
	}
	t.Fatalf("frequency %v did not reach %v in %d steps", p.Frequency(), want, limit)
	return 0
}

func TestPortamentoWheelUpAndBack(t *testing.T) {
	p := NewPortamento()
	p.SetAmount(50)
	p.NoteOn(440)

	p.SetTarget(466)
	glideTo(t, p, 466, 100000)

	p.SetTarget(440)
	if got := p.Step(48000); got >= 466 || got <= 440 {
		t.Fatalf("first step back = %v, want a glide between 440 and 466", got)
	}
	glideTo(t, p, 440, 100000)
}

func TestPortamentoRetargetMidGlide(t *testing.T) {
	tests := []struct {
		name    string
		retune  float64
		settled float64
	}{
		{name: "reverse", retune: 440, settled: 440},
		{name: "further", retune: 1000, settled: 1000},
		{name: "short of target", retune: 600, settled: 600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPortamento()
			p.SetAmount(50)
			p.NoteOn(440)
			p.NoteOn(880)
			for i := 0; i < 5; i++ {
				p.Step(48000)
			}
			if f := p.Frequency(); f <= 440 || f >= 880 {
				t.Fatalf("frequency %v, want a glide in flight", f)
			}
			p.SetTarget(tt.retune)
			glideTo(t, p, tt.settled, 100000)
		})
	}
}

func TestPortamentoAmountChangedMidGlide(t *testing.T) {
	for _, amount := range []float64{1, 10, 90, 100} {
		p := NewPortamento()
		p.SetAmount(50)
		p.NoteOn(880)
		p.NoteOn(440)
		for i := 0; i < 5; i++ {
			p.Step(48000)
		}
		p.SetAmount(amount)
		glideTo(t, p, 440, 1000000)
	}
}

func TestPortamentoRepeatedTargetKeepsRate(t *testing.T) {
	p := NewPortamento()
	p.SetAmount(50)
	p.NoteOn(440)
	p.NoteOn(880)
	p.Step(48000)
	first := p.Frequency() - 440

	p.SetTarget(880)
	before := p.Frequency()
	if got := p.Step(48000) - before; math.Abs(got-first) > 1e-9 {
		t.Fatalf("step after repeated target = %v, want %v", got, first)
	}
}
