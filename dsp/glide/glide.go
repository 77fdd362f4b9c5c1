package glide

import (
	"fmt"
	"math"

	"github.com/cwbudde/icebox/dsp/core"
)

// Law selects the update rule of a Glide.
type Law int

const (
	// Exponential approaches the target by a constant fraction per sample.
	Exponential Law = iota
	// Linear approaches the target by a constant amount per sample.
	Linear
)

// String implements fmt.Stringer.
func (l Law) String() string {
	switch l {
	case Exponential:
		return "exponential"
	case Linear:
		return "linear"
	default:
		return fmt.Sprintf("Law(%d)", int(l))
	}
}

const (
	// MaxCoefficient is the slowest admissible rate coefficient. A coefficient
	// of 1 would freeze the glide.
	MaxCoefficient = 1 - 1e-6

	// LinearRateScale converts (1-coef) into a per-second fraction of the
	// base-to-target distance for the linear law.
	LinearRateScale = 19200.0
)

// ClampCoefficient limits a rate coefficient to [0, MaxCoefficient].
func ClampCoefficient(coef float64) float64 {
	if math.IsNaN(coef) {
		return MaxCoefficient
	}
	return core.Clamp(coef, 0, MaxCoefficient)
}

// ExpStep returns the next value of an exponential glide.
func ExpStep(current, target, coef float64) float64 {
	return target + (current-target)*coef
}

// LinearStep returns the next value of a linear glide that started at base.
// The step size is proportional to |base-target| and never carries the
// value past target.
func LinearStep(base, current, target, coef, sampleRate float64) float64 {
	delta := (base - target) * (1 - coef) * LinearRateScale / sampleRate
	next := current - delta
	if delta >= 0 {
		// decreasing
		if next < target {
			return target
		}
		return next
	}
	if next > target {
		return target
	}
	return next
}

// Glide is a value moving toward a target under a Law.
type Glide struct {
	current float64
	target  float64
	base    float64
	coef    float64
	law     Law
}

// New returns a glide resting at value.
func New(value, coef float64, law Law) Glide {
	return Glide{
		current: value,
		target:  value,
		base:    value,
		coef:    ClampCoefficient(coef),
		law:     law,
	}
}

// Current returns the present value.
func (g *Glide) Current() float64 { return g.current }

// Target returns the value being approached.
func (g *Glide) Target() float64 { return g.target }

// Base returns the value the current glide started from.
func (g *Glide) Base() float64 { return g.base }

// Coefficient returns the rate coefficient.
func (g *Glide) Coefficient() float64 { return g.coef }

// Law returns the update rule.
func (g *Glide) Law() Law { return g.law }

// SetLaw selects the update rule.
func (g *Glide) SetLaw(law Law) { g.law = law }

// SetCoefficient sets the rate coefficient, clamped to [0, MaxCoefficient].
func (g *Glide) SetCoefficient(coef float64) { g.coef = ClampCoefficient(coef) }

// SetTarget changes the value being approached without moving the base.
func (g *Glide) SetTarget(target float64) { g.target = target }

// SetBase changes the linear-law reference point.
func (g *Glide) SetBase(base float64) { g.base = base }

// SetCurrent moves the present value without touching target or base.
func (g *Glide) SetCurrent(v float64) { g.current = v }

// Jump sets current, target and base to v, ending any glide.
func (g *Glide) Jump(v float64) {
	g.current = v
	g.target = v
	g.base = v
}

// Rescale multiplies current, target and base by ratio, preserving the
// relative progress of a glide in flight.
func (g *Glide) Rescale(ratio float64) {
	g.current *= ratio
	g.target *= ratio
	g.base *= ratio
}

// Progress returns how far current has travelled from base toward target,
// 0 at base and 1 at target. A glide with base == target reports 1.
func (g *Glide) Progress() float64 {
	span := g.target - g.base
	if span == 0 {
		return 1
	}
	return (g.current - g.base) / span
}

// Done reports whether current has reached target exactly.
func (g *Glide) Done() bool { return g.current == g.target }

// Step advances one sample and returns the new value.
func (g *Glide) Step(sampleRate float64) float64 {
	if g.law == Linear {
		g.current = LinearStep(g.base, g.current, g.target, g.coef, sampleRate)
	} else {
		g.current = ExpStep(g.current, g.target, g.coef)
	}
	return g.current
}
