package glide

import (
	"math"

	"github.com/cwbudde/icebox/dsp/core"
)

// FormantRateScale maps the user envelope rate to a coefficient:
// coef = 1 - FormantRateScale*rate.
const FormantRateScale = 0.0001

// FormantCoefficient converts a formant-envelope rate to a clamped glide
// coefficient. Higher rates approach the target faster.
func FormantCoefficient(rate float64) float64 {
	return ClampCoefficient(1 - FormantRateScale*rate)
}

// Formant drives the wavetable read-rate ratio. At note-on the ratio starts
// at the base set by the semitone offset and glides toward the base shifted
// by the envelope depth.
type Formant struct {
	glide     Glide
	offset    float64
	depth     float64
	frequency float64
}

// NewFormant returns a formant glide at unity ratio with no envelope.
func NewFormant() *Formant {
	return &Formant{
		glide:     New(1, FormantCoefficient(0), Exponential),
		frequency: core.ReferenceHz,
	}
}

// Ratio returns the current read-rate ratio.
func (f *Formant) Ratio() float64 { return f.glide.current }

// Base returns the ratio implied by the semitone offset.
func (f *Formant) Base() float64 { return f.glide.base }

// Target returns the envelope end point.
func (f *Formant) Target() float64 { return f.glide.target }

// Glide exposes the underlying glide state.
func (f *Formant) Glide() *Glide { return &f.glide }

// SetOffset changes the semitone offset. A glide in flight is rescaled by the
// ratio of new to old base so its relative progress is kept.
func (f *Formant) SetOffset(semitones float64) {
	f.offset = semitones
	newBase := core.SemitonesToRatio(semitones)
	f.glide.Rescale(newBase / f.glide.base)
	f.glide.base = newBase
	f.glide.target = f.floor(f.glide.target)
}

// SetEnvelope sets the envelope depth in semitones, its rate and its law.
func (f *Formant) SetEnvelope(depth, rate float64, linear bool) {
	f.depth = depth
	f.glide.SetCoefficient(FormantCoefficient(rate))
	if linear {
		f.glide.law = Linear
	} else {
		f.glide.law = Exponential
	}
	f.glide.target = f.floor(f.glide.base * core.SemitonesToRatio(depth))
}

// SetFrequency records the fundamental the floor is computed against and
// re-applies it to the target.
func (f *Formant) SetFrequency(hz float64) {
	if hz > 0 {
		f.frequency = hz
	}
	f.glide.target = f.floor(f.glide.base * core.SemitonesToRatio(f.depth))
}

// Trigger restarts the envelope from the base ratio for a note at hz.
func (f *Formant) Trigger(hz float64) {
	f.SetFrequency(hz)
	f.glide.current = f.glide.base
}

// Step advances one sample and returns the new ratio.
func (f *Formant) Step(sampleRate float64) float64 {
	return f.glide.Step(sampleRate)
}

// MinRatio returns the smallest ratio allowed at the current fundamental:
// frequency*ratio never drops below MIDI note 0.
func (f *Formant) MinRatio() float64 {
	return core.LowestNoteHz() / f.frequency
}

func (f *Formant) floor(target float64) float64 {
	return math.Max(target, f.MinRatio())
}
