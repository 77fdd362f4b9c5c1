package glide

import "github.com/cwbudde/icebox/dsp/core"

// PortamentoRateScale maps the user portamento amount (percent) to a
// coefficient: coef = 1 - PortamentoRateScale*amount.
const PortamentoRateScale = 0.001

// PortamentoCoefficient converts a portamento amount in percent to a clamped
// glide coefficient.
func PortamentoCoefficient(percent float64) float64 {
	return ClampCoefficient(1 - PortamentoRateScale*percent)
}

// Portamento glides the fundamental frequency linearly between notes. An
// amount of 100 % (or more) disables it and pitch changes are immediate.
type Portamento struct {
	glide   Glide
	enabled bool
	started bool
}

// NewPortamento returns a disabled portamento resting at A4.
func NewPortamento() *Portamento {
	return &Portamento{glide: New(core.ReferenceHz, PortamentoCoefficient(100), Linear)}
}

// Frequency returns the current fundamental in Hz.
func (p *Portamento) Frequency() float64 { return p.glide.current }

// Target returns the frequency being approached.
func (p *Portamento) Target() float64 { return p.glide.target }

// Enabled reports whether frequency changes glide.
func (p *Portamento) Enabled() bool { return p.enabled }

// Glide exposes the underlying glide state.
func (p *Portamento) Glide() *Glide { return &p.glide }

// SetAmount sets the portamento amount in percent.
func (p *Portamento) SetAmount(percent float64) {
	p.enabled = percent < 100
	p.glide.SetCoefficient(PortamentoCoefficient(percent))
}

// NoteOn starts a glide from the present frequency to hz. The very first
// note, and every note while disabled, jumps straight to its pitch.
func (p *Portamento) NoteOn(hz float64) {
	if !p.started || !p.enabled {
		p.glide.Jump(hz)
		p.started = true
		return
	}
	p.glide.base = p.glide.current
	p.glide.target = hz
}

// SetTarget retargets the glide (pitch wheel). A new target starts a fresh
// glide from the present frequency.
func (p *Portamento) SetTarget(hz float64) {
	if hz == p.glide.target {
		return
	}
	p.glide.base = p.glide.current
	p.glide.target = hz
}

// Step advances one sample and returns the new frequency.
func (p *Portamento) Step(sampleRate float64) float64 {
	if !p.enabled {
		p.glide.current = p.glide.target
		return p.glide.current
	}
	return p.glide.Step(sampleRate)
}

// Reset forgets the previous note so the next one starts without a glide.
func (p *Portamento) Reset() {
	p.started = false
}
