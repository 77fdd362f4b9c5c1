// Package envelope provides the linear ADSR amplitude envelope that gates the
// synthesis voice.
package envelope

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/icebox/dsp/core"
)

// Stage is the current envelope segment.
type Stage int

const (
	StageIdle Stage = iota
	StageAttack
	StageDecay
	StageSustain
	StageRelease
)

// String implements fmt.Stringer.
func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageAttack:
		return "attack"
	case StageDecay:
		return "decay"
	case StageSustain:
		return "sustain"
	case StageRelease:
		return "release"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Params holds segment durations in seconds and the sustain level in [0, 1].
type Params struct {
	Attack  float64
	Decay   float64
	Sustain float64
	Release float64
}

// DefaultParams matches the plugin defaults: 10 ms attack, no decay, full
// sustain, 100 ms release.
func DefaultParams() Params {
	return Params{Attack: 0.01, Decay: 0, Sustain: 1, Release: 0.1}
}

func (p Params) sanitize() Params {
	return Params{
		Attack:  nonNegative(p.Attack),
		Decay:   nonNegative(p.Decay),
		Sustain: core.Clamp(nonNegative(p.Sustain), 0, 1),
		Release: nonNegative(p.Release),
	}
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

// ADSR is a linear attack/decay/sustain/release envelope. Segments with zero
// duration are skipped. Gain is continuous across Process calls.
type ADSR struct {
	sampleRate float64
	params     Params

	attackRate  float64
	decayRate   float64
	releaseRate float64

	stage Stage
	value float64
}

// New returns an idle envelope with DefaultParams.
func New(sampleRate float64) (*ADSR, error) {
	e := &ADSR{params: DefaultParams()}
	if err := e.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}
	return e, nil
}

// SetSampleRate updates the sample rate and recomputes segment rates.
func (e *ADSR) SetSampleRate(sampleRate float64) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("envelope sample rate must be positive and finite: %f", sampleRate)
	}
	e.sampleRate = sampleRate
	e.recalculateRates()
	return nil
}

// SampleRate returns the sample rate in Hz.
func (e *ADSR) SampleRate() float64 { return e.sampleRate }

// Params returns the current parameters.
func (e *ADSR) Params() Params { return e.params }

// SetParams updates all parameters. Negative durations become zero and the
// sustain level is clamped to [0, 1].
func (e *ADSR) SetParams(p Params) {
	e.params = p.sanitize()
	e.recalculateRates()
}

func (e *ADSR) recalculateRates() {
	e.attackRate = segmentRate(1, e.params.Attack, e.sampleRate)
	e.decayRate = segmentRate(1-e.params.Sustain, e.params.Decay, e.sampleRate)
	e.releaseRate = segmentRate(e.value, e.params.Release, e.sampleRate)
	// A segment shortened to zero while running completes immediately.
	switch {
	case e.stage == StageAttack && e.attackRate <= 0:
		e.value = 1
		e.stage = StageSustain
		if e.decayRate > 0 {
			e.stage = StageDecay
		} else {
			e.value = e.params.Sustain
		}
	case e.stage == StageDecay && e.decayRate <= 0:
		e.value = e.params.Sustain
		e.stage = StageSustain
	case e.stage == StageRelease && e.releaseRate <= 0:
		e.Reset()
	}
}

// segmentRate returns the per-sample change needed to cover distance in
// seconds, or -1 for a zero-length segment.
func segmentRate(distance, seconds, sampleRate float64) float64 {
	if seconds <= 0 {
		return -1
	}
	return distance / (seconds * sampleRate)
}

// Stage returns the current segment.
func (e *ADSR) Stage() Stage { return e.stage }

// Value returns the most recent gain.
func (e *ADSR) Value() float64 { return e.value }

// IsActive reports whether the envelope is producing non-idle output.
func (e *ADSR) IsActive() bool { return e.stage != StageIdle }

// NoteOn restarts the envelope at the attack segment. The gain continues
// from its present value, so a retrigger does not click.
func (e *ADSR) NoteOn() {
	switch {
	case e.attackRate > 0:
		e.stage = StageAttack
	case e.decayRate > 0:
		e.value = 1
		e.stage = StageDecay
	default:
		e.value = e.params.Sustain
		e.stage = StageSustain
	}
}

// NoteOff enters the release segment from the present gain. With a zero
// release time the envelope resets immediately.
func (e *ADSR) NoteOff() {
	if e.stage == StageIdle {
		return
	}
	if e.params.Release > 0 {
		e.releaseRate = segmentRate(e.value, e.params.Release, e.sampleRate)
		e.stage = StageRelease
		return
	}
	e.Reset()
}

// Reset silences the envelope immediately.
func (e *ADSR) Reset() {
	e.value = 0
	e.stage = StageIdle
}

// Next advances one sample and returns the gain.
func (e *ADSR) Next() float64 {
	switch e.stage {
	case StageIdle:
		return 0

	case StageAttack:
		e.value += e.attackRate
		if e.value >= 1 {
			e.value = 1
			if e.decayRate > 0 {
				e.stage = StageDecay
			} else {
				e.stage = StageSustain
			}
		}

	case StageDecay:
		e.value -= e.decayRate
		if e.value <= e.params.Sustain {
			e.value = e.params.Sustain
			e.stage = StageSustain
		}

	case StageSustain:
		e.value = e.params.Sustain

	case StageRelease:
		e.value -= e.releaseRate
		if e.value <= 0 {
			e.Reset()
		}
	}

	return e.value
}

// Process fills gains with successive envelope values.
func (e *ADSR) Process(gains []float64) {
	for i := range gains {
		gains[i] = e.Next()
	}
}

// ApplyTo multiplies each channel by the envelope over n samples. scratch
// must hold at least n samples and receives the gain curve.
func (e *ADSR) ApplyTo(channels [][]float64, scratch []float64, n int) {
	gains := scratch[:n]
	e.Process(gains)
	for _, ch := range channels {
		vecmath.MulBlockInPlace(ch[:n], gains)
	}
}
