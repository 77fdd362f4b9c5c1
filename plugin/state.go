package plugin

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrStateSize is returned when persisted state has an unexpected length.
var ErrStateSize = errors.New("plugin: invalid state size")

// Preset is the persisted parameter record. Fields are written in declaration
// order, little-endian, with no header; the bool takes one byte.
type Preset struct {
	Formant            float32
	FormantDecay       float32
	FormantDecayRate   float32
	FormantDecayLinear bool
	Attack             float32
	Decay              float32
	Sustain            float32
	Release            float32
	Portamento         float32
	Wet                float32
	Dry                float32
}

// legacyPreset is the layout saved before wet/dry existed.
type legacyPreset struct {
	Formant            float32
	FormantDecay       float32
	FormantDecayRate   float32
	FormantDecayLinear bool
	Attack             float32
	Decay              float32
	Sustain            float32
	Release            float32
	Portamento         float32
}

var (
	// StateSize is the length of a current preset in bytes.
	StateSize = binary.Size(Preset{})
	// LegacyStateSize is the length of a preset without wet/dry.
	LegacyStateSize = binary.Size(legacyPreset{})
)

// PresetFromValues converts parameter values to the persisted record.
func PresetFromValues(v Values) Preset {
	return Preset{
		Formant:            float32(v[ParamFormant]),
		FormantDecay:       float32(v[ParamFormantDecay]),
		FormantDecayRate:   float32(v[ParamFormantDecayRate]),
		FormantDecayLinear: v[ParamFormantDecayLinear] >= 0.5,
		Attack:             float32(v[ParamAttack]),
		Decay:              float32(v[ParamDecay]),
		Sustain:            float32(v[ParamSustain]),
		Release:            float32(v[ParamRelease]),
		Portamento:         float32(v[ParamPortamento]),
		Wet:                float32(v[ParamWet]),
		Dry:                float32(v[ParamDry]),
	}
}

// Values converts the record back to parameter values.
func (p Preset) Values() Values {
	var v Values
	v[ParamFormant] = float64(p.Formant)
	v[ParamFormantDecay] = float64(p.FormantDecay)
	v[ParamFormantDecayRate] = float64(p.FormantDecayRate)
	if p.FormantDecayLinear {
		v[ParamFormantDecayLinear] = 1
	}
	v[ParamAttack] = float64(p.Attack)
	v[ParamDecay] = float64(p.Decay)
	v[ParamSustain] = float64(p.Sustain)
	v[ParamRelease] = float64(p.Release)
	v[ParamPortamento] = float64(p.Portamento)
	v[ParamWet] = float64(p.Wet)
	v[ParamDry] = float64(p.Dry)
	return v
}

// MarshalState encodes a preset.
func MarshalState(p Preset) []byte {
	var buf bytes.Buffer
	buf.Grow(StateSize)
	// Writes to a bytes.Buffer cannot fail for a fixed-size struct.
	_ = binary.Write(&buf, binary.LittleEndian, p)
	return buf.Bytes()
}

// UnmarshalState decodes a preset. Legacy presets without wet/dry get the
// default wet/dry levels.
func UnmarshalState(data []byte) (Preset, error) {
	switch len(data) {
	case StateSize:
		var p Preset
		if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &p); err != nil {
			return Preset{}, fmt.Errorf("plugin: decode state: %w", err)
		}
		return p, nil

	case LegacyStateSize:
		var l legacyPreset
		if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &l); err != nil {
			return Preset{}, fmt.Errorf("plugin: decode legacy state: %w", err)
		}
		return Preset{
			Formant:            l.Formant,
			FormantDecay:       l.FormantDecay,
			FormantDecayRate:   l.FormantDecayRate,
			FormantDecayLinear: l.FormantDecayLinear,
			Attack:             l.Attack,
			Decay:              l.Decay,
			Sustain:            l.Sustain,
			Release:            l.Release,
			Portamento:         l.Portamento,
			Wet:                float32(paramSpecs[ParamWet].Default),
			Dry:                float32(paramSpecs[ParamDry].Default),
		}, nil

	default:
		return Preset{}, fmt.Errorf("%w: got %d bytes, want %d or %d", ErrStateSize, len(data), StateSize, LegacyStateSize)
	}
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (p *Parameters) MarshalBinary() ([]byte, error) {
	return MarshalState(PresetFromValues(p.Values())), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. Values are clamped
// to their ranges. Callers that feed a voice must invalidate its Tracker
// afterwards; Processor.LoadState does both.
func (p *Parameters) UnmarshalBinary(data []byte) error {
	preset, err := UnmarshalState(data)
	if err != nil {
		return err
	}
	p.SetValues(preset.Values())
	return nil
}
