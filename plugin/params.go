package plugin

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/icebox/dsp/core"
)

// ParamID identifies a host parameter. The order is the persisted order.
type ParamID int

const (
	ParamFormant ParamID = iota
	ParamFormantDecay
	ParamFormantDecayRate
	ParamFormantDecayLinear
	ParamAttack
	ParamDecay
	ParamSustain
	ParamRelease
	ParamPortamento
	ParamWet
	ParamDry

	NumParams
)

// ParamSpec describes the range and default of a parameter in natural units.
type ParamSpec struct {
	Key     string
	Name    string
	Unit    string
	Min     float64
	Max     float64
	Default float64
	Bool    bool
}

var paramSpecs = [NumParams]ParamSpec{
	ParamFormant:            {Key: "formant", Name: "Formant", Unit: "st", Min: -24, Max: 24, Default: 0},
	ParamFormantDecay:       {Key: "formantDecay", Name: "Decay", Unit: "st", Min: -24, Max: 24, Default: 0},
	ParamFormantDecayRate:   {Key: "formantDecayRate", Name: "Rate", Min: 0.01, Max: 2, Default: 0.01},
	ParamFormantDecayLinear: {Key: "formantDecayLinear", Name: "Linear", Min: 0, Max: 1, Default: 0, Bool: true},
	ParamAttack:             {Key: "attack", Name: "Attack", Unit: "s", Min: 0, Max: 1, Default: 0.01},
	ParamDecay:              {Key: "decay", Name: "Decay", Unit: "s", Min: 0, Max: 1, Default: 0},
	ParamSustain:            {Key: "sustain", Name: "Sustain", Unit: "%", Min: 0, Max: 100, Default: 100},
	ParamRelease:            {Key: "release", Name: "Release", Unit: "s", Min: 0, Max: 2, Default: 0.1},
	ParamPortamento:         {Key: "portamento", Name: "Portamento", Unit: "%", Min: 0, Max: 100, Default: 100},
	ParamWet:                {Key: "wet", Name: "Wet", Unit: "%", Min: 0, Max: 100, Default: 100},
	ParamDry:                {Key: "dry", Name: "Dry", Unit: "%", Min: 0, Max: 100, Default: 0},
}

// Spec returns the description of id.
func (id ParamID) Spec() ParamSpec {
	return paramSpecs[id]
}

// Valid reports whether id names a parameter.
func (id ParamID) Valid() bool {
	return id >= 0 && id < NumParams
}

// String implements fmt.Stringer.
func (id ParamID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("ParamID(%d)", int(id))
	}
	return paramSpecs[id].Key
}

// Clamp limits v to the parameter range. Boolean parameters snap to 0 or 1
// and NaN becomes the default.
func (id ParamID) Clamp(v float64) float64 {
	s := paramSpecs[id]
	if math.IsNaN(v) {
		return s.Default
	}
	if s.Bool {
		if v >= 0.5 {
			return 1
		}
		return 0
	}
	return core.Clamp(v, s.Min, s.Max)
}

// LookupParam finds a parameter by key.
func LookupParam(key string) (ParamID, bool) {
	for id := ParamID(0); id < NumParams; id++ {
		if paramSpecs[id].Key == key {
			return id, true
		}
	}
	return 0, false
}

// Values is a plain copy of every parameter.
type Values [NumParams]float64

// DefaultValues returns every parameter at its default.
func DefaultValues() Values {
	var v Values
	for id := range v {
		v[id] = paramSpecs[id].Default
	}
	return v
}

// Parameters stores the current parameter values. Each value is an
// independent atomic, so a writer goroutine never blocks the audio
// goroutine; a group of values written together may be observed partially
// updated for one block.
type Parameters struct {
	values [NumParams]atomic.Uint64
}

// NewParameters returns parameters at their defaults.
func NewParameters() *Parameters {
	p := &Parameters{}
	p.SetValues(DefaultValues())
	return p
}

// Get returns the value of id.
func (p *Parameters) Get(id ParamID) float64 {
	return math.Float64frombits(p.values[id].Load())
}

// Set stores v, clamped to the parameter range, and returns the stored value.
func (p *Parameters) Set(id ParamID, v float64) float64 {
	v = id.Clamp(v)
	p.values[id].Store(math.Float64bits(v))
	return v
}

// GetBool returns a boolean parameter.
func (p *Parameters) GetBool(id ParamID) bool {
	return p.Get(id) >= 0.5
}

// SetBool stores a boolean parameter.
func (p *Parameters) SetBool(id ParamID, b bool) {
	v := 0.0
	if b {
		v = 1
	}
	p.Set(id, v)
}

// Values returns a copy of every parameter.
func (p *Parameters) Values() Values {
	var v Values
	for id := range v {
		v[id] = math.Float64frombits(p.values[id].Load())
	}
	return v
}

// SetValues stores every parameter.
func (p *Parameters) SetValues(v Values) {
	for id := range v {
		p.Set(ParamID(id), v[id])
	}
}

// Reset restores the defaults.
func (p *Parameters) Reset() {
	p.SetValues(DefaultValues())
}
