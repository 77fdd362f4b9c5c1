package plugin

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func TestStateSizes(t *testing.T) {
	if StateSize != 41 {
		t.Fatalf("StateSize=%d", StateSize)
	}
	if LegacyStateSize != 33 {
		t.Fatalf("LegacyStateSize=%d", LegacyStateSize)
	}
}

func TestStateLayout(t *testing.T) {
	p := NewParameters()
	p.Set(ParamFormant, 3)
	p.SetBool(ParamFormantDecayLinear, true)
	p.Set(ParamDry, 40)

	data, err := p.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != StateSize {
		t.Fatalf("len=%d", len(data))
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(data[0:4])); got != 3 {
		t.Fatalf("formant=%g", got)
	}
	if data[12] != 1 {
		t.Fatalf("linear byte=%d", data[12])
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(data[37:41])); got != 40 {
		t.Fatalf("dry=%g", got)
	}
}

func TestStateRoundTrip(t *testing.T) {
	src := NewParameters()
	src.Set(ParamFormant, -7)
	src.Set(ParamFormantDecay, 12)
	src.Set(ParamFormantDecayRate, 0.5)
	src.Set(ParamAttack, 0.25)
	src.Set(ParamSustain, 50)
	src.Set(ParamPortamento, 75)
	src.Set(ParamWet, 60)

	data, _ := src.MarshalBinary()
	dst := NewParameters()
	if err := dst.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	want, got := src.Values(), dst.Values()
	for id := range want {
		if float32(want[id]) != float32(got[id]) {
			t.Errorf("%s: got %g, want %g", ParamID(id), got[id], want[id])
		}
	}
}

func TestStateLegacy(t *testing.T) {
	src := NewParameters()
	src.Set(ParamRelease, 1.5)
	src.Set(ParamWet, 10)
	data, _ := src.MarshalBinary()

	dst := NewParameters()
	dst.Set(ParamWet, 20)
	dst.Set(ParamDry, 30)
	if err := dst.UnmarshalBinary(data[:LegacyStateSize]); err != nil {
		t.Fatal(err)
	}
	if got := dst.Get(ParamRelease); got != 1.5 {
		t.Fatalf("release=%g", got)
	}
	if dst.Get(ParamWet) != 100 || dst.Get(ParamDry) != 0 {
		t.Fatalf("wet/dry=%g/%g, want defaults", dst.Get(ParamWet), dst.Get(ParamDry))
	}
}

func TestStateInvalidSize(t *testing.T) {
	p := NewParameters()
	p.Set(ParamFormant, 5)
	for _, n := range []int{0, 1, 32, 34, 40, 42} {
		err := p.UnmarshalBinary(make([]byte, n))
		if !errors.Is(err, ErrStateSize) {
			t.Fatalf("size %d: err=%v", n, err)
		}
	}
	if p.Get(ParamFormant) != 5 {
		t.Fatal("rejected state must leave parameters untouched")
	}
}

func TestStateClampsOutOfRange(t *testing.T) {
	data := MarshalState(Preset{Formant: 99, Sustain: -5, Wet: 100})
	p := NewParameters()
	if err := p.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	if p.Get(ParamFormant) != 24 || p.Get(ParamSustain) != 0 {
		t.Fatalf("values=%v", p.Values())
	}
	if p.Get(ParamFormantDecayRate) != 0.01 {
		t.Fatalf("rate=%g", p.Get(ParamFormantDecayRate))
	}
}
