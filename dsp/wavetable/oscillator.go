package wavetable

import (
	"math"

	"github.com/cwbudde/icebox/dsp/interp"
)

// Sample reads table at a fractional position with linear interpolation.
// pos must lie in [0, len(table)); the upper neighbour wraps to index 0.
func Sample(table []float64, pos float64) float64 {
	lower := int(math.Floor(pos))
	upper := lower + 1
	if upper >= len(table) {
		upper = 0
	}
	return interp.Linear2(pos-float64(lower), table[lower], table[upper])
}

// SampleHermite reads table at a fractional position with 4-point cubic
// interpolation, wrapping all neighbours around the table ends.
func SampleHermite(table []float64, pos float64) float64 {
	n := len(table)
	lower := int(math.Floor(pos))
	return interp.Hermite4(pos-float64(lower),
		table[wrapIndex(lower-1, n)],
		table[lower],
		table[wrapIndex(lower+1, n)],
		table[wrapIndex(lower+2, n)],
	)
}

func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Oscillator tracks the read position into a wavetable. One position is
// shared by all channels of the table.
type Oscillator struct {
	mode        interp.Mode
	tableLen    int
	position    float64
	cycleLength float64
}

// NewOscillator returns an oscillator using the given interpolation mode.
func NewOscillator(mode interp.Mode) *Oscillator {
	return &Oscillator{mode: mode}
}

// Mode returns the interpolation mode.
func (o *Oscillator) Mode() interp.Mode { return o.mode }

// Position returns the current fractional read index.
func (o *Oscillator) Position() float64 { return o.position }

// CycleLength returns the current pitch period in samples.
func (o *Oscillator) CycleLength() float64 { return o.cycleLength }

// Start positions the oscillator one cycle before the end of a table of
// tableLen samples, so playback begins on the most recently captured period.
func (o *Oscillator) Start(tableLen int, cycleLength float64) {
	o.tableLen = tableLen
	o.cycleLength = cycleLength
	o.position = o.wrap(float64(tableLen) - o.effectiveCycle())
}

// SetCycleLength updates the pitch period without moving the read position.
func (o *Oscillator) SetCycleLength(cycleLength float64) {
	o.cycleLength = cycleLength
}

// Advance moves the read position forward by step samples. Running past the
// table end steps back by one cycle; the position always stays inside
// [0, tableLen).
func (o *Oscillator) Advance(step float64) {
	if o.tableLen <= 0 {
		return
	}
	o.position += step
	if o.position >= float64(o.tableLen) {
		o.position -= o.effectiveCycle()
	}
	o.position = o.wrap(o.position)
}

// Read returns the interpolated sample of table at the current position.
func (o *Oscillator) Read(table []float64) float64 {
	if o.mode == interp.Hermite {
		return SampleHermite(table, o.position)
	}
	return Sample(table, o.position)
}

// Reset clears the position and cycle length.
func (o *Oscillator) Reset() {
	o.position = 0
	o.cycleLength = 0
	o.tableLen = 0
}

// effectiveCycle bounds the cycle to the table: a period longer than the
// table (or a degenerate one) loops the whole table instead.
func (o *Oscillator) effectiveCycle() float64 {
	n := float64(o.tableLen)
	if !(o.cycleLength > 0) || o.cycleLength > n {
		return n
	}
	return o.cycleLength
}

func (o *Oscillator) wrap(pos float64) float64 {
	n := float64(o.tableLen)
	if pos >= 0 && pos < n {
		return pos
	}
	if math.IsNaN(pos) || math.IsInf(pos, 0) {
		return 0
	}
	pos = math.Mod(pos, n)
	if pos < 0 {
		pos += n
	}
	if pos >= n {
		pos = 0
	}
	return pos
}
