// Package wavetable holds the per-note wavetable snapshot and the resampling
// oscillator that loops it.
//
// A [Table] is filled from the capture buffers at note-on and stays
// immutable until the next note. The [Oscillator] reads it at a fractional,
// continuously varying position: it advances by the formant ratio each
// sample and, once it runs past the table end, jumps back by one pitch
// period (the cycle length) instead of restarting at zero, which keeps the
// waveform phase-continuous.
package wavetable
