// Package capture implements the rolling input capture buffer that feeds
// the wavetable voice.
//
// A Buffer is always full: it starts out holding Len() zero samples and every
// write displaces the oldest one. Reading an ordered snapshot never moves the
// cursor, so repeated snapshots without intervening writes are identical.
package capture

import "fmt"

// DefaultSize is one second of audio at 96 kHz.
const DefaultSize = 96000

// Buffer is a fixed-capacity circular sample buffer.
type Buffer struct {
	samples []float64
	// next is the slot written by the next WriteSample call. It is also the
	// position of the oldest sample.
	next int
}

// New returns a zero-filled capture buffer holding size samples.
func New(size int) (*Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("capture size must be > 0: %d", size)
	}
	return &Buffer{samples: make([]float64, size)}, nil
}

// Len returns the capacity in samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// WriteSample stores s as the newest sample and returns the oldest sample it
// displaced.
func (b *Buffer) WriteSample(s float64) float64 {
	discarded := b.samples[b.next]
	b.samples[b.next] = s
	b.next++
	if b.next >= len(b.samples) {
		b.next = 0
	}
	return discarded
}

// Write appends every sample of src in order.
func (b *Buffer) Write(src []float64) {
	for _, s := range src {
		b.WriteSample(s)
	}
}

// Oldest returns the sample that the next write will displace.
func (b *Buffer) Oldest() float64 {
	return b.samples[b.next]
}

// Newest returns the most recently written sample.
func (b *Buffer) Newest() float64 {
	i := b.next - 1
	if i < 0 {
		i = len(b.samples) - 1
	}
	return b.samples[i]
}

// Snapshot copies the captured window into dst oldest-first and returns the
// number of samples copied. When dst is shorter than Len() only the oldest
// len(dst) samples are copied.
func (b *Buffer) Snapshot(dst []float64) int {
	n := copy(dst, b.samples[b.next:])
	n += copy(dst[n:], b.samples[:b.next])
	return n
}

// OrderedSnapshot returns a newly allocated oldest-first copy of the window.
// Use Snapshot on the audio thread.
func (b *Buffer) OrderedSnapshot() []float64 {
	out := make([]float64, len(b.samples))
	b.Snapshot(out)
	return out
}

// Reset clears the window back to silence.
func (b *Buffer) Reset() {
	for i := range b.samples {
		b.samples[i] = 0
	}
	b.next = 0
}
