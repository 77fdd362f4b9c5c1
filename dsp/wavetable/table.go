package wavetable

import (
	"fmt"

	"github.com/cwbudde/icebox/dsp/capture"
)

// Table is a stereo wavetable with fixed capacity.
type Table struct {
	left  []float64
	right []float64
}

// NewTable returns a silent stereo table of size samples per channel.
func NewTable(size int) (*Table, error) {
	if size <= 0 {
		return nil, fmt.Errorf("wavetable size must be > 0: %d", size)
	}
	return &Table{
		left:  make([]float64, size),
		right: make([]float64, size),
	}, nil
}

// Len returns the number of samples per channel.
func (t *Table) Len() int {
	return len(t.left)
}

// Load replaces the table contents with oldest-first snapshots of the two
// capture buffers. It does not allocate.
func (t *Table) Load(left, right *capture.Buffer) {
	fill(t.left, left)
	fill(t.right, right)
}

func fill(dst []float64, src *capture.Buffer) {
	n := src.Snapshot(dst)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
}

// Channel returns the samples for output channel c. Channel 0 is left and
// every other channel reads the right table.
func (t *Table) Channel(c int) []float64 {
	if c == 0 {
		return t.left
	}
	return t.right
}

// Clear silences both channels.
func (t *Table) Clear() {
	for i := range t.left {
		t.left[i] = 0
		t.right[i] = 0
	}
}
