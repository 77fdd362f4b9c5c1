package buffer

import "github.com/cwbudde/icebox/dsp/core"

// Block is a planar multichannel sample buffer: one []float64 per channel,
// all of equal length.
type Block struct {
	channels [][]float64
	frames   int
}

// New returns a zero-filled Block with the given channel and frame counts.
func New(channels, frames int) *Block {
	if channels < 0 {
		channels = 0
	}
	if frames < 0 {
		frames = 0
	}
	data := make([]float64, channels*frames)
	b := &Block{channels: make([][]float64, channels), frames: frames}
	for c := range b.channels {
		b.channels[c] = data[c*frames : (c+1)*frames : (c+1)*frames]
	}
	return b
}

// FromChannels wraps existing channel slices without copying. All channels
// are truncated to the shortest one.
func FromChannels(channels ...[]float64) *Block {
	frames := 0
	for i, ch := range channels {
		if i == 0 || len(ch) < frames {
			frames = len(ch)
		}
	}
	b := &Block{channels: make([][]float64, len(channels)), frames: frames}
	for c, ch := range channels {
		b.channels[c] = ch[:frames]
	}
	return b
}

// NumChannels returns the channel count.
func (b *Block) NumChannels() int {
	return len(b.channels)
}

// NumFrames returns the number of samples per channel.
func (b *Block) NumFrames() int {
	return b.frames
}

// Channel returns the samples of channel c.
func (b *Block) Channel(c int) []float64 {
	return b.channels[c]
}

// Channels returns all channel slices.
func (b *Block) Channels() [][]float64 {
	return b.channels
}

// Sample returns the sample at frame i of channel c.
func (b *Block) Sample(c, i int) float64 {
	return b.channels[c][i]
}

// SetSample stores v at frame i of channel c.
func (b *Block) SetSample(c, i int, v float64) {
	b.channels[c][i] = v
}

// Zero clears every channel.
func (b *Block) Zero() {
	for _, ch := range b.channels {
		core.Zero(ch)
	}
}

// ZeroRange clears frames [start, end) of every channel.
// Indices are clamped to valid bounds.
func (b *Block) ZeroRange(start, end int) {
	if start < 0 {
		start = 0
	}
	if end > b.frames {
		end = b.frames
	}
	if start >= end {
		return
	}
	for _, ch := range b.channels {
		core.Zero(ch[start:end])
	}
}

// CopyFrom copies src into b channel by channel and returns the number of
// frames copied. Channels missing from src are cleared; a mono src is
// duplicated into every channel of b.
func (b *Block) CopyFrom(src *Block) int {
	n := b.frames
	if src.frames < n {
		n = src.frames
	}
	for c, dst := range b.channels {
		switch {
		case c < src.NumChannels():
			copy(dst[:n], src.channels[c][:n])
		case src.NumChannels() == 1:
			copy(dst[:n], src.channels[0][:n])
		default:
			core.Zero(dst[:n])
		}
	}
	return n
}

// Interleaved writes the block into dst as interleaved frames and returns
// dst resized to NumChannels*NumFrames.
func (b *Block) Interleaved(dst []float64) []float64 {
	nc := len(b.channels)
	dst = core.EnsureLen(dst, nc*b.frames)
	for c, ch := range b.channels {
		for i, v := range ch {
			dst[i*nc+c] = v
		}
	}
	return dst
}
