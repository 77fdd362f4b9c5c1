// Package wavio reads and writes PCM WAV files as planar float blocks.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/icebox/dsp/buffer"
	"github.com/cwbudde/icebox/dsp/dither"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ErrInvalidFile is returned for input that is not a PCM WAV stream.
var ErrInvalidFile = errors.New("wavio: not a valid WAV file")

const wavFormatPCM = 1

// Audio is decoded sample data.
type Audio struct {
	Block      *buffer.Block
	SampleRate int
	BitDepth   int
}

// ReadFile decodes the WAV file at path.
func ReadFile(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a whole WAV stream. Samples are scaled to [-1, 1).
func Decode(r io.ReadSeeker) (*Audio, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, ErrInvalidFile
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wavio: decode: %w", err)
	}
	if buf.Format == nil || buf.Format.NumChannels <= 0 {
		return nil, ErrInvalidFile
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = int(d.BitDepth)
	}
	if bitDepth <= 0 {
		return nil, fmt.Errorf("wavio: unknown bit depth")
	}

	nch := buf.Format.NumChannels
	frames := len(buf.Data) / nch
	block := buffer.New(nch, frames)
	scale := 1 / float64(uint64(1)<<(bitDepth-1))
	for i := 0; i < frames; i++ {
		for c := 0; c < nch; c++ {
			v := buf.Data[i*nch+c]
			if bitDepth == 8 {
				// 8-bit WAV is unsigned.
				v -= 128
			}
			block.SetSample(c, i, float64(v)*scale)
		}
	}

	return &Audio{Block: block, SampleRate: buf.Format.SampleRate, BitDepth: bitDepth}, nil
}

// WriteFile encodes block as a PCM WAV file at path.
func WriteFile(path string, block *buffer.Block, sampleRate int, opts ...dither.Option) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, block, sampleRate, opts...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Encode writes block to w. Bit depth and dither come from opts; the
// default is 16-bit with triangular dither.
func Encode(w io.WriteSeeker, block *buffer.Block, sampleRate int, opts ...dither.Option) error {
	if sampleRate <= 0 {
		return fmt.Errorf("wavio: sample rate must be > 0: %d", sampleRate)
	}
	if block == nil || block.NumChannels() == 0 {
		return fmt.Errorf("wavio: no channels to write")
	}
	q, err := dither.NewQuantizer(opts...)
	if err != nil {
		return fmt.Errorf("wavio: %w", err)
	}

	nch := block.NumChannels()
	frames := block.NumFrames()
	data := make([]int, nch*frames)
	for i := 0; i < frames; i++ {
		for c := 0; c < nch; c++ {
			v := q.Quantize(block.Sample(c, i))
			if q.BitDepth() == 8 {
				v += 128
			}
			data[i*nch+c] = v
		}
	}

	ib := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: nch,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: q.BitDepth(),
	}

	e := wav.NewEncoder(w, sampleRate, q.BitDepth(), nch, wavFormatPCM)
	if err := e.Write(ib); err != nil {
		return fmt.Errorf("wavio: encode: %w", err)
	}
	if err := e.Close(); err != nil {
		return fmt.Errorf("wavio: finalize: %w", err)
	}
	return nil
}
