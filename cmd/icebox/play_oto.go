//go:build !headless

package main

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"

	"github.com/cwbudde/icebox/dsp/buffer"
	"github.com/ebitengine/oto/v3"
)

// play blocks until block has been played on the default output device.
func play(block *buffer.Block, sampleRate int) error {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: block.NumChannels(),
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return err
	}
	<-ready

	interleaved := block.Interleaved(nil)
	pcm := make([]byte, 4*len(interleaved))
	for i, s := range interleaved {
		binary.LittleEndian.PutUint32(pcm[4*i:], math.Float32bits(float32(s)))
	}

	p := ctx.NewPlayer(bytes.NewReader(pcm))
	p.Play()
	for p.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	return p.Close()
}
