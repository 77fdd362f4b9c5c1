package main

import (
	"github.com/cwbudde/icebox/dsp/buffer"
	"github.com/cwbudde/icebox/plugin"
)

// render streams in through proc block by block and returns the output.
// events must be sorted by frame.
func render(proc *plugin.Processor, in *buffer.Block, events []timedEvent, blockSize int) *buffer.Block {
	out := buffer.New(in.NumChannels(), in.NumFrames())
	total := in.NumFrames()

	block := buffer.New(in.NumChannels(), blockSize)
	views := make([][]float64, in.NumChannels())
	pending := make([]plugin.Event, 0, 16)

	ei := 0
	for pos := 0; pos < total; pos += blockSize {
		n := min(blockSize, total-pos)
		for c := range views {
			views[c] = block.Channel(c)[:n]
			copy(views[c], in.Channel(c)[pos:pos+n])
		}

		pending = pending[:0]
		for ei < len(events) && events[ei].Frame < pos+n {
			e := events[ei].Event
			e.Offset = max(0, events[ei].Frame-pos)
			pending = append(pending, e)
			ei++
		}

		proc.ProcessBlock(buffer.FromChannels(views...), pending)

		for c := range views {
			copy(out.Channel(c)[pos:pos+n], views[c])
		}
	}
	return out
}
