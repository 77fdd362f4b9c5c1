package plugin

import (
	"fmt"

	"github.com/cwbudde/icebox/dsp/buffer"
	"github.com/cwbudde/icebox/dsp/core"
)

// Voice is the capability set the Processor drives.
type Voice interface {
	ParamSink
	Prepare(sampleRate float64, maxBlockSize, numOutputChannels int) error
	PushInputSample(channel int, sample float64)
	NoteOn(note int, velocity float64, pitchWheel int)
	NoteOff(velocity float64, allowTailOff bool)
	PitchWheelMoved(value int)
	Render(out, dry [][]float64, startSample, numSamples int)
	Active() bool
}

// Processor moves audio between a host buffer and the voice. ProcessBlock
// runs on the audio goroutine; LoadState and the Parameters setters may be
// called from any goroutine.
type Processor struct {
	voice   Voice
	params  *Parameters
	tracker *Tracker

	cfg      core.ProcessorConfig
	prepared bool
	dry      *buffer.Block

	note  int
	wheel int
}

// NewProcessor binds a voice to a parameter set.
func NewProcessor(v Voice, params *Parameters) *Processor {
	if params == nil {
		params = NewParameters()
	}
	return &Processor{
		voice:   v,
		params:  params,
		tracker: NewTracker(),
		cfg:     core.DefaultProcessorConfig(),
		note:    -1,
		wheel:   core.PitchWheelCenter,
	}
}

// Parameters returns the parameter store.
func (p *Processor) Parameters() *Parameters { return p.params }

// Config returns the prepared configuration.
func (p *Processor) Config() core.ProcessorConfig { return p.cfg }

// Prepare configures the voice for the given sample rate, block size and
// channel count and pushes every parameter into it.
func (p *Processor) Prepare(opts ...core.ProcessorOption) error {
	cfg := core.ApplyProcessorOptions(opts...)
	if err := p.voice.Prepare(cfg.SampleRate, cfg.BlockSize, cfg.Channels); err != nil {
		return fmt.Errorf("plugin: prepare: %w", err)
	}
	p.cfg = cfg
	p.dry = buffer.New(cfg.Channels, cfg.BlockSize)
	p.note = -1
	p.tracker.Invalidate()
	p.tracker.Sync(p.params, p.voice)
	p.prepared = true
	return nil
}

// SaveState encodes the current parameters.
func (p *Processor) SaveState() []byte {
	data, _ := p.params.MarshalBinary()
	return data
}

// LoadState restores parameters from data and forces the next block to push
// every parameter into the voice.
func (p *Processor) LoadState(data []byte) error {
	if err := p.params.UnmarshalBinary(data); err != nil {
		return err
	}
	p.tracker.Invalidate()
	return nil
}

// ProcessBlock renders one host block in place. buf holds the input on entry
// and the output on return. events must be sorted by Offset; offsets past
// the block end apply after rendering. It returns the parameters that
// changed since the previous block.
func (p *Processor) ProcessBlock(buf *buffer.Block, events []Event) Changes {
	if !p.prepared {
		return 0
	}
	changed := p.tracker.Sync(p.params, p.voice)

	n := buf.NumFrames()
	if p.dry.NumFrames() < n || p.dry.NumChannels() < buf.NumChannels() {
		// Hosts may exceed the announced block size; this is the only
		// allocation on the audio path.
		p.dry = buffer.New(max(buf.NumChannels(), p.cfg.Channels), max(n, p.cfg.BlockSize))
	}
	p.dry.CopyFrom(buf)

	out := buf.Channels()
	dry := p.dry.Channels()[:buf.NumChannels()]
	p.capture(dry, buf.NumChannels() == 1, n)

	pos, ei := 0, 0
	for pos < n {
		for ei < len(events) && events[ei].Offset <= pos {
			p.handle(events[ei])
			ei++
		}
		end := n
		if ei < len(events) && events[ei].Offset < end {
			end = events[ei].Offset
		}
		p.voice.Render(out, dry, pos, end-pos)
		pos = end
	}
	for ; ei < len(events); ei++ {
		p.handle(events[ei])
	}
	return changed
}

// capture feeds the whole block into the voice before any note-on in the
// block takes its snapshot.
func (p *Processor) capture(dry [][]float64, mono bool, n int) {
	for i := 0; i < n; i++ {
		if mono {
			s := dry[0][i]
			p.voice.PushInputSample(0, s)
			p.voice.PushInputSample(1, s)
			continue
		}
		for c := range dry {
			p.voice.PushInputSample(c, dry[c][i])
		}
	}
}

func (p *Processor) handle(e Event) {
	switch e.Kind {
	case NoteOn:
		if e.Velocity <= 0 {
			p.noteOff(e.Note, 0)
			return
		}
		p.note = e.Note
		p.voice.NoteOn(e.Note, e.Velocity, p.wheel)
	case NoteOff:
		p.noteOff(e.Note, e.Velocity)
	case PitchWheel:
		p.wheel = e.Value
		p.voice.PitchWheelMoved(e.Value)
	case AllNotesOff:
		p.note = -1
		p.voice.NoteOff(0, false)
	}
}

// noteOff releases the voice only if note is the one sounding.
func (p *Processor) noteOff(note int, velocity float64) {
	if note != p.note {
		return
	}
	p.note = -1
	p.voice.NoteOff(velocity, true)
}

// Note returns the held MIDI note, or -1.
func (p *Processor) Note() int { return p.note }
