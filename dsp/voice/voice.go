package voice

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/icebox/dsp/capture"
	"github.com/cwbudde/icebox/dsp/core"
	"github.com/cwbudde/icebox/dsp/envelope"
	"github.com/cwbudde/icebox/dsp/glide"
	"github.com/cwbudde/icebox/dsp/wavetable"
)

// State is the note lifecycle of a Voice.
type State int

const (
	// StateIdle: no note, only the dry signal is rendered.
	StateIdle State = iota
	// StateSounding: a note is held.
	StateSounding
	// StateReleasing: the note was released and the envelope is tailing off.
	StateReleasing
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSounding:
		return "sounding"
	case StateReleasing:
		return "releasing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// NoNote is returned by Note while the voice is idle.
const NoNote = -1

// Voice is the single synthesis voice. It is not safe for concurrent use;
// every method is meant to run on the audio goroutine.
type Voice struct {
	cfg Config

	left  *capture.Buffer
	right *capture.Buffer
	table *wavetable.Table
	osc   *wavetable.Oscillator

	formant    *glide.Formant
	portamento *glide.Portamento
	env        *envelope.ADSR

	sampleRate float64
	maxBlock   int
	outputs    int
	prepared   bool

	state State
	note  int
	wheel int

	wetGain float64
	dryGain float64

	wet   [][]float64
	gains []float64
}

// New constructs a voice. Prepare must be called before Render.
func New(opts ...Option) (*Voice, error) {
	cfg := applyOptions(opts)

	left, err := capture.New(cfg.CaptureSize)
	if err != nil {
		return nil, fmt.Errorf("voice: %w", err)
	}
	right, err := capture.New(cfg.CaptureSize)
	if err != nil {
		return nil, fmt.Errorf("voice: %w", err)
	}
	table, err := wavetable.NewTable(cfg.CaptureSize)
	if err != nil {
		return nil, fmt.Errorf("voice: %w", err)
	}

	const defaultRate = 96000
	env, err := envelope.New(defaultRate)
	if err != nil {
		return nil, fmt.Errorf("voice: %w", err)
	}

	return &Voice{
		cfg:        cfg,
		left:       left,
		right:      right,
		table:      table,
		osc:        wavetable.NewOscillator(cfg.Interpolation),
		formant:    glide.NewFormant(),
		portamento: glide.NewPortamento(),
		env:        env,
		sampleRate: defaultRate,
		note:       NoNote,
		wheel:      core.PitchWheelCenter,
		wetGain:    1,
		dryGain:    0,
	}, nil
}

// Config returns the construction settings.
func (v *Voice) Config() Config { return v.cfg }

// Prepare sets the sample rate and sizes the render scratch buffers. It
// stops any sounding note.
func (v *Voice) Prepare(sampleRate float64, maxBlockSize, numOutputChannels int) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("voice sample rate must be positive and finite: %f", sampleRate)
	}
	if maxBlockSize <= 0 {
		return fmt.Errorf("voice block size must be > 0: %d", maxBlockSize)
	}
	if numOutputChannels <= 0 {
		return fmt.Errorf("voice output channels must be > 0: %d", numOutputChannels)
	}
	if err := v.env.SetSampleRate(sampleRate); err != nil {
		return fmt.Errorf("voice: %w", err)
	}

	v.sampleRate = sampleRate
	v.maxBlock = maxBlockSize
	v.outputs = numOutputChannels

	if len(v.wet) != numOutputChannels {
		v.wet = make([][]float64, numOutputChannels)
	}
	for c := range v.wet {
		v.wet[c] = core.EnsureLen(v.wet[c], maxBlockSize)
	}
	v.gains = core.EnsureLen(v.gains, maxBlockSize)

	v.env.Reset()
	v.stop()
	v.prepared = true
	return nil
}

// Prepared reports whether Prepare has succeeded.
func (v *Voice) Prepared() bool { return v.prepared }

// SampleRate returns the prepared sample rate.
func (v *Voice) SampleRate() float64 { return v.sampleRate }

// PushInputSample records one input sample. Channel 0 feeds the left capture
// buffer, channel 1 the right one; other channels are ignored.
func (v *Voice) PushInputSample(channel int, s float64) {
	switch channel {
	case 0:
		v.left.WriteSample(s)
	case 1:
		v.right.WriteSample(s)
	}
}

// NoteOn freezes the capture window into the wavetable and starts a note.
// velocity is accepted for interface symmetry; the voice is not velocity
// sensitive.
func (v *Voice) NoteOn(note int, velocity float64, pitchWheel int) {
	v.table.Load(v.left, v.right)

	v.note = note
	v.wheel = pitchWheel
	hz := v.noteHz()

	v.portamento.NoteOn(hz)
	v.formant.Trigger(hz)
	v.osc.Start(v.table.Len(), v.cycleLength())
	v.env.NoteOn()
	v.state = StateSounding
}

// NoteOff releases the note. With allowTailOff the envelope runs its release
// segment; otherwise the voice falls silent immediately.
func (v *Voice) NoteOff(velocity float64, allowTailOff bool) {
	if v.state == StateIdle {
		return
	}
	if allowTailOff {
		v.env.NoteOff()
		if v.env.IsActive() {
			v.state = StateReleasing
			return
		}
	} else {
		v.env.Reset()
	}
	v.stop()
}

// PitchWheelMoved retargets the fundamental of the sounding note.
func (v *Voice) PitchWheelMoved(value int) {
	v.wheel = value
	if v.note == NoNote {
		return
	}
	hz := v.noteHz()
	v.portamento.SetTarget(hz)
	v.formant.SetFrequency(hz)
}

func (v *Voice) noteHz() float64 {
	return core.NoteToHz(v.note) * core.PitchWheelRatio(v.wheel)
}

func (v *Voice) cycleLength() float64 {
	return v.sampleRate * v.formant.Ratio() / v.portamento.Frequency()
}

func (v *Voice) stop() {
	v.state = StateIdle
	v.note = NoNote
}

// SetFormant sets the formant offset in semitones.
func (v *Voice) SetFormant(semitones float64) {
	v.formant.SetOffset(semitones)
	v.osc.SetCycleLength(v.cycleLength())
}

// SetFormantEnvelope sets the formant envelope depth in semitones, its rate
// and whether it glides linearly.
func (v *Voice) SetFormantEnvelope(depth, rate float64, linear bool) {
	v.formant.SetEnvelope(depth, rate, linear)
}

// SetADSR sets the amplitude envelope. Times are in seconds, sustain is a
// percentage.
func (v *Voice) SetADSR(attack, decay, sustainPercent, release float64) {
	v.env.SetParams(envelope.Params{
		Attack:  attack,
		Decay:   decay,
		Sustain: sustainPercent / 100,
		Release: release,
	})
}

// SetPortamento sets the portamento amount in percent; 100 disables it.
func (v *Voice) SetPortamento(percent float64) {
	v.portamento.SetAmount(percent)
}

// SetWetDry sets the synthesized and passthrough levels in percent.
func (v *Voice) SetWetDry(wetPercent, dryPercent float64) {
	v.wetGain = core.Clamp(wetPercent/100, 0, 1)
	v.dryGain = core.Clamp(dryPercent/100, 0, 1)
}

// State returns the note lifecycle state.
func (v *Voice) State() State { return v.state }

// Active reports whether a note is sounding or releasing.
func (v *Voice) Active() bool { return v.state != StateIdle }

// Note returns the sounding MIDI note or NoNote.
func (v *Voice) Note() int { return v.note }

// Frequency returns the current fundamental in Hz.
func (v *Voice) Frequency() float64 { return v.portamento.Frequency() }

// FormantRatio returns the current wavetable read-rate ratio.
func (v *Voice) FormantRatio() float64 { return v.formant.Ratio() }

// Position returns the oscillator read index.
func (v *Voice) Position() float64 { return v.osc.Position() }

// CycleLength returns the oscillator period in samples.
func (v *Voice) CycleLength() float64 { return v.osc.CycleLength() }

// EnvelopeStage returns the amplitude envelope segment.
func (v *Voice) EnvelopeStage() envelope.Stage { return v.env.Stage() }

// Gains returns the wet and dry levels in [0, 1].
func (v *Voice) Gains() (wet, dry float64) { return v.wetGain, v.dryGain }

// Table returns the wavetable captured at the last note-on.
func (v *Voice) Table() *wavetable.Table { return v.table }

// Render writes numSamples frames starting at startSample into out. dry
// holds the input for the same frames and must not alias out; when it has
// fewer channels than out the last dry channel is reused. Render does
// nothing before Prepare.
func (v *Voice) Render(out, dry [][]float64, startSample, numSamples int) {
	if !v.prepared {
		return
	}
	for numSamples > 0 {
		n := numSamples
		if n > v.maxBlock {
			n = v.maxBlock
		}
		v.renderChunk(out, dry, startSample, n)
		startSample += n
		numSamples -= n
	}
}

func (v *Voice) renderChunk(out, dry [][]float64, start, n int) {
	outputs := len(out)
	if outputs > v.outputs {
		outputs = v.outputs
	}
	end := start + n

	// Channels beyond the prepared layout carry dry signal only.
	for c := outputs; c < len(out); c++ {
		v.mixDry(out[c][start:end], dry, c, start, end)
	}

	if v.state == StateIdle {
		for c := 0; c < outputs; c++ {
			v.mixDry(out[c][start:end], dry, c, start, end)
		}
		return
	}

	for i := 0; i < n; i++ {
		for c := 0; c < outputs; c++ {
			v.wet[c][i] = v.osc.Read(v.table.Channel(c))
		}

		freq := v.portamento.Step(v.sampleRate)
		ratio := v.formant.Step(v.sampleRate)
		v.osc.SetCycleLength(v.sampleRate * ratio / freq)
		v.osc.Advance(ratio)
	}

	gains := v.gains[:n]
	v.env.Process(gains)
	vecmath.ScaleBlock(gains, gains, v.wetGain)

	for c := 0; c < outputs; c++ {
		wet := v.wet[c][:n]
		vecmath.MulBlockInPlace(wet, gains)
		dst := out[c][start:end]
		v.mixDry(dst, dry, c, start, end)
		vecmath.AddBlockInPlace(dst, wet)
	}

	if !v.env.IsActive() {
		v.stop()
	}
}

// mixDry writes the scaled dry signal for output channel c into dst.
func (v *Voice) mixDry(dst []float64, dry [][]float64, c, start, end int) {
	if len(dry) == 0 {
		core.Zero(dst)
		return
	}
	if c >= len(dry) {
		c = len(dry) - 1
	}
	vecmath.ScaleBlock(dst, dry[c][start:end], v.dryGain)
}
