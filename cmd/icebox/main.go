// Command icebox renders an audio file through the icebox voice.
//
// The input is captured continuously; every note freezes the most recent
// capture window and replays it at the note's pitch with the formant,
// envelope and glide settings given on the command line.
//
// Usage:
//
//	icebox [flags]
//
// Examples:
//
//	icebox -in voice.wav -out out.wav -notes "A3@0.5:1,C4@1.5:1"
//	icebox -tone 220 -notes "69@0.25:0.5" -formant 7 -portamento 80 -play
//	icebox -in voice.wav -preset bright.icebox -save-preset copy.icebox
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/cwbudde/icebox/dsp/buffer"
	"github.com/cwbudde/icebox/dsp/capture"
	"github.com/cwbudde/icebox/dsp/core"
	"github.com/cwbudde/icebox/dsp/dither"
	"github.com/cwbudde/icebox/dsp/interp"
	"github.com/cwbudde/icebox/dsp/voice"
	"github.com/cwbudde/icebox/internal/wavio"
	"github.com/cwbudde/icebox/measure/level"
	"github.com/cwbudde/icebox/measure/pitch"
	"github.com/cwbudde/icebox/plugin"
)

type options struct {
	in         string
	out        string
	notes      string
	tone       float64
	duration   float64
	sampleRate int
	block      int
	capture    int
	interp     string
	bits       int
	dither     string
	preset     string
	savePreset string
	play       bool
	report     bool
	params     [plugin.NumParams]*float64
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("icebox: ")

	opts := parseFlags()
	if err := run(opts); err != nil {
		log.Fatal(err)
	}
}

func parseFlags() *options {
	o := &options{}
	flag.StringVar(&o.in, "in", "", "input WAV file (default: generated sine, see -tone)")
	flag.StringVar(&o.out, "out", "icebox.wav", "output WAV file (empty to skip)")
	flag.StringVar(&o.notes, "notes", "69@0.25:1", "comma-separated note@start:duration list; notes are MIDI numbers or names like C#4")
	flag.Float64Var(&o.tone, "tone", 220, "frequency of the generated input when -in is empty")
	flag.Float64Var(&o.duration, "duration", 2, "length of the generated input in seconds")
	flag.IntVar(&o.sampleRate, "rate", 48000, "sample rate of the generated input")
	flag.IntVar(&o.block, "block", 512, "processing block size in frames")
	flag.IntVar(&o.capture, "capture", capture.DefaultSize, "capture window in samples")
	flag.StringVar(&o.interp, "interp", interp.Linear.String(), "oscillator interpolation (linear, hermite)")
	flag.IntVar(&o.bits, "bits", 16, "output bit depth")
	flag.StringVar(&o.dither, "dither", dither.DitherTriangular.String(), "output dither (none, rectangular, triangular)")
	flag.StringVar(&o.preset, "preset", "", "load parameters from a preset file before applying parameter flags")
	flag.StringVar(&o.savePreset, "save-preset", "", "write the final parameters to a preset file")
	flag.BoolVar(&o.play, "play", false, "play the result on the default audio device")
	flag.BoolVar(&o.report, "report", true, "log the detected pitch of every note")
	for id := plugin.ParamID(0); id < plugin.NumParams; id++ {
		s := id.Spec()
		usage := fmt.Sprintf("%s [%g, %g]", s.Name, s.Min, s.Max)
		if s.Unit != "" {
			usage += " " + s.Unit
		}
		o.params[id] = flag.Float64(s.Key, s.Default, usage)
	}
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: icebox [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Renders audio through a captured-wavetable pitch/formant voice.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	return o
}

func run(o *options) error {
	notes, err := parseNotes(o.notes)
	if err != nil {
		return err
	}
	mode, err := interp.ParseMode(o.interp)
	if err != nil {
		return err
	}
	ditherType, err := dither.ParseDitherType(o.dither)
	if err != nil {
		return err
	}

	params := plugin.NewParameters()
	if o.preset != "" {
		if err := loadPreset(params, o.preset); err != nil {
			return err
		}
	}
	applyParamFlags(params, o.params)

	in, sampleRate, err := loadInput(o)
	if err != nil {
		return err
	}
	in = padForNotes(in, notes, params.Get(plugin.ParamRelease), sampleRate)

	v, err := voice.New(voice.WithCaptureSize(o.capture), voice.WithInterpolation(mode))
	if err != nil {
		return err
	}
	proc := plugin.NewProcessor(v, params)
	err = proc.Prepare(
		core.WithSampleRate(float64(sampleRate)),
		core.WithBlockSize(o.block),
		core.WithChannels(in.NumChannels()),
	)
	if err != nil {
		return err
	}

	out := render(proc, in, schedule(notes, float64(sampleRate)), proc.Config().BlockSize)
	log.Printf("rendered %d frames, %d channels at %d Hz", out.NumFrames(), out.NumChannels(), sampleRate)
	for c := 0; c < out.NumChannels(); c++ {
		s := level.Calculate(out.Channel(c))
		log.Printf("channel %d: peak %.1f dBFS, rms %.1f dBFS", c, s.Peak_dB, s.RMS_dB)
		if s.Peak > 1 {
			log.Printf("channel %d clips; lower -wet or -dry", c)
		}
	}

	if o.report {
		reportPitch(out, notes, params, float64(sampleRate))
	}

	if o.out != "" {
		err := wavio.WriteFile(o.out, out, sampleRate,
			dither.WithBitDepth(o.bits),
			dither.WithDitherType(ditherType),
		)
		if err != nil {
			return err
		}
		log.Printf("wrote %s", o.out)
	}

	if o.savePreset != "" {
		if err := os.WriteFile(o.savePreset, proc.SaveState(), 0o644); err != nil {
			return err
		}
		log.Printf("saved preset %s", o.savePreset)
	}

	if o.play {
		return play(out, sampleRate)
	}
	return nil
}

func loadPreset(params *plugin.Parameters, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := params.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("preset %s: %w", path, err)
	}
	return nil
}

// applyParamFlags stores the parameter flags that were given explicitly, so
// a loaded preset keeps the values the command line does not override.
func applyParamFlags(params *plugin.Parameters, values [plugin.NumParams]*float64) {
	flag.Visit(func(f *flag.Flag) {
		if id, ok := plugin.LookupParam(f.Name); ok {
			params.Set(id, *values[id])
		}
	})
}

func loadInput(o *options) (*buffer.Block, int, error) {
	if o.in != "" {
		a, err := wavio.ReadFile(o.in)
		if err != nil {
			return nil, 0, err
		}
		log.Printf("read %s: %d frames, %d channels, %d Hz, %d bit",
			o.in, a.Block.NumFrames(), a.Block.NumChannels(), a.SampleRate, a.BitDepth)
		return a.Block, a.SampleRate, nil
	}

	if o.sampleRate <= 0 || !(o.duration > 0) {
		return nil, 0, fmt.Errorf("generated input needs a positive -rate and -duration")
	}
	return sine(o.tone, o.sampleRate, o.duration), o.sampleRate, nil
}

// sine returns a stereo sine at -6 dBFS.
func sine(freq float64, sampleRate int, seconds float64) *buffer.Block {
	frames := int(math.Round(seconds * float64(sampleRate)))
	b := buffer.New(2, frames)
	step := 2 * math.Pi * freq / float64(sampleRate)
	for i := 0; i < frames; i++ {
		s := 0.5 * math.Sin(step*float64(i))
		b.SetSample(0, i, s)
		b.SetSample(1, i, s)
	}
	return b
}

// padForNotes extends in with silence so the last note can release.
func padForNotes(in *buffer.Block, notes []noteSpec, release float64, sampleRate int) *buffer.Block {
	end := 0.0
	for _, n := range notes {
		end = math.Max(end, n.End())
	}
	want := int(math.Ceil((end + release + 0.05) * float64(sampleRate)))
	if want <= in.NumFrames() {
		return in
	}
	out := buffer.New(in.NumChannels(), want)
	out.CopyFrom(in)
	return out
}

// reportPitch logs the detected frequency of each note's held segment.
func reportPitch(out *buffer.Block, notes []noteSpec, params *plugin.Parameters, sampleRate float64) {
	settle := params.Get(plugin.ParamAttack) + params.Get(plugin.ParamDecay) + 0.02
	for _, n := range notes {
		from := int((n.Start + settle) * sampleRate)
		to := int(n.End() * sampleRate)
		if to > out.NumFrames() {
			to = out.NumFrames()
		}
		if to-from < pitch.MinLength {
			log.Printf("note %d: too short to analyze", n.Note)
			continue
		}
		hz, err := pitch.Detect(out.Channel(0)[from:to], sampleRate)
		if err != nil {
			log.Printf("note %d: %v", n.Note, err)
			continue
		}
		log.Printf("note %d: target %.2f Hz, detected %.2f Hz", n.Note, core.NoteToHz(n.Note), hz)
	}
}
