package voice

import (
	"github.com/cwbudde/icebox/dsp/capture"
	"github.com/cwbudde/icebox/dsp/interp"
)

// Config holds construction-time settings.
type Config struct {
	// CaptureSize is the capture window and wavetable length per channel.
	CaptureSize int
	// Interpolation selects the oscillator kernel.
	Interpolation interp.Mode
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a one second (at 96 kHz) linear-interpolating voice.
func DefaultConfig() Config {
	return Config{
		CaptureSize:   capture.DefaultSize,
		Interpolation: interp.Linear,
	}
}

// WithCaptureSize sets the capture window length in samples.
func WithCaptureSize(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.CaptureSize = n
		}
	}
}

// WithInterpolation selects the oscillator interpolation kernel.
func WithInterpolation(mode interp.Mode) Option {
	return func(cfg *Config) {
		cfg.Interpolation = mode
	}
}

func applyOptions(opts []Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
