package pitch

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/icebox/dsp/window"
)

// MinLength is the shortest signal Detect accepts.
const MinLength = 64

// ErrSilent is returned when the signal carries no energy.
var ErrSilent = errors.New("pitch: signal is silent")

// Result is a frequency estimate.
type Result struct {
	Frequency float64
	// Magnitude is the linear spectral magnitude of the peak bin.
	Magnitude float64
	// Bin is the fractional FFT bin of the peak.
	Bin     float64
	FFTSize int
}

// Detect returns the frequency of the strongest spectral peak in signal.
func Detect(signal []float64, sampleRate float64) (float64, error) {
	r, err := Analyze(signal, sampleRate)
	if err != nil {
		return 0, err
	}
	return r.Frequency, nil
}

// Analyze removes the mean, windows signal with a Hann window, zero-pads it to a power of two
// and refines the largest non-DC bin by parabolic interpolation of the log
// magnitude.
func Analyze(signal []float64, sampleRate float64) (Result, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return Result{}, fmt.Errorf("pitch: sample rate must be positive and finite: %f", sampleRate)
	}
	if len(signal) < MinLength {
		return Result{}, fmt.Errorf("pitch: signal too short: %d < %d", len(signal), MinLength)
	}

	fftSize := nextPow2(len(signal))
	coeffs := window.Generate(window.TypeHann, len(signal))

	mean := 0.0
	for _, s := range signal {
		mean += s
	}
	mean /= float64(len(signal))

	in := make([]complex128, fftSize)
	for i, s := range signal {
		in[i] = complex((s-mean)*coeffs[i], 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Result{}, fmt.Errorf("pitch: fft plan: %w", err)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Result{}, fmt.Errorf("pitch: fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range re {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}
	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	peak := 1
	for k := 2; k < bins; k++ {
		if mag[k] > mag[peak] {
			peak = k
		}
	}
	if !(mag[peak] > 0) {
		return Result{}, ErrSilent
	}

	bin := float64(peak)
	if peak < bins-1 {
		bin += parabolicOffset(mag[peak-1], mag[peak], mag[peak+1])
	}

	return Result{
		Frequency: bin * sampleRate / float64(fftSize),
		Magnitude: mag[peak],
		Bin:       bin,
		FFTSize:   fftSize,
	}, nil
}

// parabolicOffset fits a parabola through three log magnitudes and returns
// the vertex offset from the centre bin, in [-0.5, 0.5].
func parabolicOffset(left, centre, right float64) float64 {
	const floor = 1e-300
	a := math.Log(math.Max(left, floor))
	b := math.Log(math.Max(centre, floor))
	c := math.Log(math.Max(right, floor))
	den := a - 2*b + c
	if den == 0 {
		return 0
	}
	d := 0.5 * (a - c) / den
	return math.Max(-0.5, math.Min(0.5, d))
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
