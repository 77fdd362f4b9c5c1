// Package level computes time-domain level statistics of rendered audio.
package level

import "math"

// Stats holds level statistics of one channel.
//
//nolint:revive
type Stats struct {
	Length        int
	DC            float64 // mean
	RMS           float64
	RMS_dB        float64
	Peak          float64 // max |x|
	PeakPos       int
	Peak_dB       float64
	CrestFactor   float64 // peak / RMS
	ZeroCrossings int
}

// AmpToDB converts an amplitude to decibels, -Inf for zero.
func AmpToDB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(a)
}

// Calculate computes all statistics in one pass.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return Stats{RMS_dB: math.Inf(-1), Peak_dB: math.Inf(-1)}
	}

	var sum, sumSq, peak float64
	peakPos, crossings := 0, 0
	for i, x := range signal {
		sum += x
		sumSq += x * x
		if a := math.Abs(x); a > peak {
			peak = a
			peakPos = i
		}
		if i > 0 && (signal[i-1] < 0) != (x < 0) {
			crossings++
		}
	}

	rms := math.Sqrt(sumSq / float64(n))
	crest := 0.0
	if rms > 0 {
		crest = peak / rms
	}
	return Stats{
		Length:        n,
		DC:            sum / float64(n),
		RMS:           rms,
		RMS_dB:        AmpToDB(rms),
		Peak:          peak,
		PeakPos:       peakPos,
		Peak_dB:       AmpToDB(peak),
		CrestFactor:   crest,
		ZeroCrossings: crossings,
	}
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}
	return math.Sqrt(sumSq / float64(len(signal)))
}

// Peak returns the largest absolute sample.
func Peak(signal []float64) float64 {
	peak := 0.0
	for _, x := range signal {
		peak = math.Max(peak, math.Abs(x))
	}
	return peak
}
