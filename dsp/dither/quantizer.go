package dither

import (
	"math"
	"math/rand/v2"
)

// Quantizer maps samples in [-1, 1] onto signed integers of a fixed bit
// depth. It is not safe for concurrent use.
type Quantizer struct {
	bitDepth        int
	ditherType      DitherType
	ditherAmplitude float64
	rng             *rand.Rand

	scale float64
	lo    int
	hi    int
}

// NewQuantizer creates a Quantizer. The default is 16-bit with triangular
// dither of one step.
func NewQuantizer(opts ...Option) (*Quantizer, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	q := &Quantizer{
		bitDepth:        cfg.bitDepth,
		ditherType:      cfg.ditherType,
		ditherAmplitude: cfg.ditherAmplitude,
		rng:             cfg.rng,
	}
	if q.rng == nil {
		q.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	q.scale = math.Exp2(float64(q.bitDepth - 1))
	q.lo = -int(q.scale)
	q.hi = int(q.scale) - 1
	return q, nil
}

// BitDepth returns the target bit depth.
func (q *Quantizer) BitDepth() int { return q.bitDepth }

// DitherType returns the dither noise type.
func (q *Quantizer) DitherType() DitherType { return q.ditherType }

// Scale returns the integer value of full scale.
func (q *Quantizer) Scale() float64 { return q.scale }

// Quantize converts one sample. The result is clipped to the bit-depth range;
// NaN maps to zero.
func (q *Quantizer) Quantize(x float64) int {
	if math.IsNaN(x) {
		return 0
	}
	v := math.Round(x*q.scale + q.noise())
	if v < float64(q.lo) {
		return q.lo
	}
	if v > float64(q.hi) {
		return q.hi
	}
	return int(v)
}

// QuantizeTo converts src into dst and returns the number of samples written.
func (q *Quantizer) QuantizeTo(dst []int, src []float64) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] = q.Quantize(src[i])
	}
	return n
}

// ToFloat converts a quantized integer back to [-1, 1).
func (q *Quantizer) ToFloat(v int) float64 {
	return float64(v) / q.scale
}

func (q *Quantizer) noise() float64 {
	switch q.ditherType {
	case DitherRectangular:
		return q.ditherAmplitude * (q.rng.Float64() - 0.5)
	case DitherTriangular:
		return q.ditherAmplitude * (q.rng.Float64() - q.rng.Float64())
	default:
		return 0
	}
}
