package window

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
)

// String implements fmt.Stringer.
func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "rectangular"
	case TypeHann:
		return "hann"
	case TypeHamming:
		return "hamming"
	case TypeBlackman:
		return "blackman"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic generates the periodic (DFT-even) form instead of the
// symmetric one.
func WithPeriodic() Option {
	return func(c *config) { c.periodic = true }
}

var cosineTerms = map[Type][]float64{
	TypeRectangular: {1},
	TypeHann:        {0.5, -0.5},
	TypeHamming:     {0.54, -0.46},
	TypeBlackman:    {0.42, -0.5, 0.08},
}

// Generate returns length coefficients of window t. Unknown types yield a
// rectangular window.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	terms, ok := cosineTerms[t]
	if !ok {
		terms = cosineTerms[TypeRectangular]
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = cosineSum(samplePosition(i, length, cfg.periodic), terms)
	}
	return out
}

// Apply multiplies buf in place by window t.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}
	vecmath.MulBlockInPlace(buf, Generate(t, len(buf), opts...))
}

// CoherentGain returns the mean of the coefficients, the factor by which
// the window scales the amplitude of a bin-centred sinusoid.
func CoherentGain(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}
	return sum / float64(len(coeffs))
}

func cosineSum(x float64, terms []float64) float64 {
	phase := 2 * math.Pi * x
	sum := 0.0
	for k, c := range terms {
		sum += c * math.Cos(float64(k)*phase)
	}
	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}
	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}
	return float64(n) / den
}
