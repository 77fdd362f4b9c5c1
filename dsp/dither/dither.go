// Package dither converts normalized float samples to signed PCM integers
// with optional dither noise.
package dither

import "fmt"

// DitherType selects the probability distribution used for dither noise.
type DitherType int

const (
	// DitherNone rounds to the nearest step.
	DitherNone DitherType = iota
	// DitherRectangular adds uniform noise of one step peak.
	DitherRectangular
	// DitherTriangular adds triangular noise (TPDF), the usual choice.
	DitherTriangular

	ditherTypeCount
)

var ditherTypeNames = [ditherTypeCount]string{"none", "rectangular", "triangular"}

// String returns the name of the dither type.
func (dt DitherType) String() string {
	if dt.Valid() {
		return ditherTypeNames[dt]
	}
	return fmt.Sprintf("DitherType(%d)", int(dt))
}

// Valid reports whether dt is a known dither type.
func (dt DitherType) Valid() bool {
	return dt >= 0 && dt < ditherTypeCount
}

// ParseDitherType resolves a name produced by String.
func ParseDitherType(name string) (DitherType, error) {
	for i, n := range ditherTypeNames {
		if n == name {
			return DitherType(i), nil
		}
	}
	return 0, fmt.Errorf("dither: unknown type %q", name)
}
