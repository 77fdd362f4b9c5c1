// Package interp provides the fractional-index interpolation kernels used by
// the wavetable oscillator.
//
// Available methods, from cheapest to highest quality:
//
//   - [Linear2]:  2-point linear interpolation (reference behaviour)
//   - [Hermite4]: 4-point cubic Hermite
//
// The [Mode] enum selects a kernel at construction time.
package interp
