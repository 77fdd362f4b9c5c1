// Package glide implements the per-sample smoothing laws that move the
// formant ratio and the fundamental frequency toward their targets.
//
// Two laws are available:
//
//   - Exponential: next = target + (current-target)*coef. Converges
//     asymptotically and never overshoots for coef in [0, 1).
//   - Linear: a constant step derived from the distance between the glide's
//     base and its target, clamped so it lands exactly on the target.
//
// [Formant] and [Portamento] wrap a [Glide] with the parameter mapping used
// by the voice. Coefficients are clamped when they are set; Step never
// validates anything.
package glide
