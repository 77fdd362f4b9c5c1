// Package pitch estimates the dominant frequency of a signal from its
// windowed magnitude spectrum.
package pitch
