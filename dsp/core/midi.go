package core

import "math"

const (
	// ReferenceNote is the MIDI note number tuned to ReferenceHz (A4).
	ReferenceNote = 69
	// ReferenceHz is the concert pitch of ReferenceNote.
	ReferenceHz = 440.0

	// PitchWheelCenter is the 14-bit pitch wheel rest position.
	PitchWheelCenter = 8192
	// PitchWheelMax is the largest 14-bit pitch wheel value.
	PitchWheelMax = 16383
)

// NoteToHz returns the equal-tempered frequency of a MIDI note number.
// Note 0 (about 8.18 Hz) is the lowest representable note.
func NoteToHz(note int) float64 {
	return ReferenceHz * math.Pow(2, float64(note-ReferenceNote)/12)
}

// LowestNoteHz is the frequency of MIDI note 0.
func LowestNoteHz() float64 {
	return NoteToHz(0)
}

// SemitonesToRatio converts a semitone offset to a frequency ratio.
func SemitonesToRatio(semitones float64) float64 {
	return math.Pow(2, semitones/12)
}

// PitchWheelRatio maps a 14-bit pitch wheel position to a frequency ratio.
// The full wheel throw spans one octave in each direction.
func PitchWheelRatio(position int) float64 {
	if position < 0 {
		position = 0
	}
	if position > PitchWheelMax {
		position = PitchWheelMax
	}
	return math.Pow(2, float64(position-PitchWheelCenter)/PitchWheelCenter)
}
