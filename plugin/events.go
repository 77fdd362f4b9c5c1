package plugin

import "fmt"

// EventKind is the type of a MIDI event.
type EventKind int

const (
	NoteOn EventKind = iota
	NoteOff
	PitchWheel
	AllNotesOff
)

// String implements fmt.Stringer.
func (k EventKind) String() string {
	switch k {
	case NoteOn:
		return "note-on"
	case NoteOff:
		return "note-off"
	case PitchWheel:
		return "pitch-wheel"
	case AllNotesOff:
		return "all-notes-off"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a MIDI event positioned inside a block.
type Event struct {
	// Offset is the frame index inside the block at which the event applies.
	Offset int
	Kind   EventKind
	// Note is the MIDI note number for NoteOn and NoteOff.
	Note int
	// Velocity is in [0, 1]. A NoteOn with zero velocity is a NoteOff.
	Velocity float64
	// Value is the 14-bit pitch wheel position for PitchWheel.
	Value int
}

// NoteOnEvent returns a note-on at offset.
func NoteOnEvent(offset, note int, velocity float64) Event {
	return Event{Offset: offset, Kind: NoteOn, Note: note, Velocity: velocity}
}

// NoteOffEvent returns a note-off at offset.
func NoteOffEvent(offset, note int, velocity float64) Event {
	return Event{Offset: offset, Kind: NoteOff, Note: note, Velocity: velocity}
}

// PitchWheelEvent returns a pitch wheel move at offset.
func PitchWheelEvent(offset, value int) Event {
	return Event{Offset: offset, Kind: PitchWheel, Value: value}
}
