package main

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cwbudde/icebox/plugin"
)

// noteSpec is one note of the -notes list, timed in seconds.
type noteSpec struct {
	Note     int
	Start    float64
	Duration float64
}

// End returns the note-off time.
func (n noteSpec) End() float64 { return n.Start + n.Duration }

var pitchClasses = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// parseNotes parses a comma-separated list of note@start:duration items.
// Notes are MIDI numbers or names such as A4, C#3 or Eb5.
func parseNotes(s string) ([]noteSpec, error) {
	var notes []noteSpec
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		n, err := parseNoteItem(item)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	sort.SliceStable(notes, func(i, j int) bool { return notes[i].Start < notes[j].Start })
	return notes, nil
}

func parseNoteItem(item string) (noteSpec, error) {
	name, timing, ok := strings.Cut(item, "@")
	if !ok {
		return noteSpec{}, fmt.Errorf("note %q: missing @start:duration", item)
	}
	startStr, durStr, ok := strings.Cut(timing, ":")
	if !ok {
		return noteSpec{}, fmt.Errorf("note %q: missing :duration", item)
	}

	note, err := parseNoteName(name)
	if err != nil {
		return noteSpec{}, fmt.Errorf("note %q: %w", item, err)
	}
	start, err := strconv.ParseFloat(startStr, 64)
	if err != nil || start < 0 || math.IsInf(start, 0) {
		return noteSpec{}, fmt.Errorf("note %q: invalid start %q", item, startStr)
	}
	dur, err := strconv.ParseFloat(durStr, 64)
	if err != nil || !(dur > 0) || math.IsInf(dur, 0) {
		return noteSpec{}, fmt.Errorf("note %q: invalid duration %q", item, durStr)
	}
	return noteSpec{Note: note, Start: start, Duration: dur}, nil
}

func parseNoteName(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty note")
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 127 {
			return 0, fmt.Errorf("MIDI note out of range: %d", n)
		}
		return n, nil
	}

	pc, ok := pitchClasses[strings.ToUpper(s[:1])[0]]
	if !ok {
		return 0, fmt.Errorf("unknown note name %q", s)
	}
	rest := s[1:]
	switch {
	case strings.HasPrefix(rest, "#"):
		pc++
		rest = rest[1:]
	case strings.HasPrefix(rest, "b"):
		pc--
		rest = rest[1:]
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("unknown note name %q", s)
	}
	n := 12*(octave+1) + pc
	if n < 0 || n > 127 {
		return 0, fmt.Errorf("note %q out of MIDI range", s)
	}
	return n, nil
}

// timedEvent is a plugin event at an absolute frame.
type timedEvent struct {
	Frame int
	Event plugin.Event
}

// schedule converts notes to note-on/note-off events at sampleRate. At equal
// frames note-offs sort before note-ons.
func schedule(notes []noteSpec, sampleRate float64) []timedEvent {
	events := make([]timedEvent, 0, 2*len(notes))
	for _, n := range notes {
		on := int(math.Round(n.Start * sampleRate))
		off := int(math.Round(n.End() * sampleRate))
		if off <= on {
			off = on + 1
		}
		events = append(events,
			timedEvent{Frame: on, Event: plugin.NoteOnEvent(0, n.Note, 1)},
			timedEvent{Frame: off, Event: plugin.NoteOffEvent(0, n.Note, 0)},
		)
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Frame != events[j].Frame {
			return events[i].Frame < events[j].Frame
		}
		return events[i].Event.Kind == plugin.NoteOff && events[j].Event.Kind != plugin.NoteOff
	})
	return events
}
