// Package plugin is the host-facing layer around the synthesis voice: the
// parameter table, lock-free parameter storage written by a UI or automation
// goroutine, the once-per-block change detection that pushes parameter
// changes into the voice, the persisted preset format, and the block
// dispatcher that feeds input into the capture buffers and splits rendering
// at MIDI events.
package plugin
