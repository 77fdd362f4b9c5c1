// Package voice implements the monophonic capture-and-replay synthesis voice.
//
// The voice continuously records its input into two rolling capture buffers.
// At note-on it freezes the captured window into a stereo wavetable and loops
// it with a resampling oscillator whose period follows the MIDI note (with
// optional portamento) while its read rate follows the formant glide. An ADSR
// envelope gates the synthesized signal, which is blended with the dry input.
//
// All buffers are sized by New and Prepare; NoteOn, NoteOff and Render do not
// allocate.
package voice
