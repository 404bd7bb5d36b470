// Package sequence provides a looping step sequencer that turns a text
// drum pattern into sample-accurate engine events.
//
// A pattern has one row per drum slot:
//
//	kick  x...x...x...x...
//	snare ....x.......x...
//	42    x.x.x.x.x.x.x.x.
//
// Rows are labelled with a slot name (see drum.ParseKind) or a General
// MIDI drum note. Cells are 'x' or 'X' for a full hit, 'o' for a soft hit
// and '.' or '-' for a rest; '|' and blanks are ignored. Lines starting
// with '#' are comments.
package sequence
