// Package drum implements an eight-slot one-shot percussion synthesizer.
//
// Each slot owns a single Voice of a fixed Kind (kick, snare, clap, closed
// and open hat, tom, two percussion voices). A Bank mixes the voices into a
// stereo pair with equal-power panning, a Bus applies saturation,
// compression and a small room reverb, and an Engine schedules trigger
// events with sample accuracy inside each processing block.
//
// The render path performs no allocation, takes no locks and never blocks.
// Parameters are read from a ParamSource once per frame; AtomicParams
// provides a wait-free source that can be updated from another goroutine.
//
// Voices are strictly one-shot: a new trigger restarts the slot, and there
// is no note-off handling.
package drum
