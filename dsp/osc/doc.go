// Package osc provides the small sound sources used by the drum voices:
// a deterministic LCG noise generator, a phase-accumulating sine oscillator,
// and a one-pole highpass used to band-limit noise.
//
// Every type is a plain value with no hidden allocation, so it can be
// embedded in per-voice state and advanced from a real-time callback.
package osc
