// Package testutil holds deterministic signals and assertions shared by the
// package tests.
package testutil

import "math"

// DeterministicSine generates a sine wave starting at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Peak returns the largest absolute value in data.
func Peak(data []float64) float64 {
	var p float64
	for _, v := range data {
		p = math.Max(p, math.Abs(v))
	}
	return p
}
