package osc

import "math"

const twoPi = 2 * math.Pi

// Sine is a phase-accumulating sine oscillator. The frequency is supplied
// per call so callers can sweep it sample by sample.
type Sine struct {
	phase float64
}

// Next advances the phase by one sample of freq at sampleRate and returns
// sin(phase). The phase is kept in [0, 2π).
func (s *Sine) Next(freq, sampleRate float64) float64 {
	s.phase += twoPi * freq / sampleRate
	if s.phase >= twoPi {
		s.phase -= twoPi
		if s.phase >= twoPi {
			s.phase = math.Mod(s.phase, twoPi)
		}
	} else if s.phase < 0 {
		s.phase = math.Mod(s.phase, twoPi) + twoPi
	}
	return math.Sin(s.phase)
}

// Phase returns the current phase in radians.
func (s *Sine) Phase() float64 { return s.phase }

// Reset sets the phase back to zero.
func (s *Sine) Reset() { s.phase = 0 }
