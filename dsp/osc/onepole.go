package osc

import "math"

const (
	minHighpassHz      = 200.0
	maxHighpassNyquist = 0.45
)

// OnePoleHP derives a highpass from a one-pole lowpass: the lowpass tracks
// the input and the difference is returned.
type OnePoleHP struct {
	lp float64

	// exp is the exponential used for the coefficient; nil means math.Exp.
	exp func(float64) float64
}

// NewOnePoleHP returns a filter using expFn for coefficient computation.
// Passing nil selects math.Exp.
func NewOnePoleHP(expFn func(float64) float64) OnePoleHP {
	return OnePoleHP{exp: expFn}
}

// Process filters x with cutoff clamped to [200 Hz, 0.45*sampleRate] and
// returns the highpass component.
func (f *OnePoleHP) Process(x, cutoffHz, sampleRate float64) float64 {
	fc := cutoffHz
	if hi := sampleRate * maxHighpassNyquist; fc > hi {
		fc = hi
	}
	if fc < minHighpassHz {
		fc = minHighpassHz
	}

	expFn := f.exp
	if expFn == nil {
		expFn = math.Exp
	}
	alpha := 1 - expFn(-twoPi*fc/sampleRate)
	f.lp += alpha * (x - f.lp)
	return x - f.lp
}

// State returns the internal lowpass value.
func (f *OnePoleHP) State() float64 { return f.lp }

// Reset clears the filter memory.
func (f *OnePoleHP) Reset() { f.lp = 0 }
