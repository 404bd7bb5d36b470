package effects

import "github.com/cwbudde/algo-drums/dsp/core"

// BypassEpsilon is the amount at or below which the bus stages pass audio
// through untouched.
const BypassEpsilon = 0.001

// Saturator is a stereo tanh drive stage with level-compensating makeup gain.
//
// For drive d in [0, 1] the input gain is 1+4d and the makeup is 1/(1+2d).
// The stage is stateless.
type Saturator struct {
	drive  float64
	gain   float64
	makeup float64
}

// NewSaturator returns a saturator with the given drive, clamped to [0, 1].
func NewSaturator(drive float64) *Saturator {
	s := &Saturator{}
	s.SetDrive(drive)
	return s
}

// SetDrive updates the drive amount, clamped to [0, 1].
func (s *Saturator) SetDrive(drive float64) {
	d := core.ClampUnit(drive)
	if d == s.drive && s.gain != 0 {
		return
	}
	s.drive = d
	s.gain = 1 + 4*d
	s.makeup = 1 / (1 + 2*d)
}

// Drive returns the current drive amount.
func (s *Saturator) Drive() float64 { return s.drive }

// Bypassed reports whether the stage is currently an identity.
func (s *Saturator) Bypassed() bool { return s.drive <= BypassEpsilon }

// ProcessSample saturates one sample.
func (s *Saturator) ProcessSample(x float64) float64 {
	if s.Bypassed() {
		return x
	}
	return core.FastTanh(x*s.gain) * s.makeup
}

// ProcessStereo saturates both channels independently.
func (s *Saturator) ProcessStereo(l, r float64) (float64, float64) {
	if s.Bypassed() {
		return l, r
	}
	return core.FastTanh(l*s.gain) * s.makeup, core.FastTanh(r*s.gain) * s.makeup
}

// ProcessInPlace saturates buf in place.
func (s *Saturator) ProcessInPlace(buf []float64) {
	if s.Bypassed() {
		return
	}
	for i, x := range buf {
		buf[i] = core.FastTanh(x*s.gain) * s.makeup
	}
}
