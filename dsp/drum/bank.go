package drum

import (
	"math"

	"github.com/cwbudde/algo-drums/dsp/core"
)

// Bank owns the eight slot voices and mixes them to stereo.
type Bank struct {
	voices [NumSlots]Voice
}

// NewBank returns a bank of silent voices laid out as Kinds.
func NewBank(sampleRate float64) *Bank {
	b := &Bank{}
	for i, k := range Kinds {
		b.voices[i] = NewVoice(k, sampleRate)
	}
	return b
}

// Voice returns the voice of slot i, or nil when i is out of range.
func (b *Bank) Voice(i int) *Voice {
	if i < 0 || i >= NumSlots {
		return nil
	}
	return &b.voices[i]
}

// Dispatch triggers slot i. Out-of-range slots are ignored.
func (b *Bank) Dispatch(slot int, velocity float64, sp *SlotParams, mp *MasterParams) {
	if slot < 0 || slot >= NumSlots {
		return
	}
	b.voices[slot].Trigger(velocity, sp, mp)
}

// Render produces one stereo frame from all voices.
func (b *Bank) Render(s *Snapshot) (float64, float64) {
	var l, r float64
	for i := range b.voices {
		sp := &s.Slots[i]
		y := b.voices[i].Process(sp, &s.Master)
		if y == 0 {
			continue
		}
		gl, gr := PanGains(sp.Pan)
		y *= core.Clamp(sp.Level, MinLevel, MaxLevel)
		l += y * gl
		r += y * gr
	}
	return l, r
}

// ActiveCount returns the number of voices currently sounding.
func (b *Bank) ActiveCount() int {
	n := 0
	for i := range b.voices {
		if b.voices[i].active {
			n++
		}
	}
	return n
}

// SetSampleRate updates every voice and silences them.
func (b *Bank) SetSampleRate(sampleRate float64) {
	for i := range b.voices {
		b.voices[i].SetSampleRate(sampleRate)
		b.voices[i].Reset()
	}
}

// Reset silences every voice.
func (b *Bank) Reset() {
	for i := range b.voices {
		b.voices[i].Reset()
	}
}

// PanGains returns equal-power left/right gains for pan in [-1, 1]:
// cos and sin of θ = (pan+1)/2 * π/2. Pan is clamped.
//
// Both gains are evaluated as sin(π/4 ∓ pan*π/4), which equals cos θ and
// sin θ but keeps the centre position exactly symmetric.
func PanGains(pan float64) (float64, float64) {
	phi := core.Clamp(pan, -1, 1) * (math.Pi / 4)
	return math.Sin(math.Pi/4 - phi), math.Sin(math.Pi/4 + phi)
}
