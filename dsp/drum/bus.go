package drum

import (
	"fmt"

	"github.com/cwbudde/algo-drums/dsp/core"
	"github.com/cwbudde/algo-drums/dsp/effects"
	"github.com/cwbudde/algo-drums/dsp/effects/dynamics"
	"github.com/cwbudde/algo-drums/dsp/effects/reverb"
)

// Bus is the master chain: saturation, then compression, then reverb.
// A stage whose amount is at or below 0.001 passes audio through unchanged.
type Bus struct {
	sat  *effects.Saturator
	comp *dynamics.BusCompressor
	rev  *reverb.TapReverb
}

// NewBus builds a master bus for sampleRate.
func NewBus(sampleRate float64) (*Bus, error) {
	comp, err := dynamics.NewBusCompressor(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("drum bus: %w", err)
	}
	rev, err := reverb.NewTapReverb(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("drum bus: %w", err)
	}
	return &Bus{
		sat:  effects.NewSaturator(0),
		comp: comp,
		rev:  rev,
	}, nil
}

// Process runs one stereo frame through the chain using the amounts in m.
// Non-finite input is replaced by silence so the stage state stays usable.
func (b *Bus) Process(l, r float64, m *MasterParams) (float64, float64) {
	l, r = core.Finite(l), core.Finite(r)

	b.sat.SetDrive(m.Drive)
	l, r = b.sat.ProcessStereo(l, r)

	b.comp.SetAmount(m.Comp)
	l, r = b.comp.ProcessStereo(l, r)

	b.rev.SetAmount(m.Reverb)
	return b.rev.ProcessStereo(l, r)
}

// GainReduction returns the compressor's current gain reduction in dB.
func (b *Bus) GainReduction() float64 {
	return b.comp.GainReduction()
}

// SetSampleRate recomputes rate-dependent coefficients, reallocates the
// reverb buffers and clears all state.
func (b *Bus) SetSampleRate(sampleRate float64) error {
	if err := b.comp.SetSampleRate(sampleRate); err != nil {
		return fmt.Errorf("drum bus: %w", err)
	}
	if err := b.rev.SetSampleRate(sampleRate); err != nil {
		return fmt.Errorf("drum bus: %w", err)
	}
	b.comp.Reset()
	return nil
}

// Reset clears compressor and reverb state.
func (b *Bus) Reset() {
	b.comp.Reset()
	b.rev.Reset()
}
