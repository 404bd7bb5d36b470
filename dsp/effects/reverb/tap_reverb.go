package reverb

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-drums/dsp/core"
	"github.com/cwbudde/algo-drums/dsp/delay"
)

const (
	tapReverbMaxSeconds = 0.25
	tapReverbFeedback   = 0.4
	tapReverbDryDuck    = 0.6
	tapReverbBypass     = 0.001

	tapReverbPrimaryWeight   = 0.7
	tapReverbSecondaryWeight = 0.3
)

// Tap times in seconds for a small-room feel.
var (
	tapReverbLeftTaps  = [2]float64{0.031, 0.053}
	tapReverbRightTaps = [2]float64{0.037, 0.061}
)

// TapReverb is a compact stereo multi-tap feedback delay used as a room send
// on a drum bus.
//
// The stereo input is summed to mono and fed into two circular buffers of
// about 250 ms. Each output channel reads two taps (0.7/0.3 weighted) as its
// wet signal, which is also fed back into its buffer at 0.4. The output is
// dry*(1-0.6*amount) + wet*amount.
//
// Amounts at or below 0.001 bypass the stage without writing to the buffers.
type TapReverb struct {
	sampleRate float64
	amount     float64
	feedback   float64

	left  *delay.Line
	right *delay.Line

	leftTaps  [2]int
	rightTaps [2]int
}

// NewTapReverb creates a tap reverb for sampleRate.
func NewTapReverb(sampleRate float64) (*TapReverb, error) {
	r := &TapReverb{feedback: tapReverbFeedback}
	if err := r.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}
	return r, nil
}

// SetSampleRate reallocates the delay buffers for sampleRate and clears them.
// It must not be called concurrently with processing.
func (r *TapReverb) SetSampleRate(sampleRate float64) error {
	if !core.ValidSampleRate(sampleRate) {
		return fmt.Errorf("tap reverb sample rate must be positive and finite: %f", sampleRate)
	}

	size := int(math.Max(math.Round(sampleRate*tapReverbMaxSeconds), 1))
	left, err := delay.New(size)
	if err != nil {
		return fmt.Errorf("tap reverb: %w", err)
	}
	right, err := delay.New(size)
	if err != nil {
		return fmt.Errorf("tap reverb: %w", err)
	}

	r.sampleRate = sampleRate
	r.left = left
	r.right = right
	for i := range r.leftTaps {
		r.leftTaps[i] = tapSamples(tapReverbLeftTaps[i], sampleRate, size)
		r.rightTaps[i] = tapSamples(tapReverbRightTaps[i], sampleRate, size)
	}
	return nil
}

func tapSamples(seconds, sampleRate float64, size int) int {
	return min(int(seconds*sampleRate), size-1)
}

// SetAmount sets the send amount, clamped to [0, 1].
func (r *TapReverb) SetAmount(amount float64) {
	r.amount = core.ClampUnit(amount)
}

// Amount returns the current send amount.
func (r *TapReverb) Amount() float64 { return r.amount }

// Feedback returns the fixed feedback coefficient.
func (r *TapReverb) Feedback() float64 { return r.feedback }

// SampleRate returns the configured sample rate.
func (r *TapReverb) SampleRate() float64 { return r.sampleRate }

// BufferLen returns the length of each delay buffer in samples.
func (r *TapReverb) BufferLen() int { return r.left.Len() }

// Taps returns the tap delays in samples for the left and right channel.
func (r *TapReverb) Taps() (left, right [2]int) { return r.leftTaps, r.rightTaps }

// ProcessStereo processes one stereo frame.
func (r *TapReverb) ProcessStereo(l, r2 float64) (float64, float64) {
	amt := r.amount
	if amt <= tapReverbBypass {
		return l, r2
	}

	mono := (l + r2) * 0.5

	wetL := tapReverbPrimaryWeight*r.left.Read(r.leftTaps[0]) +
		tapReverbSecondaryWeight*r.left.Read(r.leftTaps[1])
	wetR := tapReverbPrimaryWeight*r.right.Read(r.rightTaps[0]) +
		tapReverbSecondaryWeight*r.right.Read(r.rightTaps[1])

	r.left.Write(core.FlushDenormals(core.Finite(mono + wetL*r.feedback)))
	r.right.Write(core.FlushDenormals(core.Finite(mono + wetR*r.feedback)))

	dry := 1 - amt*tapReverbDryDuck
	return l*dry + wetL*amt, r2*dry + wetR*amt
}

// ProcessInPlace processes planar stereo buffers in place. Only the common
// length of left and right is processed.
func (r *TapReverb) ProcessInPlace(left, right []float64) {
	n := min(len(left), len(right))
	for i := 0; i < n; i++ {
		left[i], right[i] = r.ProcessStereo(left[i], right[i])
	}
}

// Reset clears both delay buffers.
func (r *TapReverb) Reset() {
	r.left.Reset()
	r.right.Reset()
}
