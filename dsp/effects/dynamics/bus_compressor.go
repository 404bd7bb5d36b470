package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-drums/dsp/core"
)

const (
	busCompAttackMs   = 5.0
	busCompReleaseMs  = 80.0
	busCompThreshold  = -12.0
	busCompGainSmooth = 0.5
	busCompFloor      = 1e-8
	busCompBypass     = 0.001
)

// BusCompressor is a stereo-linked glue compressor for a drum bus.
//
// A single amount control in [0, 1] maps to a ratio of 1+3*amount above a
// fixed -12 dB threshold. Detection runs on max(|l|, |r|) with 5 ms attack
// and 80 ms release; the resulting gain is smoothed with a 0.5 pole and
// applied to both channels. Gain never exceeds unity, so the compressor
// cannot raise the level of the signal.
//
// Amounts at or below 0.001 bypass the stage without touching its state.
type BusCompressor struct {
	sampleRate float64
	amount     float64
	ratio      float64

	envelope   float64
	gainSmooth float64

	attackCoeff  float64
	releaseCoeff float64
}

// NewBusCompressor creates a bus compressor. Sample rate must be positive and
// finite.
func NewBusCompressor(sampleRate float64) (*BusCompressor, error) {
	if !core.ValidSampleRate(sampleRate) {
		return nil, fmt.Errorf("bus compressor sample rate must be positive and finite: %f", sampleRate)
	}

	c := &BusCompressor{
		sampleRate: sampleRate,
		gainSmooth: 1,
		ratio:      1,
	}
	c.updateTimeConstants()
	return c, nil
}

// SetSampleRate updates the sample rate and recomputes attack/release.
func (c *BusCompressor) SetSampleRate(sampleRate float64) error {
	if !core.ValidSampleRate(sampleRate) {
		return fmt.Errorf("bus compressor sample rate must be positive and finite: %f", sampleRate)
	}
	c.sampleRate = sampleRate
	c.updateTimeConstants()
	return nil
}

// SetAmount sets the compression amount, clamped to [0, 1].
func (c *BusCompressor) SetAmount(amount float64) {
	c.amount = core.ClampUnit(amount)
	c.ratio = 1 + 3*c.amount
}

// Amount returns the current compression amount.
func (c *BusCompressor) Amount() float64 { return c.amount }

// Ratio returns the compression ratio implied by the amount.
func (c *BusCompressor) Ratio() float64 { return c.ratio }

// SampleRate returns the current sample rate.
func (c *BusCompressor) SampleRate() float64 { return c.sampleRate }

// Envelope returns the detector state.
func (c *BusCompressor) Envelope() float64 { return c.envelope }

// Gain returns the smoothed linear gain most recently applied.
func (c *BusCompressor) Gain() float64 { return c.gainSmooth }

// GainReduction returns the current gain reduction in dB (<= 0).
func (c *BusCompressor) GainReduction() float64 {
	return core.LinearToDB(c.gainSmooth)
}

// ProcessStereo compresses one stereo frame.
func (c *BusCompressor) ProcessStereo(l, r float64) (float64, float64) {
	if c.amount <= busCompBypass {
		return l, r
	}

	target := core.Finite(math.Max(math.Abs(l), math.Abs(r)))
	if target > c.envelope {
		c.envelope = c.attackCoeff*c.envelope + (1-c.attackCoeff)*target
	} else {
		c.envelope = c.releaseCoeff*c.envelope + (1-c.releaseCoeff)*target
	}

	levelDB := 20 * math.Log10(math.Max(c.envelope, busCompFloor))

	gainDB := 0.0
	if levelDB > busCompThreshold {
		over := levelDB - busCompThreshold
		gainDB = over/c.ratio - over
	}

	targetGain := core.DBToLinear(gainDB)
	c.gainSmooth = c.gainSmooth*busCompGainSmooth + targetGain*(1-busCompGainSmooth)

	g := c.gainSmooth
	return l * g, r * g
}

// ProcessInPlace compresses planar stereo buffers in place. Only the common
// length of left and right is processed.
func (c *BusCompressor) ProcessInPlace(left, right []float64) {
	n := min(len(left), len(right))
	for i := 0; i < n; i++ {
		left[i], right[i] = c.ProcessStereo(left[i], right[i])
	}
}

// Reset clears detector and gain state.
func (c *BusCompressor) Reset() {
	c.envelope = 0
	c.gainSmooth = 1
}

func (c *BusCompressor) updateTimeConstants() {
	c.attackCoeff = core.TimeConstantCoeff(busCompAttackMs, c.sampleRate)
	c.releaseCoeff = core.TimeConstantCoeff(busCompReleaseMs, c.sampleRate)
}
