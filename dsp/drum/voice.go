package drum

import (
	"math"

	"github.com/cwbudde/algo-drums/dsp/core"
	"github.com/cwbudde/algo-drums/dsp/osc"
)

const (
	// silenceThreshold ends a hit once the envelope falls below it (-80 dB).
	silenceThreshold = 1e-4

	minDecayMs  = 5.0
	minDecaySec = 0.001

	minBodyHz = 20.0
	maxBodyHz = 12000.0

	humanAmpDepth   = 0.15
	humanPitchDepth = 3.0 // semitones
	humanDecayDepth = 0.5

	initialDecayCoef = 0.999
	initialBaseFreq  = 100.0
)

// Voice is the single one-shot voice of a drum slot.
//
// A Voice is not safe for concurrent use. Trigger and Process never allocate
// and never fail.
type Voice struct {
	kind       Kind
	sampleRate float64

	active    bool
	env       float64
	decayCoef float64
	velocity  float64

	noise osc.Noise
	hp    osc.OnePoleHP
	body  osc.Sine

	baseFreq float64

	humanAmp      float64
	humanPitch    float64
	humanDecayMul float64
}

// NewVoice returns a silent voice of kind k. Sample rates below 1 are
// raised to 1.
func NewVoice(k Kind, sampleRate float64) Voice {
	v := Voice{kind: k}
	v.SetSampleRate(sampleRate)
	v.Reset()
	return v
}

// SetSampleRate updates the rate used by subsequent triggers and renders.
func (v *Voice) SetSampleRate(sampleRate float64) {
	if !(sampleRate >= 1) || math.IsInf(sampleRate, 0) {
		sampleRate = 1
	}
	v.sampleRate = sampleRate
}

// Reset returns the voice to its freshly constructed, silent state.
func (v *Voice) Reset() {
	v.active = false
	v.env = 0
	v.decayCoef = initialDecayCoef
	v.velocity = 0
	v.noise = osc.NewNoise(osc.DefaultSeed)
	v.hp = osc.NewOnePoleHP(mathExp)
	v.body.Reset()
	v.baseFreq = initialBaseFreq
	v.humanAmp = 1
	v.humanPitch = 0
	v.humanDecayMul = 1
}

// Trigger starts a new hit, discarding whatever the voice was playing.
func (v *Voice) Trigger(velocity float64, slot *SlotParams, master *MasterParams) {
	v.active = true
	v.env = 1
	v.hp.Reset()

	shape := 0.5 + core.ClampUnit(master.VelocityCurve)
	v.velocity = math.Pow(core.ClampUnit(velocity), shape)

	v.noise.Advance()

	if h := core.ClampUnit(slot.Humanize); h > 0 {
		r1 := v.noise.Bipolar()
		r2 := v.noise.Bipolar()
		r3 := v.noise.Bipolar()
		v.humanAmp = 1 + r1*humanAmpDepth*h
		v.humanPitch = r2 * humanPitchDepth * h
		v.humanDecayMul = 1 + r3*humanDecayDepth*h
	} else {
		v.humanAmp = 1
		v.humanPitch = 0
		v.humanDecayMul = 1
	}

	decaySec := decayMs(slot.DecayMs) / 1000 * v.humanDecayMul
	tau := math.Max(decaySec, minDecaySec)
	v.decayCoef = math.Exp(-1 / (tau * v.sampleRate))

	offset := slot.Pitch + master.KitPitch + v.humanPitch
	v.baseFreq = core.Clamp(v.kind.BaseFreq()*math.Exp2(offset/12), minBodyHz, maxBodyHz)
	v.body.Reset()
}

// decayMs floors the decay time at minDecayMs. NaN takes the floor and
// +Inf the longest legal decay, so the envelope always ends.
func decayMs(ms float64) float64 {
	switch {
	case !(ms >= minDecayMs):
		return minDecayMs
	case math.IsInf(ms, 1):
		return MaxDecayMs
	}
	return ms
}

// Process renders one sample. An inactive voice returns 0 without touching
// its state.
func (v *Voice) Process(slot *SlotParams, master *MasterParams) float64 {
	if !v.active {
		return 0
	}

	v.env *= v.decayCoef
	if v.env < silenceThreshold {
		v.env = 0
		v.active = false
		return 0
	}

	env := v.env
	tone := core.ClampUnit(slot.Tone)
	snap := core.ClampUnit(slot.Snap)

	var raw float64
	switch v.kind {
	case Kick:
		raw = v.renderKick(env, tone, snap)
	case Snare:
		raw = v.renderSnare(tone, snap)
	case Clap:
		raw = v.renderClap(env, tone, snap)
	case HatClosed:
		raw = v.renderHatClosed(env, tone, snap)
	case HatOpen:
		raw = v.renderHatOpen(env, tone, snap)
	case Tom:
		raw = v.renderTom(tone)
	case Perc1:
		raw = v.renderPerc1(env, tone)
	case Perc2:
		raw = v.renderPerc2(env, tone)
	}

	out := core.FastTanh(raw * env * v.velocity * v.humanAmp)
	return core.FlushDenormals(out)
}

// Kind returns the synthesis algorithm of the voice.
func (v *Voice) Kind() Kind { return v.kind }

// SampleRate returns the current sample rate.
func (v *Voice) SampleRate() float64 { return v.sampleRate }

// Active reports whether a hit is still sounding.
func (v *Voice) Active() bool { return v.active }

// Envelope returns the current amplitude envelope value.
func (v *Voice) Envelope() float64 { return v.env }

// DecayCoef returns the per-sample envelope multiplier of the current hit.
func (v *Voice) DecayCoef() float64 { return v.decayCoef }

// Velocity returns the curve-shaped velocity of the current hit.
func (v *Voice) Velocity() float64 { return v.velocity }

// BaseFreq returns the body pitch of the current hit in Hz.
func (v *Voice) BaseFreq() float64 { return v.baseFreq }

// Humanization returns the per-hit amplitude multiplier, pitch offset in
// semitones and decay multiplier.
func (v *Voice) Humanization() (amp, pitch, decayMul float64) {
	return v.humanAmp, v.humanPitch, v.humanDecayMul
}

// NoiseState returns the voice's generator state.
func (v *Voice) NoiseState() uint32 { return v.noise.State() }
