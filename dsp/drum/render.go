package drum

import (
	"math"

	"github.com/cwbudde/algo-drums/dsp/core"
)

func (v *Voice) sine(freq float64) float64 {
	return v.body.Next(freq, v.sampleRate)
}

func (v *Voice) highpassNoise(cutoffHz float64) float64 {
	return v.hp.Process(v.noise.Sample(), cutoffHz, v.sampleRate)
}

// renderKick sweeps the body down from up to 30 semitones above base pitch,
// drives it with snap and adds a short bright click.
func (v *Voice) renderKick(env, tone, snap float64) float64 {
	sweep := 30 * (0.3 + 0.7*tone) * env * env
	body := v.sine(v.baseFreq * mathPow2(sweep/12))
	body = core.FastTanh(body * (1 + 3*snap))

	click := v.highpassNoise(4000+4000*tone) * snap * mathPow(env, 0.3)

	return body*0.9 + click*0.4
}

func (v *Voice) renderSnare(tone, snap float64) float64 {
	body := v.sine(v.baseFreq)
	noise := v.highpassNoise(2000 + 6000*tone)

	return body*0.4*(1-tone) + noise*(0.8+0.4*snap)
}

// renderClap boosts the early part of the envelope to fake a multi-burst.
func (v *Voice) renderClap(env, tone, snap float64) float64 {
	band := v.highpassNoise(800 + 1200*(1-tone))
	burst := math.Min(mathPow(env, 0.3)*(1+0.6*snap), 1.5)

	return band * burst
}

func (v *Voice) renderHatClosed(env, tone, snap float64) float64 {
	noise := v.highpassNoise(6000 + 6000*tone)

	return noise * mathPow(env, 2.5-1.5*snap) * (0.8 + 0.4*snap)
}

func (v *Voice) renderHatOpen(env, tone, snap float64) float64 {
	noise := v.highpassNoise(5000 + 5000*tone)

	return noise * mathPow(env, 1.2+0.8*snap) * (0.9 + 0.3*snap)
}

func (v *Voice) renderTom(tone float64) float64 {
	body := v.sine(v.baseFreq)
	noise := v.highpassNoise(1500 + 3000*tone)

	return body*0.9 + noise*0.3
}

// renderPerc1 is noise-led with a metallic partial above the base pitch.
func (v *Voice) renderPerc1(env, tone float64) float64 {
	noise := v.highpassNoise(2500 + 6000*tone)
	body := v.sine(v.baseFreq * (1.5 + 0.5*tone))

	return body*0.3 + noise*0.9*mathPow(env, 0.7)
}

func (v *Voice) renderPerc2(env, tone float64) float64 {
	body := v.sine(v.baseFreq * (1 + tone))
	noise := v.highpassNoise(2000 + 5000*tone)

	shape := mathPow(env, 0.9)
	return body*0.6*shape + noise*0.5*shape
}
