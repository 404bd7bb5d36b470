package osc

import "math"

const (
	lcgMul = 1664525
	lcgAdd = 1013904223

	// noiseScale is the amplitude of Noise.Sample.
	noiseScale = 0.7

	// DefaultSeed is the state a fresh generator starts from.
	DefaultSeed uint32 = 1
)

// Noise is a 32-bit linear congruential generator.
//
// The same seed and the same call sequence always yield bit-identical output.
type Noise struct {
	state uint32
}

// NewNoise returns a generator seeded with seed.
func NewNoise(seed uint32) Noise {
	return Noise{state: seed}
}

// Seed resets the generator state.
func (n *Noise) Seed(seed uint32) { n.state = seed }

// State returns the current generator state.
func (n *Noise) State() uint32 { return n.state }

// Advance steps the generator once without producing a value.
func (n *Noise) Advance() {
	n.state = n.state*lcgMul + lcgAdd
}

// Bipolar advances the generator and returns a value in [-1, 1).
// The top 23 bits of the state become the mantissa of a float32 in [1, 2).
func (n *Noise) Bipolar() float64 {
	n.Advance()
	f := math.Float32frombits(0x3F800000|(n.state>>9)) - 1
	return float64(f)*2 - 1
}

// Sample returns one white-noise sample scaled to ±0.7.
func (n *Noise) Sample() float64 {
	return n.Bipolar() * noiseScale
}
