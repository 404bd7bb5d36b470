package dither

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Type selects the dither noise distribution.
type Type int

const (
	TypeNone       Type = iota // no dither
	TypeRectangular            // uniform, 1 LSB peak-to-peak
	TypeTriangular             // TPDF, 2 LSB peak-to-peak
)

// Valid reports whether t is a known dither type.
func (t Type) Valid() bool { return t >= TypeNone && t <= TypeTriangular }

const (
	minBitDepth = 8
	maxBitDepth = 32
)

type config struct {
	bitDepth int
	typ      Type
	shaping  Shaping
	seed     uint64
}

// Option configures a Quantizer.
type Option func(*config) error

// WithBitDepth sets the output word length (8..32, default 16).
func WithBitDepth(bits int) Option {
	return func(c *config) error {
		if bits < minBitDepth || bits > maxBitDepth {
			return fmt.Errorf("dither: bit depth must be in [%d, %d]: %d", minBitDepth, maxBitDepth, bits)
		}
		c.bitDepth = bits
		return nil
	}
}

// WithType sets the dither distribution (default TypeTriangular).
func WithType(t Type) Option {
	return func(c *config) error {
		if !t.Valid() {
			return fmt.Errorf("dither: invalid dither type: %d", t)
		}
		c.typ = t
		return nil
	}
}

// WithShaping sets the noise-shaping curve (default ShapingNone).
func WithShaping(s Shaping) Option {
	return func(c *config) error {
		if !s.Valid() {
			return fmt.Errorf("dither: invalid noise shaping: %d", s)
		}
		c.shaping = s
		return nil
	}
}

// WithSeed makes the dither noise reproducible.
func WithSeed(seed uint64) Option {
	return func(c *config) error {
		c.seed = seed
		return nil
	}
}

// Quantizer maps samples in [-1, 1] to signed integers of a given bit
// depth. One Quantizer serves one channel.
type Quantizer struct {
	bitDepth int
	typ      Type
	shaper   *shaper
	rng      *rand.Rand

	scale  float64
	lo, hi int
}

// NewQuantizer returns a 16-bit TPDF quantizer unless configured otherwise.
func NewQuantizer(opts ...Option) (*Quantizer, error) {
	cfg := config{bitDepth: 16, typ: TypeTriangular, seed: 1}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	full := math.Exp2(float64(cfg.bitDepth - 1))
	return &Quantizer{
		bitDepth: cfg.bitDepth,
		typ:      cfg.typ,
		shaper:   newShaper(cfg.shaping),
		rng:      rand.New(rand.NewPCG(cfg.seed, cfg.seed^0x9e3779b97f4a7c15)),
		scale:    full - 0.5,
		lo:       -int(full),
		hi:       int(full) - 1,
	}, nil
}

// BitDepth returns the output word length.
func (q *Quantizer) BitDepth() int { return q.bitDepth }

// Max returns the largest output value.
func (q *Quantizer) Max() int { return q.hi }

// Min returns the smallest output value.
func (q *Quantizer) Min() int { return q.lo }

// Quantize converts one sample. Results are clipped to [Min, Max].
func (q *Quantizer) Quantize(x float64) int {
	if math.IsNaN(x) {
		x = 0
	}
	shaped := q.shaper.shape(x * q.scale)

	var noise float64
	switch q.typ {
	case TypeRectangular:
		noise = q.rng.Float64() - 0.5
	case TypeTriangular:
		noise = q.rng.Float64() - q.rng.Float64()
	}

	v := int(math.Round(shaped + noise))
	v = max(q.lo, min(q.hi, v))
	q.shaper.record(float64(v) - shaped)
	return v
}

// QuantizeBlock converts src into dst, which must be at least as long.
func (q *Quantizer) QuantizeBlock(dst []int, src []float64) {
	for i, x := range src {
		dst[i] = q.Quantize(x)
	}
}

// Reset clears the noise-shaping history.
func (q *Quantizer) Reset() {
	q.shaper.reset()
}
