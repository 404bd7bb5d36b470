package dither

import "fmt"

// Shaping selects an error-feedback noise-shaping curve.
type Shaping int

const (
	ShapingNone Shaping = iota // plain requantisation
	ShapingEFB                 // first-order error feedback
	Shaping2SC                 // simple second-order highpass
	Shaping3FC                 // F-weighted, third order
	Shaping9FC                 // F-weighted, ninth order

	shapingCount
)

var shapingNames = [shapingCount]string{"none", "efb", "2sc", "3fc", "9fc"}

var shapingCoeffs = [shapingCount][]float64{
	ShapingNone: nil,
	ShapingEFB:  {1},
	Shaping2SC:  {1.0, -0.5},
	Shaping3FC:  {1.623, -0.982, 0.109},
	Shaping9FC:  {2.412, -3.370, 3.937, -4.174, 3.353, -2.205, 1.281, -0.569, 0.0847},
}

func (s Shaping) String() string {
	if s.Valid() {
		return shapingNames[s]
	}
	return fmt.Sprintf("Shaping(%d)", int(s))
}

// Valid reports whether s is a known curve.
func (s Shaping) Valid() bool { return s >= 0 && s < shapingCount }

// ParseShaping resolves a curve by its String name.
func ParseShaping(name string) (Shaping, error) {
	for i, n := range shapingNames {
		if n == name {
			return Shaping(i), nil
		}
	}
	return 0, fmt.Errorf("dither: unknown noise shaping %q", name)
}

// shaper subtracts weighted past quantisation errors from the input.
type shaper struct {
	coeffs  []float64
	history []float64
	pos     int
}

func newShaper(s Shaping) *shaper {
	c := shapingCoeffs[s]
	return &shaper{coeffs: c, history: make([]float64, len(c))}
}

func (s *shaper) shape(x float64) float64 {
	n := len(s.coeffs)
	if n == 0 {
		return x
	}
	for i, c := range s.coeffs {
		x -= c * s.history[(n+s.pos-i)%n]
	}
	s.pos = (s.pos + 1) % n
	return x
}

// record stores the error of the sample just shaped.
func (s *shaper) record(err float64) {
	if len(s.history) > 0 {
		s.history[s.pos] = err
	}
}

func (s *shaper) reset() {
	clear(s.history)
	s.pos = 0
}
