package dither

import (
	"math"
	"testing"
)

func TestNewQuantizerValidation(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"bit depth low", []Option{WithBitDepth(4)}},
		{"bit depth high", []Option{WithBitDepth(33)}},
		{"bad type", []Option{WithType(Type(7))}},
		{"bad shaping", []Option{WithShaping(Shaping(-1))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewQuantizer(tt.opts...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestQuantizerRange(t *testing.T) {
	for _, bits := range []int{16, 24} {
		q, err := NewQuantizer(WithBitDepth(bits), WithType(TypeNone), nil)
		if err != nil {
			t.Fatal(err)
		}
		full := 1 << (bits - 1)
		if q.Min() != -full || q.Max() != full-1 || q.BitDepth() != bits {
			t.Fatalf("%d bits: range [%d, %d]", bits, q.Min(), q.Max())
		}
		if q.Quantize(2) != q.Max() || q.Quantize(-2) != q.Min() {
			t.Fatalf("%d bits: out-of-range input not clipped", bits)
		}
		if q.Quantize(0) != 0 || q.Quantize(math.NaN()) != 0 {
			t.Fatalf("%d bits: zero not preserved", bits)
		}
	}
}

func TestQuantizerWithoutDitherIsRounding(t *testing.T) {
	q, _ := NewQuantizer(WithType(TypeNone))
	in := []float64{0.25, -0.5, 1, -1}
	out := make([]int, len(in))
	q.QuantizeBlock(out, in)
	for i, x := range in {
		want := int(math.Round(x * 32767.5))
		want = max(-32768, min(32767, want))
		if out[i] != want {
			t.Fatalf("Quantize(%v) = %d, want %d", x, out[i], want)
		}
	}
}

func TestTriangularDitherBounded(t *testing.T) {
	q, _ := NewQuantizer(WithSeed(7))
	for i := 0; i < 10000; i++ {
		v := q.Quantize(0)
		if v < -1 || v > 1 {
			t.Fatalf("TPDF on silence produced %d", v)
		}
	}
}

func TestDitherDeterministicWithSeed(t *testing.T) {
	a, _ := NewQuantizer(WithSeed(3), WithShaping(Shaping9FC))
	b, _ := NewQuantizer(WithSeed(3), WithShaping(Shaping9FC))
	for i := 0; i < 1000; i++ {
		x := 0.3 * math.Sin(float64(i)*0.05)
		if a.Quantize(x) != b.Quantize(x) {
			t.Fatalf("sample %d differs", i)
		}
	}
}

func TestNoiseShapingPreservesSignal(t *testing.T) {
	for s := ShapingNone; s < shapingCount; s++ {
		t.Run(s.String(), func(t *testing.T) {
			q, err := NewQuantizer(WithShaping(s), WithType(TypeNone))
			if err != nil {
				t.Fatal(err)
			}
			// A shaped requantiser keeps the average error near zero.
			var sum float64
			const n = 4000
			for i := 0; i < n; i++ {
				x := 0.25 * math.Sin(2*math.Pi*float64(i)/100)
				sum += float64(q.Quantize(x)) - x*32767.5
			}
			if math.Abs(sum/n) > 1 {
				t.Fatalf("mean error %v LSB", sum/n)
			}
			q.Reset()
		})
	}
}

func TestParseShaping(t *testing.T) {
	for s := ShapingNone; s < shapingCount; s++ {
		got, err := ParseShaping(s.String())
		if err != nil || got != s {
			t.Fatalf("ParseShaping(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseShaping("sbm"); err == nil {
		t.Fatal("expected error")
	}
	if Shaping(99).String() != "Shaping(99)" {
		t.Fatal("unexpected String for invalid shaping")
	}
}
