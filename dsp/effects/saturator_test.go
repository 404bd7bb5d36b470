package effects

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-drums/dsp/core"
	"github.com/cwbudde/algo-drums/internal/testutil"
)

func TestSaturatorBypass(t *testing.T) {
	for _, drive := range []float64{0, 0.0005, 0.001, -1} {
		s := NewSaturator(drive)
		for _, x := range []float64{-2, -0.3, 0, 0.123456789, 1.5} {
			if got := s.ProcessSample(x); got != x {
				t.Fatalf("drive=%v: ProcessSample(%v) = %v, want identity", drive, x, got)
			}
			l, r := s.ProcessStereo(x, -x)
			if l != x || r != -x {
				t.Fatalf("drive=%v: ProcessStereo not identity", drive)
			}
		}
	}
}

func TestSaturatorFormula(t *testing.T) {
	s := NewSaturator(0.5)
	x := 0.2
	want := core.FastTanh(x*3) / 2
	if got := s.ProcessSample(x); math.Abs(got-want) > 1e-15 {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestSaturatorBoundedAndOdd(t *testing.T) {
	s := NewSaturator(1)
	for x := -10.0; x <= 10; x += 0.25 {
		y := s.ProcessSample(x)
		if math.Abs(y) > 1.0/3+1e-12 {
			t.Fatalf("|y| = %v exceeds makeup ceiling", y)
		}
		if s.ProcessSample(-x) != -y {
			t.Fatalf("not odd at %v", x)
		}
	}
}

func TestSaturatorDriveClamped(t *testing.T) {
	s := NewSaturator(7)
	if s.Drive() != 1 {
		t.Fatalf("Drive() = %v, want 1", s.Drive())
	}
}

func TestSaturatorProcessInPlaceMatchesSample(t *testing.T) {
	s := NewSaturator(0.3)
	buf := []float64{-1, -0.5, 0, 0.25, 0.9}
	want := make([]float64, len(buf))
	for i, x := range buf {
		want[i] = s.ProcessSample(x)
	}
	s.ProcessInPlace(buf)
	testutil.RequireSliceNearlyEqual(t, buf, want, 0)
}
