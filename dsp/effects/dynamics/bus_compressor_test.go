package dynamics

import (
	"math"
	"testing"
)

func TestBusCompressorValidation(t *testing.T) {
	for _, sr := range []float64{0, -44100, math.NaN(), math.Inf(1)} {
		if _, err := NewBusCompressor(sr); err == nil {
			t.Fatalf("expected error for sample rate %v", sr)
		}
	}

	c, err := NewBusCompressor(44100)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SetSampleRate(0); err == nil {
		t.Fatal("expected error from SetSampleRate(0)")
	}
	if c.SampleRate() != 44100 {
		t.Fatalf("sample rate changed on invalid update: %v", c.SampleRate())
	}
}

func TestBusCompressorBypass(t *testing.T) {
	c, _ := NewBusCompressor(44100)
	for _, amt := range []float64{0, 0.001, -3} {
		c.SetAmount(amt)
		for i := 0; i < 100; i++ {
			x := 0.9 * math.Sin(float64(i))
			l, r := c.ProcessStereo(x, -x)
			if l != x || r != -x {
				t.Fatalf("amount=%v: frame %d modified", amt, i)
			}
		}
		if c.Envelope() != 0 {
			t.Fatalf("amount=%v: bypass touched detector state", amt)
		}
	}
}

func TestBusCompressorRatio(t *testing.T) {
	c, _ := NewBusCompressor(44100)
	tests := []struct {
		amount, ratio float64
	}{
		{0, 1},
		{0.5, 2.5},
		{1, 4},
		{2, 4},
	}
	for _, tt := range tests {
		c.SetAmount(tt.amount)
		if c.Ratio() != tt.ratio {
			t.Fatalf("amount %v: ratio %v, want %v", tt.amount, c.Ratio(), tt.ratio)
		}
	}
}

func TestBusCompressorNeverAmplifies(t *testing.T) {
	for _, amt := range []float64{0.01, 0.3, 0.7, 1} {
		c, _ := NewBusCompressor(44100)
		c.SetAmount(amt)
		for i := 0; i < 20000; i++ {
			// Bursty program material.
			a := 1.5 * math.Sin(2*math.Pi*80*float64(i)/44100)
			if (i/2000)%2 == 1 {
				a *= 0.05
			}
			b := 0.7 * math.Sin(2*math.Pi*3000*float64(i)/44100)
			l, r := c.ProcessStereo(a, b)
			if math.Abs(l) > math.Abs(a)+1e-15 || math.Abs(r) > math.Abs(b)+1e-15 {
				t.Fatalf("amount %v frame %d: output exceeds input", amt, i)
			}
		}
	}
}

func TestBusCompressorReducesLoudSignal(t *testing.T) {
	c, _ := NewBusCompressor(44100)
	c.SetAmount(1)
	var l float64
	for i := 0; i < 44100; i++ {
		l, _ = c.ProcessStereo(1, 1)
	}
	// 0 dBFS is 12 dB over threshold; at 4:1 the steady-state reduction is 9 dB.
	want := math.Pow(10, -9.0/20)
	if math.Abs(l-want) > 1e-3 {
		t.Fatalf("steady-state output %v, want ~%v", l, want)
	}
	if gr := c.GainReduction(); math.Abs(gr+9) > 0.05 {
		t.Fatalf("GainReduction() = %v dB, want ~-9", gr)
	}
}

func TestBusCompressorQuietSignalUntouched(t *testing.T) {
	c, _ := NewBusCompressor(44100)
	c.SetAmount(1)
	for i := 0; i < 4096; i++ {
		l, r := c.ProcessStereo(0.1, -0.1)
		if l != 0.1 || r != -0.1 {
			t.Fatalf("frame %d: signal below threshold modified: %v %v", i, l, r)
		}
	}
}

func TestBusCompressorReset(t *testing.T) {
	c, _ := NewBusCompressor(48000)
	c.SetAmount(1)
	for i := 0; i < 1000; i++ {
		c.ProcessStereo(1, 1)
	}
	c.Reset()
	if c.Envelope() != 0 || c.Gain() != 1 {
		t.Fatalf("reset state env=%v gain=%v", c.Envelope(), c.Gain())
	}
}
