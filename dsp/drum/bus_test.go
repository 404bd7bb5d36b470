package drum

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-drums/dsp/effects"
	"github.com/cwbudde/algo-drums/dsp/effects/dynamics"
	"github.com/cwbudde/algo-drums/dsp/effects/reverb"
)

func TestBusBypassIdentity(t *testing.T) {
	for _, m := range []MasterParams{
		{},
		{Drive: 0.001, Comp: 0.0005, Reverb: 0.001},
		{Drive: -1, Comp: -1, Reverb: -1, KitPitch: 5, VelocityCurve: 1},
	} {
		b, err := NewBus(44100)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 10000; i++ {
			l := 1.3 * math.Sin(float64(i)*0.031)
			r := -0.7 * math.Cos(float64(i)*0.017)
			gl, gr := b.Process(l, r, &m)
			if gl != l || gr != r {
				t.Fatalf("params %+v frame %d: bus modified signal", m, i)
			}
		}
	}
}

func TestBusStageOrder(t *testing.T) {
	m := MasterParams{Drive: 0.4, Comp: 0.8, Reverb: 0.5}
	b, err := NewBus(48000)
	if err != nil {
		t.Fatal(err)
	}

	sat := effects.NewSaturator(m.Drive)
	comp, _ := dynamics.NewBusCompressor(48000)
	comp.SetAmount(m.Comp)
	rev, _ := reverb.NewTapReverb(48000)
	rev.SetAmount(m.Reverb)

	for i := 0; i < 6000; i++ {
		l := math.Sin(float64(i) * 0.05)
		r := math.Sin(float64(i) * 0.07)

		wl, wr := sat.ProcessStereo(l, r)
		wl, wr = comp.ProcessStereo(wl, wr)
		wl, wr = rev.ProcessStereo(wl, wr)

		gl, gr := b.Process(l, r, &m)
		if gl != wl || gr != wr {
			t.Fatalf("frame %d: got %v %v want %v %v", i, gl, gr, wl, wr)
		}
	}
	if b.GainReduction() >= 0 {
		t.Fatalf("expected gain reduction, got %v dB", b.GainReduction())
	}
}

func TestBusReverbTailAfterSilence(t *testing.T) {
	b, _ := NewBus(44100)
	m := MasterParams{Reverb: 1}
	for i := 0; i < 2000; i++ {
		b.Process(0.5, 0.5, &m)
	}

	prev := math.Inf(1)
	block := 11025
	for blk := 0; blk < 6; blk++ {
		peak := 0.0
		for i := 0; i < block; i++ {
			l, r := b.Process(0, 0, &m)
			peak = math.Max(peak, math.Max(math.Abs(l), math.Abs(r)))
		}
		if blk == 0 && peak == 0 {
			t.Fatal("no reverb tail after priming")
		}
		if peak > 0 && peak >= prev {
			t.Fatalf("tail block %d did not decay: %v >= %v", blk, peak, prev)
		}
		prev = peak
	}
}

func TestBusRecoversFromNonFiniteInput(t *testing.T) {
	b, _ := NewBus(44100)
	m := MasterParams{Drive: 0.5, Comp: 1, Reverb: 1}
	for _, x := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		l, r := b.Process(x, x, &m)
		if l != 0 || r != 0 {
			t.Fatalf("Process(%v) = %v, %v, want silence", x, l, r)
		}
	}
	for i := 0; i < 44100; i++ {
		l, r := b.Process(0.25, -0.25, &m)
		if math.IsNaN(l) || math.IsNaN(r) || math.IsInf(l, 0) || math.IsInf(r, 0) {
			t.Fatalf("frame %d = %v, %v", i, l, r)
		}
	}
	if gr := b.GainReduction(); math.IsNaN(gr) {
		t.Fatal("compressor state is NaN")
	}
}

func TestBusInvalidSampleRate(t *testing.T) {
	if _, err := NewBus(0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	b, _ := NewBus(44100)
	if err := b.SetSampleRate(math.NaN()); err == nil {
		t.Fatal("expected error for NaN sample rate")
	}
}
