package reverb

import (
	"math"
	"testing"
)

func newTestReverb(t *testing.T, sr float64) *TapReverb {
	t.Helper()
	r, err := NewTapReverb(sr)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestTapReverbValidation(t *testing.T) {
	for _, sr := range []float64{0, -1, math.NaN(), math.Inf(-1)} {
		if _, err := NewTapReverb(sr); err == nil {
			t.Fatalf("expected error for sample rate %v", sr)
		}
	}
}

func TestTapReverbGeometry(t *testing.T) {
	r := newTestReverb(t, 44100)
	if got := r.BufferLen(); got != 11025 {
		t.Fatalf("BufferLen() = %d, want 11025", got)
	}
	left, right := r.Taps()
	if left != [2]int{1367, 2337} {
		t.Fatalf("left taps = %v", left)
	}
	if right != [2]int{1631, 2690} {
		t.Fatalf("right taps = %v", right)
	}
	if r.Feedback() != 0.4 {
		t.Fatalf("Feedback() = %v", r.Feedback())
	}
}

func TestTapReverbTinySampleRateClampsTaps(t *testing.T) {
	r := newTestReverb(t, 2)
	if r.BufferLen() != 1 {
		t.Fatalf("BufferLen() = %d, want 1", r.BufferLen())
	}
	left, right := r.Taps()
	if left != [2]int{0, 0} || right != [2]int{0, 0} {
		t.Fatalf("taps not clamped: %v %v", left, right)
	}
	r.SetAmount(1)
	r.ProcessStereo(1, 1)
}

func TestTapReverbBypass(t *testing.T) {
	r := newTestReverb(t, 44100)
	for _, amt := range []float64{0, 0.0009, 0.001} {
		r.SetAmount(amt)
		for i := 0; i < 5000; i++ {
			x := math.Sin(float64(i) * 0.01)
			l, rr := r.ProcessStereo(x, 0.5*x)
			if l != x || rr != 0.5*x {
				t.Fatalf("amount=%v frame %d modified", amt, i)
			}
		}
	}

	// Nothing was written while bypassed, so the first wet frame is silent.
	r.SetAmount(1)
	l, rr := r.ProcessStereo(0, 0)
	if l != 0 || rr != 0 {
		t.Fatalf("bypass leaked into buffers: %v %v", l, rr)
	}
}

func TestTapReverbImpulseTaps(t *testing.T) {
	r := newTestReverb(t, 1000)
	r.SetAmount(1)
	left, right := r.Taps() // 31/53 and 37/61 samples at 1 kHz

	outL := make([]float64, 120)
	outR := make([]float64, 120)
	for i := range outL {
		x := 0.0
		if i == 0 {
			x = 1
		}
		outL[i], outR[i] = r.ProcessStereo(x, x)
	}

	// Dry path at the impulse is ducked to 0.4.
	if math.Abs(outL[0]-0.4) > 1e-12 {
		t.Fatalf("dry impulse = %v, want 0.4", outL[0])
	}
	if math.Abs(outL[left[0]]-0.7) > 1e-12 {
		t.Fatalf("left primary tap = %v, want 0.7", outL[left[0]])
	}
	if math.Abs(outL[left[1]]-0.3) > 1e-12 {
		t.Fatalf("left secondary tap = %v, want 0.3", outL[left[1]])
	}
	if math.Abs(outR[right[0]]-0.7) > 1e-12 {
		t.Fatalf("right primary tap = %v, want 0.7", outR[right[0]])
	}
	// First recirculation: 0.7 fed back at 0.4, read again through the primary tap.
	if got, want := outL[2*left[0]], 0.7*0.4*0.7; math.Abs(got-want) > 1e-12 {
		t.Fatalf("left recirculation = %v, want %v", got, want)
	}
}

func TestTapReverbTailDecays(t *testing.T) {
	r := newTestReverb(t, 44100)
	r.SetAmount(1)

	// Prime with a burst of noise-like signal.
	for i := 0; i < 4410; i++ {
		x := math.Sin(float64(i)*1.7) * 0.8
		r.ProcessStereo(x, -x*0.5)
	}

	block := r.BufferLen()
	prevPeak := math.Inf(1)
	for b := 0; b < 8; b++ {
		peak := 0.0
		for i := 0; i < block; i++ {
			l, rr := r.ProcessStereo(0, 0)
			peak = math.Max(peak, math.Max(math.Abs(l), math.Abs(rr)))
		}
		if peak > 1 {
			t.Fatalf("block %d: tail peak %v unbounded", b, peak)
		}
		if peak >= prevPeak && peak > 0 {
			t.Fatalf("block %d: tail peak %v did not decrease from %v", b, peak, prevPeak)
		}
		prevPeak = peak
	}
	if prevPeak > 1e-2 {
		t.Fatalf("tail still at %v after 2 s of silence", prevPeak)
	}
}

func TestTapReverbResetAndRateChange(t *testing.T) {
	r := newTestReverb(t, 44100)
	r.SetAmount(1)
	for i := 0; i < 3000; i++ {
		r.ProcessStereo(1, 1)
	}
	r.Reset()
	l, rr := r.ProcessStereo(0, 0)
	if l != 0 || rr != 0 {
		t.Fatalf("reset left residue: %v %v", l, rr)
	}

	if err := r.SetSampleRate(48000); err != nil {
		t.Fatal(err)
	}
	if r.BufferLen() != 12000 {
		t.Fatalf("BufferLen() after rate change = %d", r.BufferLen())
	}
	if err := r.SetSampleRate(-1); err == nil {
		t.Fatal("expected error for negative sample rate")
	}
	if r.SampleRate() != 48000 {
		t.Fatalf("invalid rate changed state: %v", r.SampleRate())
	}
}
