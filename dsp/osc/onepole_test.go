package osc

import (
	"math"
	"testing"
)

func TestOnePoleHPBlocksDC(t *testing.T) {
	f := NewOnePoleHP(nil)
	var y float64
	for i := 0; i < 10000; i++ {
		y = f.Process(1, 1000, 44100)
	}
	if math.Abs(y) > 1e-9 {
		t.Fatalf("DC not removed: %v", y)
	}
}

func TestOnePoleHPFirstSample(t *testing.T) {
	f := NewOnePoleHP(nil)
	alpha := 1 - math.Exp(-2*math.Pi*1000/44100)
	got := f.Process(0.5, 1000, 44100)
	want := 0.5 - alpha*0.5
	if math.Abs(got-want) > 1e-15 {
		t.Fatalf("got %v want %v", got, want)
	}
	if math.Abs(f.State()-alpha*0.5) > 1e-15 {
		t.Fatalf("state %v want %v", f.State(), alpha*0.5)
	}
}

func TestOnePoleHPCutoffClamp(t *testing.T) {
	tests := []struct {
		name    string
		cutoff  float64
		clamped float64
	}{
		{"below floor", 10, 200},
		{"above ceiling", 40000, 0.45 * 44100},
		{"inside", 5000, 5000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewOnePoleHP(nil)
			b := NewOnePoleHP(nil)
			got := a.Process(1, tt.cutoff, 44100)
			want := b.Process(1, tt.clamped, 44100)
			if got != want {
				t.Fatalf("got %v want %v", got, want)
			}
		})
	}
}

func TestOnePoleHPCustomExp(t *testing.T) {
	calls := 0
	f := NewOnePoleHP(func(x float64) float64 {
		calls++
		return math.Exp(x)
	})
	f.Process(1, 1000, 44100)
	if calls != 1 {
		t.Fatalf("exp called %d times, want 1", calls)
	}
	f.Reset()
	if f.State() != 0 {
		t.Fatal("reset did not clear state")
	}
}
