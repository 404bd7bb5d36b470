package drum

import (
	"sync"
	"testing"
)

func TestSlotParamsClamped(t *testing.T) {
	p := SlotParams{Level: 5, Pan: -3, Tone: 1.5, DecayMs: 1, Snap: -1, Pitch: 40, Humanize: 2}.Clamped()
	want := SlotParams{Level: MaxLevel, Pan: -1, Tone: 1, DecayMs: MinDecayMs, Snap: 0, Pitch: MaxPitch, Humanize: 1}
	if p != want {
		t.Fatalf("Clamped() = %+v, want %+v", p, want)
	}
}

func TestMasterParamsClamped(t *testing.T) {
	m := MasterParams{Drive: 2, Comp: -1, Reverb: 0.5, KitPitch: -30, VelocityCurve: 3}.Clamped()
	want := MasterParams{Drive: 1, Comp: 0, Reverb: 0.5, KitPitch: MinKitPitch, VelocityCurve: 1}
	if m != want {
		t.Fatalf("Clamped() = %+v, want %+v", m, want)
	}
}

func TestDefaultSnapshot(t *testing.T) {
	s := DefaultSnapshot()
	if s.Clamped() != s {
		t.Fatal("factory values outside their ranges")
	}
	if s.Slots[Kick].DecayMs != 300 || s.Slots[HatOpen].DecayMs != 450 {
		t.Fatal("unexpected factory decays")
	}
	if s.Master != DefaultMasterParams() {
		t.Fatal("unexpected master defaults")
	}
	if s.Snapshot() != &s {
		t.Fatal("Snapshot as ParamSource must return itself")
	}
	if p := DefaultSlotParams(Kind(99)); p.Level != 1 {
		t.Fatalf("fallback params = %+v", p)
	}
}

func TestAtomicParamsStore(t *testing.T) {
	var zero AtomicParams
	if zero.Snapshot() == nil {
		t.Fatal("zero value returned nil snapshot")
	}

	init := DefaultSnapshot()
	p := NewAtomicParams(init)
	init.Master.Drive = 0.9
	if p.Snapshot().Master.Drive == 0.9 {
		t.Fatal("Store did not copy its argument")
	}

	before := p.Snapshot()
	p.Store(Snapshot{})
	if before.Master != DefaultMasterParams() {
		t.Fatal("published snapshot was mutated")
	}
	if p.Snapshot().Master.Comp != 0 {
		t.Fatal("Store not visible")
	}
}

func TestAtomicParamsConcurrentUpdate(t *testing.T) {
	p := NewAtomicParams(Snapshot{})
	const workers, perWorker = 8, 200

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				p.Update(func(s *Snapshot) { s.Slots[Tom].DecayMs++ })
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			default:
				_ = p.Snapshot().Slots[Tom].DecayMs
			}
		}
	}()
	wg.Wait()
	close(done)

	if got := p.Snapshot().Slots[Tom].DecayMs; got != workers*perWorker {
		t.Fatalf("DecayMs = %v, want %d", got, workers*perWorker)
	}
}
