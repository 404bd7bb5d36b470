package delay

import "testing"

func TestNewValidation(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("expected error for size=0")
	}

	if _, err := New(-1); err == nil {
		t.Fatal("expected error for size=-1")
	}
}

func TestNewDefaults(t *testing.T) {
	d, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	if d.Len() != 16 {
		t.Fatalf("Len: got %d want 16", d.Len())
	}
	if d.WritePos() != 0 {
		t.Fatalf("WritePos: got %d want 0", d.WritePos())
	}
}

func TestReadWrite(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 8; i++ {
		d.Write(float64(i + 1))
	}

	// Write position has wrapped back to 0; delay k returns the k-th most
	// recent sample.
	for k := 1; k <= 8; k++ {
		want := float64(8 - k + 1)
		if got := d.Read(k); got != want {
			t.Fatalf("Read(%d): got %v want %v", k, got, want)
		}
	}
}

func TestReadBeforeWriteSeesOldSlot(t *testing.T) {
	d, _ := New(4)
	d.Write(1)
	d.Write(2)
	// Reading delay 0 before the next write sees the slot about to be
	// overwritten, which is still silent.
	if got := d.Read(0); got != 0 {
		t.Fatalf("Read(0) = %v, want 0", got)
	}
	if got := d.Read(2); got != 1 {
		t.Fatalf("Read(2) = %v, want 1", got)
	}
}

func TestReadLargeDelayWraps(t *testing.T) {
	d, _ := New(4)
	d.Write(5)
	if got, want := d.Read(5), d.Read(1); got != want {
		t.Fatalf("Read(5) = %v, want Read(1) = %v", got, want)
	}
}

func TestReset(t *testing.T) {
	d, _ := New(4)
	d.Write(1)
	d.Write(2)
	d.Reset()

	if d.WritePos() != 0 {
		t.Fatalf("WritePos after reset = %d", d.WritePos())
	}
	for k := 0; k < 4; k++ {
		if got := d.Read(k); got != 0 {
			t.Fatalf("Read(%d) after reset = %v", k, got)
		}
	}
}
