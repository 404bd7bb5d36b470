package drum

import (
	"fmt"
	"strings"
)

// NumSlots is the fixed number of drum slots.
const NumSlots = 8

// Kind selects the synthesis algorithm of a voice.
type Kind int

const (
	Kick Kind = iota
	Snare
	Clap
	HatClosed
	HatOpen
	Tom
	Perc1
	Perc2
)

// Kinds lists the slot layout: slot i always plays Kinds[i].
var Kinds = [NumSlots]Kind{Kick, Snare, Clap, HatClosed, HatOpen, Tom, Perc1, Perc2}

var kindNames = [NumSlots]string{"kick", "snare", "clap", "hat-closed", "hat-open", "tom", "perc1", "perc2"}

// baseFreqs holds the untransposed body pitch of each kind in Hz.
var baseFreqs = [NumSlots]float64{55, 180, 250, 8000, 7000, 140, 400, 700}

// String returns the lower-case name of k.
func (k Kind) String() string {
	if k.Valid() {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is one of the eight known kinds.
func (k Kind) Valid() bool {
	return k >= Kick && k <= Perc2
}

// BaseFreq returns the untransposed body pitch of k in Hz.
func (k Kind) BaseFreq() float64 {
	if !k.Valid() {
		return 0
	}
	return baseFreqs[k]
}

// ParseKind resolves a kind by name. Matching is case-insensitive and
// accepts "_" in place of "-".
func ParseKind(name string) (Kind, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for i, kn := range kindNames {
		if n == kn {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}
