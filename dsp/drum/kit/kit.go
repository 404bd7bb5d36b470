// Package kit holds the factory drum kits.
package kit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-drums/dsp/drum"
)

// ErrUnknownKit is returned by ByName for unrecognised names.
var ErrUnknownKit = errors.New("kit: unknown kit")

// Kit is a named full parameter set.
type Kit struct {
	Name   string
	Slots  [drum.NumSlots]drum.SlotParams
	Master drum.MasterParams
}

// Snapshot returns the kit as engine parameters.
func (k Kit) Snapshot() drum.Snapshot {
	return drum.Snapshot{Slots: k.Slots, Master: k.Master}
}

func slot(level, pan, tone, decayMs, snap, pitch, humanize float64) drum.SlotParams {
	return drum.SlotParams{
		Level:    level,
		Pan:      pan,
		Tone:     tone,
		DecayMs:  decayMs,
		Snap:     snap,
		Pitch:    pitch,
		Humanize: humanize,
	}
}

func master(drive, comp, reverb, kitPitch, velCurve float64) drum.MasterParams {
	return drum.MasterParams{
		Drive:         drive,
		Comp:          comp,
		Reverb:        reverb,
		KitPitch:      kitPitch,
		VelocityCurve: velCurve,
	}
}

func initKit() Kit {
	def := drum.DefaultSnapshot()
	return Kit{Name: "Init", Slots: def.Slots, Master: def.Master}
}

var factory = []Kit{
	initKit(),
	{
		Name: "808 Clean",
		Slots: [drum.NumSlots]drum.SlotParams{
			slot(1.0, 0, 0.40, 360, 0.55, -2, 0.10),
			slot(0.9, 0, 0.65, 220, 0.75, 0, 0.20),
			slot(0.8, 0, 0.75, 190, 0.85, 0, 0.20),
			slot(0.65, -0.1, 0.85, 70, 0.50, 0, 0.10),
			slot(0.7, -0.1, 0.85, 320, 0.40, 0, 0.10),
			slot(0.8, 0.05, 0.55, 260, 0.40, -2, 0.10),
			slot(0.7, 0.2, 0.70, 220, 0.50, 0, 0.20),
			slot(0.7, 0.3, 0.55, 220, 0.50, 0, 0.20),
		},
		Master: master(0.15, 0.25, 0.15, 0, 0.45),
	},
	{
		Name: "EDM Punch",
		Slots: [drum.NumSlots]drum.SlotParams{
			slot(1.1, 0, 0.55, 280, 0.85, 0, 0.15),
			slot(1.0, 0, 0.75, 190, 0.85, 2, 0.20),
			slot(0.9, 0, 0.80, 200, 0.90, 0, 0.15),
			slot(0.75, -0.2, 0.90, 90, 0.60, 0, 0.10),
			slot(0.8, -0.2, 0.90, 380, 0.50, 0, 0.10),
			slot(0.85, 0.1, 0.60, 260, 0.45, 0, 0.10),
			slot(0.8, 0.25, 0.75, 240, 0.60, 2, 0.20),
			slot(0.8, 0.35, 0.65, 240, 0.55, -2, 0.20),
		},
		Master: master(0.35, 0.55, 0.20, 0, 0.55),
	},
	{
		Name: "Minimal Tech",
		Slots: [drum.NumSlots]drum.SlotParams{
			slot(1.0, 0, 0.35, 260, 0.65, -1, 0.15),
			slot(0.8, 0.05, 0.55, 170, 0.65, -2, 0.15),
			slot(0.75, 0.1, 0.65, 160, 0.70, 0, 0.20),
			slot(0.65, -0.2, 0.75, 70, 0.50, 0, 0.10),
			slot(0.7, -0.25, 0.75, 320, 0.45, 0, 0.10),
			slot(0.75, 0.15, 0.45, 230, 0.35, -1, 0.10),
			slot(0.65, 0.2, 0.60, 220, 0.50, 0, 0.15),
			slot(0.65, 0.3, 0.55, 220, 0.45, 0, 0.15),
		},
		Master: master(0.25, 0.40, 0.10, 0, 0.45),
	},
	{
		Name: "Lo-Fi",
		Slots: [drum.NumSlots]drum.SlotParams{
			slot(0.9, -0.05, 0.30, 240, 0.40, -3, 0.25),
			slot(0.85, 0.05, 0.40, 210, 0.50, -4, 0.30),
			slot(0.8, 0, 0.50, 190, 0.55, -2, 0.30),
			slot(0.6, -0.1, 0.55, 90, 0.40, -4, 0.20),
			slot(0.65, -0.1, 0.55, 420, 0.35, -4, 0.20),
			slot(0.7, 0.1, 0.45, 260, 0.40, -3, 0.20),
			slot(0.75, 0.15, 0.50, 260, 0.45, -2, 0.30),
			slot(0.75, 0.25, 0.45, 260, 0.45, -4, 0.30),
		},
		Master: master(0.55, 0.35, 0.30, -1, 0.40),
	},
}

// All returns copies of the factory kits in menu order.
func All() []Kit {
	out := make([]Kit, len(factory))
	copy(out, factory)
	return out
}

// Names returns the factory kit names in menu order.
func Names() []string {
	names := make([]string, len(factory))
	for i, k := range factory {
		names[i] = k.Name
	}
	return names
}

// ByName looks a kit up by name, ignoring case, surrounding space and the
// difference between spaces, dashes and underscores.
func ByName(name string) (Kit, error) {
	want := normalize(name)
	for _, k := range factory {
		if normalize(k.Name) == want {
			return k, nil
		}
	}
	return Kit{}, fmt.Errorf("%w: %q", ErrUnknownKit, name)
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}
