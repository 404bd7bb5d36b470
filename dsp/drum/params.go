package drum

import (
	"sync/atomic"

	"github.com/cwbudde/algo-drums/dsp/core"
)

// Parameter ranges.
const (
	MinLevel    = 0.0
	MaxLevel    = 2.0
	MinDecayMs  = 10.0
	MaxDecayMs  = 2000.0
	MinPitch    = -24.0
	MaxPitch    = 24.0
	MinKitPitch = -12.0
	MaxKitPitch = 12.0
)

// SlotParams are the per-slot controls.
type SlotParams struct {
	Level    float64 // output gain, 0..2
	Pan      float64 // -1 left .. 1 right
	Tone     float64 // brightness macro, 0..1
	DecayMs  float64 // amplitude decay time in ms
	Snap     float64 // transient/drive macro, 0..1
	Pitch    float64 // semitones
	Humanize float64 // per-hit randomisation depth, 0..1
}

// Clamped returns p with every field limited to its legal range.
func (p SlotParams) Clamped() SlotParams {
	return SlotParams{
		Level:    core.Clamp(p.Level, MinLevel, MaxLevel),
		Pan:      core.Clamp(p.Pan, -1, 1),
		Tone:     core.ClampUnit(p.Tone),
		DecayMs:  core.Clamp(p.DecayMs, MinDecayMs, MaxDecayMs),
		Snap:     core.ClampUnit(p.Snap),
		Pitch:    core.Clamp(p.Pitch, MinPitch, MaxPitch),
		Humanize: core.ClampUnit(p.Humanize),
	}
}

// MasterParams are the bus-wide controls.
type MasterParams struct {
	Drive         float64 // bus saturation, 0..1
	Comp          float64 // bus compression, 0..1
	Reverb        float64 // room send, 0..1
	KitPitch      float64 // global transpose in semitones
	VelocityCurve float64 // 0 = soft curve, 1 = steep curve
}

// Clamped returns m with every field limited to its legal range.
func (m MasterParams) Clamped() MasterParams {
	return MasterParams{
		Drive:         core.ClampUnit(m.Drive),
		Comp:          core.ClampUnit(m.Comp),
		Reverb:        core.ClampUnit(m.Reverb),
		KitPitch:      core.Clamp(m.KitPitch, MinKitPitch, MaxKitPitch),
		VelocityCurve: core.ClampUnit(m.VelocityCurve),
	}
}

var defaultSlots = [NumSlots]SlotParams{
	Kick:      {Level: 0.9, Pan: 0, Tone: 0.4, DecayMs: 300, Snap: 0.6, Pitch: 0, Humanize: 0.2},
	Snare:     {Level: 0.9, Pan: 0, Tone: 0.6, DecayMs: 200, Snap: 0.7, Pitch: 0, Humanize: 0.2},
	Clap:      {Level: 0.8, Pan: 0, Tone: 0.7, DecayMs: 180, Snap: 0.8, Pitch: 0, Humanize: 0.2},
	HatClosed: {Level: 0.7, Pan: -0.1, Tone: 0.8, DecayMs: 80, Snap: 0.5, Pitch: 0, Humanize: 0.1},
	HatOpen:   {Level: 0.7, Pan: -0.1, Tone: 0.8, DecayMs: 450, Snap: 0.4, Pitch: 0, Humanize: 0.1},
	Tom:       {Level: 0.8, Pan: 0.1, Tone: 0.5, DecayMs: 260, Snap: 0.4, Pitch: 0, Humanize: 0.1},
	Perc1:     {Level: 0.7, Pan: 0.2, Tone: 0.7, DecayMs: 220, Snap: 0.5, Pitch: 0, Humanize: 0.2},
	Perc2:     {Level: 0.7, Pan: 0.3, Tone: 0.5, DecayMs: 220, Snap: 0.5, Pitch: 0, Humanize: 0.2},
}

// DefaultSlotParams returns the factory voicing for kind k.
func DefaultSlotParams(k Kind) SlotParams {
	if !k.Valid() {
		return SlotParams{Level: 1, DecayMs: 200}
	}
	return defaultSlots[k]
}

// DefaultMasterParams returns the factory bus settings.
func DefaultMasterParams() MasterParams {
	return MasterParams{Drive: 0.1, Comp: 0.3, Reverb: 0.2, KitPitch: 0, VelocityCurve: 0.5}
}

// Snapshot is a complete, immutable-by-convention set of parameter values.
type Snapshot struct {
	Slots  [NumSlots]SlotParams
	Master MasterParams
}

// DefaultSnapshot returns the factory parameter set.
func DefaultSnapshot() Snapshot {
	s := Snapshot{Master: DefaultMasterParams()}
	for i, k := range Kinds {
		s.Slots[i] = DefaultSlotParams(k)
	}
	return s
}

// Snapshot lets a *Snapshot act as a fixed ParamSource.
func (s *Snapshot) Snapshot() *Snapshot { return s }

// Clamped returns a copy of s with every value limited to its legal range.
func (s Snapshot) Clamped() Snapshot {
	out := Snapshot{Master: s.Master.Clamped()}
	for i := range s.Slots {
		out.Slots[i] = s.Slots[i].Clamped()
	}
	return out
}

// ParamSource supplies the current parameter values. Snapshot is called once
// per rendered frame from the audio thread and must not block; the returned
// value must not be modified by the source while it may still be read.
type ParamSource interface {
	Snapshot() *Snapshot
}

// AtomicParams is a wait-free ParamSource. Writers publish whole snapshots;
// the audio thread sees either the old or the new set, never a mix.
type AtomicParams struct {
	current atomic.Pointer[Snapshot]
}

// NewAtomicParams returns a source holding a copy of initial.
func NewAtomicParams(initial Snapshot) *AtomicParams {
	p := &AtomicParams{}
	p.Store(initial)
	return p
}

// Store publishes a copy of s.
func (p *AtomicParams) Store(s Snapshot) {
	p.current.Store(&s)
}

// Update applies fn to a copy of the current snapshot and publishes the
// result. Concurrent updates are serialised by retrying.
func (p *AtomicParams) Update(fn func(*Snapshot)) {
	for {
		old := p.current.Load()
		next := Snapshot{}
		if old != nil {
			next = *old
		}
		fn(&next)
		if p.current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// Snapshot returns the most recently published values.
func (p *AtomicParams) Snapshot() *Snapshot {
	if s := p.current.Load(); s != nil {
		return s
	}
	return &zeroSnapshot
}

var zeroSnapshot Snapshot
