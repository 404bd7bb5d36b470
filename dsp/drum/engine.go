package drum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-drums/dsp/core"
)

// Event triggers slot Slot at Velocity (0..1) on frame Offset of the block
// passed to Engine.Process.
type Event struct {
	Slot     int
	Velocity float64
	Offset   int
}

// EngineOption configures an Engine at construction time.
type EngineOption func(*Engine)

// WithParams sets the parameter source. The default is a fixed
// DefaultSnapshot.
func WithParams(src ParamSource) EngineOption {
	return func(e *Engine) {
		if src != nil {
			e.params = src
		}
	}
}

// Engine renders the drum machine block by block.
//
// Process and ProcessInterleaved must be called from a single goroutine.
// SetSampleRate and Reset must not run concurrently with them.
type Engine struct {
	cfg    core.ProcessorConfig
	params ParamSource

	bank *Bank
	bus  *Bus
}

// NewEngine creates an engine. The sample rate comes from coreOpts
// (core.WithSampleRate), defaulting to 44.1 kHz.
func NewEngine(coreOpts []core.ProcessorOption, opts ...EngineOption) (*Engine, error) {
	cfg := core.ApplyProcessorOptions(coreOpts...)
	if !core.ValidSampleRate(cfg.SampleRate) {
		return nil, fmt.Errorf("drum engine sample rate must be positive and finite: %f", cfg.SampleRate)
	}

	bus, err := NewBus(cfg.SampleRate)
	if err != nil {
		return nil, err
	}

	def := DefaultSnapshot()
	e := &Engine{
		cfg:    cfg,
		params: &def,
		bank:   NewBank(cfg.SampleRate),
		bus:    bus,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e, nil
}

// Config returns the engine's processing configuration.
func (e *Engine) Config() core.ProcessorConfig { return e.cfg }

// SampleRate returns the current sample rate.
func (e *Engine) SampleRate() float64 { return e.cfg.SampleRate }

// Bank exposes the voice bank for inspection.
func (e *Engine) Bank() *Bank { return e.bank }

// Bus exposes the master bus for metering.
func (e *Engine) Bus() *Bus { return e.bus }

// Params returns the current parameter source.
func (e *Engine) Params() ParamSource { return e.params }

// SetSampleRate switches to a new sample rate and silences everything.
// Rates at or below zero are raised to 1 Hz; NaN and Inf are rejected.
func (e *Engine) SetSampleRate(sampleRate float64) error {
	if math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("drum engine sample rate must be finite: %f", sampleRate)
	}
	if sampleRate < 1 {
		sampleRate = 1
	}
	if err := e.bus.SetSampleRate(sampleRate); err != nil {
		return err
	}
	e.bank.SetSampleRate(sampleRate)
	e.cfg.SampleRate = sampleRate
	return nil
}

// Reset silences all voices and clears the bus.
func (e *Engine) Reset() {
	e.bank.Reset()
	e.bus.Reset()
}

// Trigger starts slot immediately with the current parameters.
// Out-of-range slots are ignored.
func (e *Engine) Trigger(slot int, velocity float64) {
	s := e.params.Snapshot()
	if slot < 0 || slot >= NumSlots {
		return
	}
	e.bank.Dispatch(slot, velocity, &s.Slots[slot], &s.Master)
}

// RenderFrame renders one stereo frame without consuming any events.
func (e *Engine) RenderFrame() (float64, float64) {
	s := e.params.Snapshot()
	l, r := e.bank.Render(s)
	return e.bus.Process(l, r, &s.Master)
}

// Process fills left and right with one block of audio.
//
// events must be ordered by Offset. Every event with Offset equal to a
// frame index is dispatched, in order, before that frame is rendered.
// Events whose offset lies before the current frame fire immediately;
// events at or beyond len(left) are not fired in this block.
func (e *Engine) Process(left, right []float64, events []Event) error {
	if len(left) != len(right) {
		return ErrChannelMismatch
	}

	next := 0
	for i := range left {
		s := e.params.Snapshot()
		next = e.dispatchDue(events, next, i, s)
		l, r := e.bank.Render(s)
		left[i], right[i] = e.bus.Process(l, r, &s.Master)
	}
	return nil
}

// ProcessInterleaved fills dst with interleaved L/R float32 frames.
// Event handling is the same as Process, with offsets counted in frames.
func (e *Engine) ProcessInterleaved(dst []float32, events []Event) error {
	if len(dst)%2 != 0 {
		return ErrOddInterleaved
	}

	next := 0
	frames := len(dst) / 2
	for i := 0; i < frames; i++ {
		s := e.params.Snapshot()
		next = e.dispatchDue(events, next, i, s)
		l, r := e.bank.Render(s)
		l, r = e.bus.Process(l, r, &s.Master)
		dst[2*i] = float32(l)
		dst[2*i+1] = float32(r)
	}
	return nil
}

func (e *Engine) dispatchDue(events []Event, next, frame int, s *Snapshot) int {
	for next < len(events) && events[next].Offset <= frame {
		ev := events[next]
		if ev.Slot >= 0 && ev.Slot < NumSlots {
			e.bank.Dispatch(ev.Slot, ev.Velocity, &s.Slots[ev.Slot], &s.Master)
		}
		next++
	}
	return next
}
