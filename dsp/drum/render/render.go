// Package render drives a drum engine offline, block by block, from an
// event source such as a sequencer or a MIDI clip.
package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-drums/dsp/core"
	"github.com/cwbudde/algo-drums/dsp/drum"
)

// ErrNilEngine is returned when Render is called without an engine.
var ErrNilEngine = errors.New("render: nil engine")

// Source produces the events of one block. Implementations append to dst
// and return it; offsets are relative to blockStart.
type Source interface {
	Events(dst []drum.Event, blockStart, blockLen int) []drum.Event
}

// Option configures a render.
type Option func(*config)

type config struct {
	tail      int
	gain      float64
	normalize float64
}

// WithTail renders frames of extra audio after the last event window so
// decays and the reverb can ring out.
func WithTail(frames int) Option {
	return func(c *config) {
		if frames > 0 {
			c.tail = frames
		}
	}
}

// WithGain scales the finished render.
func WithGain(g float64) Option {
	return func(c *config) {
		if !math.IsNaN(g) && !math.IsInf(g, 0) {
			c.gain = g
		}
	}
}

// WithNormalize scales the finished render so its absolute peak equals
// peak. It overrides WithGain. Silent renders are left untouched.
func WithNormalize(peak float64) Option {
	return func(c *config) {
		if peak > 0 && !math.IsInf(peak, 0) {
			c.normalize = peak
		}
	}
}

// Result holds a planar stereo render.
type Result struct {
	Left       []float64
	Right      []float64
	SampleRate float64
	Peak       float64
}

// Frames returns the render length.
func (r *Result) Frames() int { return len(r.Left) }

// Render runs eng for frames frames of src events plus any tail, using
// the engine's configured block size.
func Render(eng *drum.Engine, src Source, frames int, opts ...Option) (*Result, error) {
	if eng == nil {
		return nil, ErrNilEngine
	}
	if frames < 0 {
		return nil, fmt.Errorf("render: frame count must not be negative: %d", frames)
	}
	cfg := config{gain: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	total := frames + cfg.tail
	res := &Result{
		Left:       make([]float64, total),
		Right:      make([]float64, total),
		SampleRate: eng.SampleRate(),
	}

	block := eng.Config().BlockSize
	events := make([]drum.Event, 0, 4*drum.NumSlots)
	for start := 0; start < total; start += block {
		n := min(block, total-start)
		events = events[:0]
		if src != nil && start < frames {
			events = src.Events(events, start, min(n, frames-start))
		}
		if err := eng.Process(res.Left[start:start+n], res.Right[start:start+n], events); err != nil {
			return nil, err
		}
	}

	res.finish(cfg)
	return res, nil
}

func (r *Result) finish(cfg config) {
	g := cfg.gain
	if cfg.normalize > 0 {
		if p := r.peak(); p > 0 {
			g = cfg.normalize / p
		}
	}
	if g != 1 {
		vecmath.ScaleBlock(r.Left, r.Left, g)
		vecmath.ScaleBlock(r.Right, r.Right, g)
	}
	r.Peak = r.peak()
}

func (r *Result) peak() float64 {
	return math.Max(maxAbs(r.Left), maxAbs(r.Right))
}

func maxAbs(x []float64) float64 {
	var p float64
	for _, v := range x {
		if a := math.Abs(v); a > p {
			p = a
		}
	}
	return p
}

type slotFilter struct {
	src     Source
	slot    int
	scratch []drum.Event
}

func (f *slotFilter) Events(dst []drum.Event, blockStart, blockLen int) []drum.Event {
	f.scratch = f.src.Events(f.scratch[:0], blockStart, blockLen)
	for _, ev := range f.scratch {
		if ev.Slot == f.slot {
			dst = append(dst, ev)
		}
	}
	return dst
}

// Stems renders every slot on its own with the master bus bypassed, so
// the stems sum to the dry mix. WithNormalize is ignored.
func Stems(params drum.Snapshot, coreOpts []core.ProcessorOption, src Source, frames int, opts ...Option) ([drum.NumSlots]*Result, error) {
	var stems [drum.NumSlots]*Result

	dry := params
	dry.Master.Drive = 0
	dry.Master.Comp = 0
	dry.Master.Reverb = 0

	opts = append(opts[:len(opts):len(opts)], func(c *config) { c.normalize = 0 })
	for i := range stems {
		eng, err := drum.NewEngine(coreOpts, drum.WithParams(&dry))
		if err != nil {
			return stems, err
		}
		var s Source
		if src != nil {
			s = &slotFilter{src: src, slot: i}
		}
		stems[i], err = Render(eng, s, frames, opts...)
		if err != nil {
			return stems, fmt.Errorf("render: stem %v: %w", drum.Kind(i), err)
		}
	}
	return stems, nil
}

// Mix sums results of equal length into a new result.
func Mix(parts ...*Result) (*Result, error) {
	if len(parts) == 0 {
		return &Result{}, nil
	}
	n := parts[0].Frames()
	out := &Result{
		Left:       make([]float64, n),
		Right:      make([]float64, n),
		SampleRate: parts[0].SampleRate,
	}
	for i, p := range parts {
		if p.Frames() != n {
			return nil, fmt.Errorf("render: part %d has %d frames, want %d", i, p.Frames(), n)
		}
		vecmath.AddBlockInPlace(out.Left, p.Left)
		vecmath.AddBlockInPlace(out.Right, p.Right)
	}
	out.Peak = out.peak()
	return out, nil
}
