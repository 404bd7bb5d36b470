package sequence

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-drums/dsp/core"
	"github.com/cwbudde/algo-drums/dsp/drum"
)

const (
	defaultTempoBPM     = 120.0
	defaultStepsPerBeat = 4
)

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithTempo sets the tempo in beats per minute. Non-positive values are ignored.
func WithTempo(bpm float64) Option {
	return func(s *Sequencer) {
		if bpm > 0 && !math.IsInf(bpm, 0) {
			s.tempoBPM = bpm
		}
	}
}

// WithSwing sets the shuffle amount, 0..1.
func WithSwing(amount float64) Option {
	return func(s *Sequencer) {
		s.swing = core.ClampUnit(amount)
	}
}

// WithStepsPerBeat sets the step resolution (4 = sixteenth notes).
func WithStepsPerBeat(n int) Option {
	return func(s *Sequencer) {
		if n > 0 {
			s.stepsPerBeat = n
		}
	}
}

// Sequencer loops a Pattern on an absolute frame timeline.
//
// Step n starts on frame StepFrame(n). With swing, even steps are
// stretched and odd steps shortened by the same amount, so every pair of
// steps keeps its straight length.
type Sequencer struct {
	pattern      *Pattern
	sampleRate   float64
	tempoBPM     float64
	swing        float64
	stepsPerBeat int
}

// New returns a sequencer playing p at sampleRate.
func New(p *Pattern, sampleRate float64, opts ...Option) (*Sequencer, error) {
	if p == nil {
		return nil, ErrEmptyPattern
	}
	if !core.ValidSampleRate(sampleRate) {
		return nil, fmt.Errorf("sequencer sample rate must be positive and finite: %f", sampleRate)
	}
	s := &Sequencer{
		pattern:      p,
		sampleRate:   sampleRate,
		tempoBPM:     defaultTempoBPM,
		stepsPerBeat: defaultStepsPerBeat,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Pattern returns the pattern being played.
func (s *Sequencer) Pattern() *Pattern { return s.pattern }

// Tempo returns the tempo in BPM.
func (s *Sequencer) Tempo() float64 { return s.tempoBPM }

// Swing returns the shuffle amount.
func (s *Sequencer) Swing() float64 { return s.swing }

// StepDuration returns the straight step length in frames.
func (s *Sequencer) StepDuration() float64 {
	return s.sampleRate * 60.0 / s.tempoBPM / float64(s.stepsPerBeat)
}

// StepFrame returns the first frame of global step n.
func (s *Sequencer) StepFrame(n int) int {
	if n <= 0 {
		return 0
	}
	base := s.StepDuration()
	pos := float64(n/2) * 2 * base
	if n%2 == 1 {
		pos += base * (1 + shuffleRatio(s.swing))
	}
	return int(math.Floor(pos))
}

// LoopFrames returns the number of frames covered by bars passes through
// the pattern.
func (s *Sequencer) LoopFrames(bars int) int {
	return s.StepFrame(bars * s.pattern.steps)
}

// Events appends the hits starting in [blockStart, blockStart+blockLen) to
// dst, ordered by offset and then by slot. Offsets are block-relative.
func (s *Sequencer) Events(dst []drum.Event, blockStart, blockLen int) []drum.Event {
	if blockLen <= 0 {
		return dst
	}
	end := blockStart + blockLen

	n := int(float64(blockStart)/s.StepDuration()) - 2
	if n < 0 {
		n = 0
	}
	for {
		frame := s.StepFrame(n)
		if frame >= end {
			return dst
		}
		if frame >= blockStart {
			step := n % s.pattern.steps
			for _, k := range drum.Kinds {
				if v := s.pattern.cells[k][step]; v > 0 {
					dst = append(dst, drum.Event{Slot: int(k), Velocity: v, Offset: frame - blockStart})
				}
			}
		}
		n++
	}
}

// shuffleRatio maps the 0..1 swing control to a 0..1/3 timing offset.
func shuffleRatio(swing float64) float64 {
	return (1.0 / 3.0) * math.Pow(core.ClampUnit(swing), 1.6)
}
