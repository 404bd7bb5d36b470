// Package playback plays a drum engine live through the system audio
// device.
package playback

import (
	"encoding/binary"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-drums/dsp/drum"
	"github.com/cwbudde/algo-drums/dsp/drum/render"
)

const (
	bytesPerFrame = 2 * 4 // stereo float32
	pendingSize   = 64
)

type program struct {
	src  render.Source
	loop int
}

// Stream renders engine output as interleaved little-endian float32 bytes.
// Read must be called from one goroutine; Trigger and SetSource may be
// called from any goroutine.
type Stream struct {
	eng     *drum.Engine
	prog    atomic.Pointer[program]
	pending chan drum.Event

	pos     atomic.Int64
	block   int
	events  []drum.Event
	samples []float32
	dropped atomic.Int64
}

// NewStream returns a silent stream around eng.
func NewStream(eng *drum.Engine) *Stream {
	block := eng.Config().BlockSize
	return &Stream{
		eng:     eng,
		pending: make(chan drum.Event, pendingSize),
		block:   block,
		events:  make([]drum.Event, 0, pendingSize+4*drum.NumSlots),
		samples: make([]float32, 2*block),
	}
}

// SetSource schedules src from frame 0. With loop > 0 the timeline wraps
// every loop frames; a nil src stops scheduled playback.
func (s *Stream) SetSource(src render.Source, loop int) {
	if src == nil {
		s.prog.Store(nil)
		return
	}
	s.pos.Store(0)
	s.prog.Store(&program{src: src, loop: loop})
}

// Trigger queues a hit for the start of the next block. It never blocks;
// hits beyond the queue capacity are dropped and counted.
func (s *Stream) Trigger(slot int, velocity float64) {
	select {
	case s.pending <- drum.Event{Slot: slot, Velocity: velocity}:
	default:
		s.dropped.Add(1)
	}
}

// Dropped returns the number of hits lost to a full queue.
func (s *Stream) Dropped() int64 { return s.dropped.Load() }

// Position returns the current timeline frame. It is safe to call while
// another goroutine reads the stream.
func (s *Stream) Position() int { return int(s.pos.Load()) }

// Read implements io.Reader. Trailing bytes that do not fill a frame are
// zeroed.
func (s *Stream) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	out := p
	for frames > 0 {
		n := min(frames, s.block)
		s.renderBlock(n)
		for i, v := range s.samples[:2*n] {
			binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(v))
		}
		out = out[n*bytesPerFrame:]
		frames -= n
	}
	clear(out)
	return len(p), nil
}

func (s *Stream) renderBlock(n int) {
	s.events = s.events[:0]
drain:
	for {
		select {
		case ev := <-s.pending:
			s.events = append(s.events, ev)
		default:
			break drain
		}
	}

	if prog := s.prog.Load(); prog != nil {
		s.events = s.scheduled(prog, n)
	}

	// Rejected only for odd lengths, which cannot happen here.
	_ = s.eng.ProcessInterleaved(s.samples[:2*n], s.events)
}

// scheduled appends the program's events for the next n frames, splitting
// the request at every loop wrap.
func (s *Stream) scheduled(prog *program, n int) []drum.Event {
	pos := int(s.pos.Load())
	if prog.loop <= 0 {
		s.pos.Store(int64(pos + n))
		return prog.src.Events(s.events, pos, n)
	}

	pos %= prog.loop
	evs := s.events
	for done := 0; done < n; {
		seg := min(n-done, prog.loop-pos)
		mark := len(evs)
		evs = prog.src.Events(evs, pos, seg)
		for i := mark; i < len(evs); i++ {
			evs[i].Offset += done
		}
		done += seg
		pos = (pos + seg) % prog.loop
	}
	s.pos.Store(int64(pos))
	return evs
}
