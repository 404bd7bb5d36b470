// Package midimap translates General MIDI drum notes into drum engine events.
//
// Only note starts are used: the voices are one-shots, so note ends and
// NoteOn messages with velocity 0 are dropped.
package midimap

import (
	"slices"

	"gitlab.com/gomidi/midi/v2"

	"github.com/cwbudde/algo-drums/dsp/drum"
)

// GM percussion notes understood by Slot.
const (
	NoteBassDrum  uint8 = 36
	NoteSnare     uint8 = 38
	NoteHandClap  uint8 = 39
	NoteClosedHat uint8 = 42
	NoteLowTom    uint8 = 43
	NoteLowMidTom uint8 = 45
	NoteOpenHat   uint8 = 46
	NoteHiMidTom  uint8 = 47
	NoteCrash     uint8 = 49
	NoteRide      uint8 = 51
)

const maxVelocity = 127.0

var noteSlots = map[uint8]drum.Kind{
	NoteBassDrum:  drum.Kick,
	NoteSnare:     drum.Snare,
	NoteHandClap:  drum.Clap,
	NoteClosedHat: drum.HatClosed,
	NoteOpenHat:   drum.HatOpen,
	NoteLowTom:    drum.Tom,
	NoteLowMidTom: drum.Tom,
	NoteHiMidTom:  drum.Tom,
	NoteCrash:     drum.Perc1,
	NoteRide:      drum.Perc2,
}

var slotNotes = [drum.NumSlots]uint8{
	drum.Kick:      NoteBassDrum,
	drum.Snare:     NoteSnare,
	drum.Clap:      NoteHandClap,
	drum.HatClosed: NoteClosedHat,
	drum.HatOpen:   NoteOpenHat,
	drum.Tom:       NoteLowMidTom,
	drum.Perc1:     NoteCrash,
	drum.Perc2:     NoteRide,
}

// Slot returns the slot played by note.
func Slot(note uint8) (drum.Kind, bool) {
	k, ok := noteSlots[note]
	return k, ok
}

// Note returns the canonical GM note of slot k.
func Note(k drum.Kind) (uint8, bool) {
	if !k.Valid() {
		return 0, false
	}
	return slotNotes[k], true
}

// Velocity scales a 7-bit MIDI velocity to 0..1.
func Velocity(v uint8) float64 {
	if v > 127 {
		v = 127
	}
	return float64(v) / maxVelocity
}

// Event converts msg into an engine event at offset. It reports false for
// anything but a note start on a mapped note. The channel is ignored.
func Event(msg midi.Message, offset int) (drum.Event, bool) {
	var ch, key, vel uint8
	if !msg.GetNoteStart(&ch, &key, &vel) {
		return drum.Event{}, false
	}
	k, ok := Slot(key)
	if !ok {
		return drum.Event{}, false
	}
	return drum.Event{Slot: int(k), Velocity: Velocity(vel), Offset: offset}, true
}

// Timed is a MIDI message stamped with an absolute frame position.
type Timed struct {
	Frame int
	Msg   midi.Message
}

// Clip is a frame-stamped MIDI message list that can be replayed block by
// block. Messages are kept sorted by frame.
type Clip struct {
	msgs []Timed
}

// NewClip returns a clip holding msgs, stably sorted by frame.
func NewClip(msgs ...Timed) *Clip {
	c := &Clip{msgs: slices.Clone(msgs)}
	slices.SortStableFunc(c.msgs, func(a, b Timed) int { return a.Frame - b.Frame })
	return c
}

// Add inserts msg at frame, after any message already at that frame.
func (c *Clip) Add(frame int, msg midi.Message) {
	i, _ := slices.BinarySearchFunc(c.msgs, frame+1, func(t Timed, f int) int { return t.Frame - f })
	c.msgs = slices.Insert(c.msgs, i, Timed{Frame: frame, Msg: msg})
}

// Len returns the number of stored messages.
func (c *Clip) Len() int { return len(c.msgs) }

// End returns the frame just after the last message.
func (c *Clip) End() int {
	if len(c.msgs) == 0 {
		return 0
	}
	return c.msgs[len(c.msgs)-1].Frame + 1
}

// Events appends the events of the block [blockStart, blockStart+blockLen)
// to dst with block-relative offsets.
func (c *Clip) Events(dst []drum.Event, blockStart, blockLen int) []drum.Event {
	i, _ := slices.BinarySearchFunc(c.msgs, blockStart, func(t Timed, f int) int { return t.Frame - f })
	end := blockStart + blockLen
	for ; i < len(c.msgs) && c.msgs[i].Frame < end; i++ {
		if ev, ok := Event(c.msgs[i].Msg, c.msgs[i].Frame-blockStart); ok {
			dst = append(dst, ev)
		}
	}
	return dst
}
