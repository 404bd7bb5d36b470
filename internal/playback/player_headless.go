//go:build headless

package playback

import (
	"errors"
	"time"

	"github.com/cwbudde/algo-drums/internal/log"
)

// ErrNoAudio is returned by NewPlayer in headless builds.
var ErrNoAudio = errors.New("playback: built without audio output (headless)")

// Player is unavailable in headless builds.
type Player struct{ stream *Stream }

// NewPlayer always fails in headless builds.
func NewPlayer(_ *Stream, _ int, _ time.Duration, _ *log.Logger) (*Player, error) {
	return nil, ErrNoAudio
}

func (p *Player) Stream() *Stream { return p.stream }

func (p *Player) Start() {}

func (p *Player) IsStarted() bool { return false }

func (p *Player) Close() error { return nil }
