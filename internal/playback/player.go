//go:build !headless

package playback

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-drums/internal/log"
)

// Player feeds a Stream to the default audio device.
//
// oto allows one context per process, so create a single Player.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
	stream *Stream
	log    *log.Logger

	mu      sync.Mutex
	started bool
}

// NewPlayer opens the audio device at sampleRate. bufferTime sets the
// device buffer length; zero picks oto's default.
func NewPlayer(stream *Stream, sampleRate int, bufferTime time.Duration, logger *log.Logger) (*Player, error) {
	if logger == nil {
		logger = log.Discard()
	}
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferTime,
	})
	if err != nil {
		return nil, fmt.Errorf("playback: open audio device: %w", err)
	}
	<-ready
	logger.Debugf("audio device ready: %d Hz, buffer %v", sampleRate, bufferTime)

	return &Player{
		ctx:    ctx,
		player: ctx.NewPlayer(stream),
		stream: stream,
		log:    logger,
	}, nil
}

// Stream returns the stream being played.
func (p *Player) Stream() *Stream { return p.stream }

// Start begins playback.
func (p *Player) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started && p.player != nil {
		p.player.Play()
		p.started = true
		p.log.Infof("playback started")
	}
}

// IsStarted reports whether playback is running.
func (p *Player) IsStarted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started
}

// Close stops playback and releases the player.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	p.started = false
	if n := p.stream.Dropped(); n > 0 {
		p.log.Warnf("%d live hits dropped", n)
	}
	if err != nil {
		return fmt.Errorf("playback: close: %w", err)
	}
	return nil
}
