// Package audio provides the cue played when a Pomodoro phase runs out:
// a WAV clip through the system audio device, the terminal bell as a
// fallback, or silence.
package audio

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/hammamikhairi/pomoclock/internal/domain"
	"github.com/hammamikhairi/pomoclock/internal/logger"
)

// Compile-time interface check.
var _ domain.AudioCue = (*Player)(nil)

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithVolume sets playback volume in [0,1]. Out-of-range values are clamped.
func WithVolume(v float64) PlayerOption {
	return func(p *Player) {
		p.volume = min(max(v, 0), 1)
	}
}

// Player plays one WAV clip via oto. Every method returns immediately;
// oto mixes on its own goroutine.
type Player struct {
	wav    []byte
	volume float64
	log    *logger.Logger

	mu     sync.Mutex
	ctx    *oto.Context
	player *oto.Player
}

// NewPlayer creates a player for the given WAV data. Nothing touches the
// audio device until Load.
func NewPlayer(wav []byte, log *logger.Logger, opts ...PlayerOption) *Player {
	p := &Player{wav: wav, volume: 1, log: log}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load decodes the clip and opens the audio device. oto allows a single
// context per process, so Load must only be called once.
func (p *Player) Load() error {
	pcm, format, err := DecodeWAV(p.wav)
	if err != nil {
		return err
	}

	op := &oto.NewContextOptions{
		SampleRate:   format.SampleRate,
		ChannelCount: format.ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrAudioUnavailable, err)
	}
	<-readyChan

	player := ctx.NewPlayer(bytes.NewReader(pcm))
	player.SetVolume(p.volume)

	p.mu.Lock()
	p.ctx = ctx
	p.player = player
	p.mu.Unlock()

	p.log.Debug("audio player loaded (rate=%d, channels=%d, %d bytes)", format.SampleRate, format.ChannelCount, len(pcm))
	return nil
}

// Play starts the clip from its current position.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player == nil {
		return domain.ErrCueNotLoaded
	}
	if err := p.player.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPlaybackFailed, err)
	}
	p.player.Play()
	p.log.Debug("audio player: playing")
	return nil
}

// Pause halts playback, keeping the position. Safe when nothing plays.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player != nil && p.player.IsPlaying() {
		p.player.Pause()
		p.log.Debug("audio player: paused")
	}
}

// SeekToStart rewinds the clip so the next Play starts from the top.
func (p *Player) SeekToStart() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player == nil {
		return
	}
	if _, err := p.player.Seek(0, io.SeekStart); err != nil {
		p.log.Warn("audio player: rewinding: %v", err)
	}
}

// Close releases the player. The oto context lives until process exit.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	return err
}
