package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/hammamikhairi/pomoclock/internal/domain"
)

// Compile-time interface checks.
var (
	_ domain.AudioCue = (*Bell)(nil)
	_ domain.AudioCue = Silent{}
)

// Bell rings the terminal bell. Used when no audio device is available.
type Bell struct {
	out io.Writer
}

// NewBell creates a bell writing to out, or os.Stdout when out is nil.
func NewBell(out io.Writer) *Bell {
	if out == nil {
		out = os.Stdout
	}
	return &Bell{out: out}
}

// Load does nothing.
func (b *Bell) Load() error { return nil }

// Play writes the BEL character.
func (b *Bell) Play() error {
	if _, err := fmt.Fprint(b.out, "\a"); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPlaybackFailed, err)
	}
	return nil
}

// Pause does nothing; a bell cannot be interrupted.
func (b *Bell) Pause() {}

// SeekToStart does nothing.
func (b *Bell) SeekToStart() {}

// Silent is a cue that makes no sound. Used with --no-sound.
type Silent struct{}

func (Silent) Load() error  { return nil }
func (Silent) Play() error  { return nil }
func (Silent) Pause()       {}
func (Silent) SeekToStart() {}
