package domain

import "context"

// AudioCue is the sound played when a phase runs out. Implementations can
// use the system audio device, the terminal bell, or nothing at all.
//
// Calls arrive while the timer holds its lock, so none of them may block.
type AudioCue interface {
	// Load prepares the sound. Called once at startup.
	Load() error
	// Play starts playback from the current position. A returned error is
	// reported but never stops the timer.
	Play() error
	Pause()
	// SeekToStart rewinds the cue to time 0.
	SeekToStart()
}

// Notifier delivers messages to the user. Implementations can print to
// the terminal UI or drop the message entirely.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}
