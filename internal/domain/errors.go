package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrAudioUnavailable = errors.New("audio device unavailable")
	ErrCueNotLoaded     = errors.New("audio cue not loaded")
	ErrInvalidWAV       = errors.New("invalid wav data")
	ErrPlaybackFailed   = errors.New("audio playback failed")
)
