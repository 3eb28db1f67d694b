package domain

// Length bounds and defaults for session and break lengths, in minutes.
const (
	MinLength             = 1
	MaxLength             = 60
	DefaultSessionMinutes = 25
	DefaultBreakMinutes   = 5
)

// Phase is one of the two mutually exclusive timer modes.
type Phase int

const (
	PhaseSession Phase = iota
	PhaseBreak
)

// String returns a human-readable phase label.
func (p Phase) String() string {
	switch p {
	case PhaseSession:
		return "Session"
	case PhaseBreak:
		return "Break"
	default:
		return "unknown"
	}
}

// Next returns the phase that follows p after a zero-crossing.
func (p Phase) Next() Phase {
	if p == PhaseSession {
		return PhaseBreak
	}
	return PhaseSession
}

// ValidLength reports whether v is an acceptable session or break length.
func ValidLength(v int) bool {
	return v >= MinLength && v <= MaxLength
}

// TimerConfig holds the user-adjustable lengths, in minutes.
type TimerConfig struct {
	SessionMinutes int
	BreakMinutes   int
}

// DefaultConfig returns the 25/5 configuration used at startup and on reset.
func DefaultConfig() TimerConfig {
	return TimerConfig{
		SessionMinutes: DefaultSessionMinutes,
		BreakMinutes:   DefaultBreakMinutes,
	}
}

// Valid reports whether both lengths are within bounds.
func (c TimerConfig) Valid() bool {
	return ValidLength(c.SessionMinutes) && ValidLength(c.BreakMinutes)
}

// Minutes returns the configured length of phase p.
func (c TimerConfig) Minutes(p Phase) int {
	if p == PhaseBreak {
		return c.BreakMinutes
	}
	return c.SessionMinutes
}

// Seconds returns the full countdown of phase p.
func (c TimerConfig) Seconds(p Phase) int {
	return c.Minutes(p) * 60
}

// TimerState is the observable countdown state.
type TimerState struct {
	Phase            Phase
	RemainingSeconds int
	Running          bool
}

// InitialState returns a paused session countdown for cfg.
func InitialState(cfg TimerConfig) TimerState {
	return TimerState{
		Phase:            PhaseSession,
		RemainingSeconds: cfg.Seconds(PhaseSession),
	}
}

// Stats counts completed phases and swallowed cue failures since the last reset.
type Stats struct {
	CompletedSessions int
	CompletedBreaks   int
	CueFailures       int
}

// Snapshot is an immutable copy of everything a presenter needs to render.
type Snapshot struct {
	Config   TimerConfig
	State    TimerState
	Alerting bool // an alert sequence is in flight
	Stats    Stats
}
