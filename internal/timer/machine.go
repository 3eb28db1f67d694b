// Package timer implements the Pomodoro state machine: the session and
// break lengths, the 1 Hz countdown, and the alert sequence that sounds
// the cue and flips the phase when the countdown reaches zero.
package timer

import (
	"sync"
	"time"

	"github.com/hammamikhairi/pomoclock/internal/clock"
	"github.com/hammamikhairi/pomoclock/internal/domain"
	"github.com/hammamikhairi/pomoclock/internal/logger"
)

// Option configures the machine.
type Option func(*Machine)

// WithClock sets the scheduler used for ticks and alert steps.
func WithClock(c clock.Clock) Option {
	return func(m *Machine) {
		m.clock = c
	}
}

// WithNotifier sets where phase-change messages are delivered.
func WithNotifier(n domain.Notifier) Option {
	return func(m *Machine) {
		m.notifier = n
	}
}

// WithTickInterval sets the countdown period.
func WithTickInterval(d time.Duration) Option {
	return func(m *Machine) {
		m.tickInterval = d
	}
}

// WithAlertStep sets the delay between alert steps.
func WithAlertStep(d time.Duration) Option {
	return func(m *Machine) {
		m.alertStep = d
	}
}

// WithInitialConfig sets the lengths used at startup. Reset still
// returns to the 25/5 defaults. Invalid configurations are ignored.
func WithInitialConfig(cfg domain.TimerConfig) Option {
	return func(m *Machine) {
		if cfg.Valid() {
			m.config = cfg
		}
	}
}

// Machine owns the timer configuration and countdown state. Every
// mutation, including scheduled ticks and alert steps, happens under mu.
type Machine struct {
	clock        clock.Clock
	cue          domain.AudioCue
	notifier     domain.Notifier
	log          *logger.Logger
	tickInterval time.Duration
	alertStep    time.Duration

	mu      sync.Mutex
	config  domain.TimerConfig
	state   domain.TimerState
	stats   domain.Stats
	tick    clock.Timer
	tickGen uint64
	alert   *alertSequence
	subs    []chan domain.Snapshot
	closed  bool
}

// New creates a paused machine at the start of a session.
func New(cue domain.AudioCue, log *logger.Logger, opts ...Option) *Machine {
	m := &Machine{
		clock:        clock.Real{},
		cue:          cue,
		log:          log,
		tickInterval: time.Second,
		alertStep:    time.Second,
		config:       domain.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.state = domain.InitialState(m.config)
	return m
}

// SetNotifier replaces the phase-change notifier. Useful when the
// notifier itself depends on the machine.
func (m *Machine) SetNotifier(n domain.Notifier) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifier = n
}

// Snapshot returns the current configuration and state.
func (m *Machine) Snapshot() domain.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Subscribe registers an observer. The channel always holds the most
// recent snapshot: when the reader falls behind, older snapshots are
// replaced rather than queued. Channels are closed by Close.
func (m *Machine) Subscribe(buffer int) <-chan domain.Snapshot {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan domain.Snapshot, buffer)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		close(ch)
		return ch
	}
	m.subs = append(m.subs, ch)
	return ch
}

// Start resumes the countdown. Starting at zero re-enters the alert
// sequence, since that zero-crossing never completed.
func (m *Machine) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startLocked()
}

// Stop pauses the countdown. A partial second is discarded, and any
// alert sequence in flight is cancelled.
func (m *Machine) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

// ToggleStartStop starts a paused machine or stops a running one.
func (m *Machine) ToggleStartStop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Running {
		m.stopLocked()
	} else {
		m.startLocked()
	}
}

// Reset returns to a paused 25/5 session, cancels every pending callback
// and silences the cue.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cancelTickLocked()
	m.cancelAlertLocked()
	m.silenceCueLocked()

	m.config = domain.DefaultConfig()
	m.state = domain.InitialState(m.config)
	m.stats = domain.Stats{}
	m.log.Info("reset to defaults")
	m.emitLocked()
}

// Close stops all scheduling and closes subscriber channels.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.closed = true
	m.state.Running = false
	m.cancelTickLocked()
	m.cancelAlertLocked()
	for _, ch := range m.subs {
		close(ch)
	}
	m.subs = nil
}

func (m *Machine) startLocked() {
	if m.state.Running || m.closed {
		return
	}
	m.state.Running = true
	m.log.Debug("start: %s with %ds left", m.state.Phase, m.state.RemainingSeconds)

	if m.state.RemainingSeconds == 0 {
		m.beginAlertLocked()
	} else {
		m.scheduleTickLocked()
	}
	m.emitLocked()
}

func (m *Machine) stopLocked() {
	if !m.state.Running {
		return
	}
	m.state.Running = false
	m.cancelTickLocked()
	m.cancelAlertLocked()
	m.log.Debug("stop: %s with %ds left", m.state.Phase, m.state.RemainingSeconds)
	m.emitLocked()
}

func (m *Machine) scheduleTickLocked() {
	m.cancelTickLocked()
	gen := m.tickGen
	m.tick = m.clock.AfterFunc(m.tickInterval, func() { m.onTick(gen) })
}

func (m *Machine) cancelTickLocked() {
	m.tickGen++
	if m.tick != nil {
		m.tick.Stop()
		m.tick = nil
	}
}

func (m *Machine) onTick(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// A stale callback can still fire after Stop if the wall-clock timer
	// had already been dispatched.
	if gen != m.tickGen || !m.state.Running || m.alert != nil {
		return
	}
	m.tick = nil

	if m.state.RemainingSeconds > 0 {
		m.state.RemainingSeconds--
	}
	if m.state.RemainingSeconds == 0 {
		m.beginAlertLocked()
	} else {
		m.scheduleTickLocked()
	}
	m.emitLocked()
}

func (m *Machine) snapshotLocked() domain.Snapshot {
	return domain.Snapshot{
		Config:   m.config,
		State:    m.state,
		Alerting: m.alert != nil,
		Stats:    m.stats,
	}
}

func (m *Machine) emitLocked() {
	snap := m.snapshotLocked()
	for _, ch := range m.subs {
		select {
		case ch <- snap:
			continue
		default:
		}
		// Full: drop the oldest so the newest state is never lost.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}
