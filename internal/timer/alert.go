package timer

import (
	"context"
	"fmt"

	"github.com/hammamikhairi/pomoclock/internal/clock"
	"github.com/hammamikhairi/pomoclock/internal/domain"
)

// alertSequence is the token for one zero-crossing: cue on, cue off,
// phase flip. Each step fires only while the sequence is still m.alert,
// so replacing or clearing m.alert cancels every remaining step at once.
type alertSequence struct {
	phase   domain.Phase
	pending clock.Timer
}

// beginAlertLocked sounds the cue and schedules the silence step. The
// tick chain stays suspended until the flip.
func (m *Machine) beginAlertLocked() {
	m.cancelAlertLocked()
	m.cancelTickLocked()

	seq := &alertSequence{phase: m.state.Phase}
	m.alert = seq
	m.log.Info("%s over, sounding cue", seq.phase)

	m.playCueLocked()
	seq.pending = m.clock.AfterFunc(m.alertStep, func() { m.silenceStep(seq) })
}

func (m *Machine) silenceStep(seq *alertSequence) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.alert != seq {
		return
	}
	m.silenceCueLocked()
	seq.pending = m.clock.AfterFunc(m.alertStep, func() { m.flipStep(seq) })
}

func (m *Machine) flipStep(seq *alertSequence) {
	m.mu.Lock()
	if m.alert != seq {
		m.mu.Unlock()
		return
	}
	m.alert = nil

	switch seq.phase {
	case domain.PhaseSession:
		m.stats.CompletedSessions++
	case domain.PhaseBreak:
		m.stats.CompletedBreaks++
	}
	next := seq.phase.Next()
	m.state.Phase = next
	m.state.RemainingSeconds = m.config.Seconds(next)
	if m.state.Running {
		m.scheduleTickLocked()
	}
	m.log.Info("%s started (%d min)", next, m.config.Minutes(next))
	m.emitLocked()

	notifier := m.notifier
	msg := fmt.Sprintf("%s started: %d min", next, m.config.Minutes(next))
	m.mu.Unlock()

	// Outside the lock: a notifier may hand the message to a UI loop that
	// is itself waiting on the machine.
	if notifier != nil {
		if err := notifier.Notify(context.Background(), msg); err != nil {
			m.log.Error("notifying phase change: %v", err)
		}
	}
}

// cancelAlertLocked drops the in-flight sequence, if any, and silences
// the cue. Safe to call repeatedly.
func (m *Machine) cancelAlertLocked() {
	seq := m.alert
	if seq == nil {
		return
	}
	m.alert = nil
	if seq.pending != nil {
		seq.pending.Stop()
	}
	m.silenceCueLocked()
	m.log.Debug("alert for %s cancelled", seq.phase)
}

// playCueLocked restarts the cue from the beginning. A playback failure
// is counted and logged, and the sequence carries on regardless.
func (m *Machine) playCueLocked() {
	if m.cue == nil {
		return
	}
	m.cue.SeekToStart()
	if err := m.cue.Play(); err != nil {
		m.stats.CueFailures++
		m.log.Warn("cue playback failed, continuing: %v", err)
	}
}

func (m *Machine) silenceCueLocked() {
	if m.cue == nil {
		return
	}
	m.cue.Pause()
	m.cue.SeekToStart()
}
