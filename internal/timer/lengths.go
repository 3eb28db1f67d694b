package timer

import "github.com/hammamikhairi/pomoclock/internal/domain"

// IncrementSession lengthens the session by a minute, up to the maximum.
func (m *Machine) IncrementSession() { m.adjust(domain.PhaseSession, 1) }

// DecrementSession shortens the session by a minute, down to the minimum.
func (m *Machine) DecrementSession() { m.adjust(domain.PhaseSession, -1) }

// IncrementBreak lengthens the break by a minute, up to the maximum.
func (m *Machine) IncrementBreak() { m.adjust(domain.PhaseBreak, 1) }

// DecrementBreak shortens the break by a minute, down to the minimum.
func (m *Machine) DecrementBreak() { m.adjust(domain.PhaseBreak, -1) }

// SetSession sets the session length. Values outside [1,60] are ignored.
func (m *Machine) SetSession(minutes int) { m.set(domain.PhaseSession, minutes) }

// SetBreak sets the break length. Values outside [1,60] are ignored.
func (m *Machine) SetBreak(minutes int) { m.set(domain.PhaseBreak, minutes) }

func (m *Machine) adjust(p domain.Phase, delta int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setLocked(p, m.config.Minutes(p)+delta)
}

func (m *Machine) set(p domain.Phase, minutes int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setLocked(p, minutes)
}

// setLocked applies a new length. Only a change to the active phase's
// length touches the countdown; the other phase picks its new length up
// when it is entered.
func (m *Machine) setLocked(p domain.Phase, minutes int) {
	if !domain.ValidLength(minutes) || minutes == m.config.Minutes(p) {
		return
	}
	switch p {
	case domain.PhaseSession:
		m.config.SessionMinutes = minutes
	case domain.PhaseBreak:
		m.config.BreakMinutes = minutes
	}
	m.log.Debug("%s length set to %d min", p, minutes)

	if p == m.state.Phase {
		m.cancelAlertLocked()
		m.state.RemainingSeconds = m.config.Seconds(p)
		if m.state.Running {
			m.scheduleTickLocked()
		}
	}
	m.emitLocked()
}
