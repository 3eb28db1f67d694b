package display

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/pomoclock/internal/domain"
	"github.com/hammamikhairi/pomoclock/internal/logger"
)

// fakeController records intents and serves a fixed snapshot.
type fakeController struct {
	snap    domain.Snapshot
	updates chan domain.Snapshot
	calls   []string
}

func newFakeController() *fakeController {
	cfg := domain.DefaultConfig()
	return &fakeController{
		snap:    domain.Snapshot{Config: cfg, State: domain.InitialState(cfg)},
		updates: make(chan domain.Snapshot, 1),
	}
}

func (c *fakeController) Snapshot() domain.Snapshot { return c.snap }

func (c *fakeController) Subscribe(int) <-chan domain.Snapshot { return c.updates }

func (c *fakeController) ToggleStartStop() { c.calls = append(c.calls, "toggle") }
func (c *fakeController) Reset() { c.calls = append(c.calls, "reset") }
func (c *fakeController) IncrementSession() { c.calls = append(c.calls, "session+") }
func (c *fakeController) DecrementSession() { c.calls = append(c.calls, "session-") }
func (c *fakeController) IncrementBreak() { c.calls = append(c.calls, "break+") }
func (c *fakeController) DecrementBreak() { c.calls = append(c.calls, "break-") }

func (c *fakeController) SetSession(v int) {
	c.calls = append(c.calls, "setSession")
	c.snap.Config.SessionMinutes = v
}

func (c *fakeController) SetBreak(v int) {
	c.calls = append(c.calls, "setBreak")
	c.snap.Config.BreakMinutes = v
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(model)
		require.True(t, ok)
	}
	return m
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{60, "01:00"},
		{1500, "25:00"},
		{1499, "24:59"},
		{3600, "60:00"},
		{-5, "00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatClock(tt.seconds), "seconds=%d", tt.seconds)
	}
}

func TestKeysForwardIntents(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want string
	}{
		{"space toggles", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, "toggle"},
		{"reset", runes("r"), "reset"},
		{"session up", runes("+"), "session+"},
		{"session up unshifted", runes("="), "session+"},
		{"session down", runes("-"), "session-"},
		{"break up", runes("]"), "break+"},
		{"break down", runes("["), "break-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := newFakeController()
			press(t, newModel(ctrl), tt.key)
			assert.Equal(t, []string{tt.want}, ctrl.calls)
		})
	}
}

func TestDirectEntrySetsLength(t *testing.T) {
	ctrl := newFakeController()
	m := newModel(ctrl)

	m = press(t, m, runes("s"))
	require.NotNil(t, m.editing)
	assert.Equal(t, "25", m.entry.Value(), "field opens with the current length")

	m = press(t, m,
		tea.KeyMsg{Type: tea.KeyBackspace},
		tea.KeyMsg{Type: tea.KeyBackspace},
		runes("4"), runes("2"),
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	assert.Nil(t, m.editing)
	assert.Equal(t, []string{"setSession"}, ctrl.calls)
	assert.Equal(t, 42, ctrl.snap.Config.SessionMinutes)
	assert.Contains(t, m.View(), "42 mins")
}

func TestDirectEntryIgnoresGarbage(t *testing.T) {
	ctrl := newFakeController()
	m := newModel(ctrl)

	m = press(t, m, runes("b"))
	m.entry.SetValue("x")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, ctrl.calls, "non-numeric input is dropped")

	m = press(t, m, runes("b"), runes("q"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.editing)
	assert.Empty(t, ctrl.calls, "esc cancels and q types instead of quitting")
}

func TestSnapshotRendersState(t *testing.T) {
	ctrl := newFakeController()
	m := newModel(ctrl)
	assert.Contains(t, m.View(), "25:00")
	assert.Contains(t, m.View(), "paused")

	snap := ctrl.snap
	snap.State = domain.TimerState{Phase: domain.PhaseBreak, RemainingSeconds: 0, Running: true}
	snap.Alerting = true
	snap.Stats = domain.Stats{CompletedSessions: 1, CueFailures: 2}

	next, cmd := m.Update(snapshotMsg(snap))
	require.NotNil(t, cmd, "keeps listening for snapshots")
	view := next.(model).View()
	assert.Contains(t, view, "Break")
	assert.Contains(t, view, "00:00")
	assert.Contains(t, view, "time's up")
	assert.Contains(t, view, "1 session, 0 breaks done")
	assert.Contains(t, view, "cue failed 2x")
}

func TestWaitForSnapshot(t *testing.T) {
	ch := make(chan domain.Snapshot, 1)
	want := domain.Snapshot{State: domain.TimerState{RemainingSeconds: 7}}
	ch <- want

	assert.Equal(t, snapshotMsg(want), waitForSnapshot(ch)())

	close(ch)
	assert.Equal(t, closedMsg{}, waitForSnapshot(ch)())
}

func TestNoticeAndQuit(t *testing.T) {
	m := newModel(newFakeController())

	m = press(t, m, noticeMsg{text: "Break started: 5 min", at: time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)})
	assert.Contains(t, m.View(), "10:30  Break started: 5 min")

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(closedMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestNotifyBeforeRunIsDropped(t *testing.T) {
	ui := NewUI(newFakeController(), logger.New(logger.LevelOff, nil))
	assert.NoError(t, ui.Notify(context.Background(), "ignored"))
	ui.Quit()
}
