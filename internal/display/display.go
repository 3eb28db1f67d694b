// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] renders the current phase, the mm:ss countdown and both
// lengths, and turns key presses into calls on a [Controller]. State
// arrives through the controller's snapshot subscription, so the screen
// redraws once per state change rather than on a polling tick.
package display

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/pomoclock/internal/domain"
	"github.com/hammamikhairi/pomoclock/internal/logger"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#52525b")).
			Padding(1, 3)

	sessionLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#bbf7d0")).
				Bold(true)

	breakLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd")).
			Bold(true)

	clockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a")).
			Bold(true)

	alertClockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5")).
			Bold(true).
			Blink(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8")).
			Italic(true)
)

// Controller is what the UI drives. *timer.Machine satisfies it.
type Controller interface {
	Snapshot() domain.Snapshot
	Subscribe(buffer int) <-chan domain.Snapshot
	ToggleStartStop()
	Reset()
	IncrementSession()
	DecrementSession()
	SetSession(minutes int)
	IncrementBreak()
	DecrementBreak()
	SetBreak(minutes int)
}

// ── UI ───────────────────────────────────────────────────────────

// Compile-time interface check.
var _ domain.Notifier = (*UI)(nil)

// UI manages the terminal through Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking). Other goroutines may call
// [UI.Notify] at any time; messages sent before Run starts or after it
// returns are dropped.
type UI struct {
	ctrl    Controller
	log     *logger.Logger
	program atomic.Pointer[tea.Program]
	done    atomic.Bool
}

// NewUI creates the display. Call Run() to start.
func NewUI(ctrl Controller, log *logger.Logger) *UI {
	return &UI{ctrl: ctrl, log: log}
}

// Run starts the Bubble Tea event loop. Blocks until quit.
func (u *UI) Run() error {
	p := tea.NewProgram(newModel(u.ctrl), tea.WithAltScreen())
	u.program.Store(p)
	_, err := p.Run()
	u.done.Store(true)
	return err
}

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if p := u.program.Load(); p != nil {
		p.Quit()
	}
}

// Notify shows message below the clock until the next notice replaces it.
func (u *UI) Notify(ctx context.Context, message string) error {
	p := u.program.Load()
	if p == nil || u.done.Load() {
		u.log.Debug("notice dropped, ui not running: %s", message)
		return nil
	}
	p.Send(noticeMsg{text: message, at: time.Now()})
	return nil
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	ctrl    Controller
	updates <-chan domain.Snapshot
	snap    domain.Snapshot
	keys    keyMap
	help    help.Model
	entry   textinput.Model
	editing *domain.Phase // non-nil while a length is being typed
	notice  string
	width   int
}

// Messages.
type (
	snapshotMsg domain.Snapshot
	closedMsg   struct{}
	noticeMsg   struct {
		text string
		at   time.Time
	}
)

func newModel(ctrl Controller) model {
	ti := textinput.New()
	ti.Placeholder = "1-60"
	ti.CharLimit = 2
	ti.PromptStyle = labelStyle
	ti.TextStyle = valueStyle

	return model{
		ctrl:    ctrl,
		updates: ctrl.Subscribe(1),
		snap:    ctrl.Snapshot(),
		keys:    defaultKeyMap(),
		help:    help.New(),
		entry:   ti,
	}
}

func waitForSnapshot(ch <-chan domain.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return closedMsg{}
		}
		return snapshotMsg(snap)
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		waitForSnapshot(m.updates),
		tea.SetWindowTitle(titleFor(m.snap)),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.editing != nil {
			return m.updateEntry(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case snapshotMsg:
		m.snap = domain.Snapshot(msg)
		return m, tea.Batch(
			waitForSnapshot(m.updates),
			tea.SetWindowTitle(titleFor(m.snap)),
		)

	case noticeMsg:
		m.notice = msg.at.Format("15:04") + "  " + msg.text
		return m, nil

	case closedMsg:
		return m, tea.Quit
	}

	if m.editing != nil {
		var cmd tea.Cmd
		m.entry, cmd = m.entry.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		m.ctrl.ToggleStartStop()
	case key.Matches(msg, m.keys.Reset):
		m.ctrl.Reset()
		m.notice = ""
	case key.Matches(msg, m.keys.SessionUp):
		m.ctrl.IncrementSession()
	case key.Matches(msg, m.keys.SessionDown):
		m.ctrl.DecrementSession()
	case key.Matches(msg, m.keys.BreakUp):
		m.ctrl.IncrementBreak()
	case key.Matches(msg, m.keys.BreakDown):
		m.ctrl.DecrementBreak()
	case key.Matches(msg, m.keys.EditSession):
		return m.startEntry(domain.PhaseSession)
	case key.Matches(msg, m.keys.EditBreak):
		return m.startEntry(domain.PhaseBreak)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	default:
		return m, nil
	}
	// The subscription delivers the same state shortly; reading it now
	// keeps the keypress and the redraw in the same frame.
	m.snap = m.ctrl.Snapshot()
	return m, nil
}

func (m model) startEntry(p domain.Phase) (tea.Model, tea.Cmd) {
	m.editing = &p
	m.entry.Prompt = p.String() + " length: "
	m.entry.SetValue(strconv.Itoa(m.snap.Config.Minutes(p)))
	m.entry.CursorEnd()
	cmd := m.entry.Focus()
	return m, cmd
}

// updateEntry handles keys while a length field is open. Enter submits;
// anything that is not a whole number is dropped, and the timer itself
// ignores numbers outside [1,60].
func (m model) updateEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.closeEntry(), nil
	case tea.KeyEnter:
		phase := *m.editing
		if v, err := strconv.Atoi(strings.TrimSpace(m.entry.Value())); err == nil {
			if phase == domain.PhaseSession {
				m.ctrl.SetSession(v)
			} else {
				m.ctrl.SetBreak(v)
			}
		}
		m = m.closeEntry()
		m.snap = m.ctrl.Snapshot()
		return m, nil
	}

	var cmd tea.Cmd
	m.entry, cmd = m.entry.Update(msg)
	return m, cmd
}

func (m model) closeEntry() model {
	m.editing = nil
	m.entry.Blur()
	m.entry.Reset()
	return m
}

func (m model) View() string {
	s := m.snap
	var b strings.Builder

	label := sessionLabelStyle
	if s.State.Phase == domain.PhaseBreak {
		label = breakLabelStyle
	}
	b.WriteString(label.Render(s.State.Phase.String()))
	b.WriteString("\n\n")

	clock := clockStyle
	if s.Alerting {
		clock = alertClockStyle
	}
	b.WriteString(clock.Render(FormatClock(s.State.RemainingSeconds)))
	b.WriteString("  ")
	b.WriteString(secondaryStyle.Render(statusText(s)))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Session length ") + valueStyle.Render(plural(s.Config.SessionMinutes, "min")))
	b.WriteString(secondaryStyle.Render("   │   "))
	b.WriteString(labelStyle.Render("Break length ") + valueStyle.Render(plural(s.Config.BreakMinutes, "min")))
	b.WriteByte('\n')

	if m.editing != nil {
		b.WriteByte('\n')
		b.WriteString(m.entry.View())
		b.WriteByte('\n')
	}

	if line := statsText(s.Stats); line != "" {
		b.WriteByte('\n')
		b.WriteString(secondaryStyle.Render(line))
		b.WriteByte('\n')
	}

	if m.notice != "" {
		b.WriteByte('\n')
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))
	return frameStyle.Render(b.String())
}

// ── Helpers ──────────────────────────────────────────────────────

func statusText(s domain.Snapshot) string {
	switch {
	case s.Alerting && s.State.Running:
		return "time's up"
	case s.State.Running:
		return "running"
	default:
		return "paused"
	}
}

func statsText(st domain.Stats) string {
	var parts []string
	if st.CompletedSessions > 0 || st.CompletedBreaks > 0 {
		parts = append(parts, plural(st.CompletedSessions, "session")+", "+plural(st.CompletedBreaks, "break")+" done")
	}
	if st.CueFailures > 0 {
		parts = append(parts, fmt.Sprintf("cue failed %dx", st.CueFailures))
	}
	return strings.Join(parts, "  ·  ")
}

func titleFor(s domain.Snapshot) string {
	return fmt.Sprintf("%s %s | pomoclock", s.State.Phase, FormatClock(s.State.RemainingSeconds))
}
