package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/turno/internal/cli/formatter"
	"github.com/alexanderramin/turno/internal/domain"
	"github.com/alexanderramin/turno/internal/events"
	"github.com/alexanderramin/turno/internal/payroll"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live view of the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("watch needs an interactive terminal")
			}
			model := newWatchModel(app)
			_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}
}

// ── messages ─────────────────────────────────────────────────────────────────

type tickMsg time.Time

// sessionLoadedMsg carries a fresh read of the open session.
type sessionLoadedMsg struct {
	session  *domain.WorkSession
	workType *domain.WorkType
	earnings *payroll.Earnings
	err      error
}

// busMsg signals an entity change published on the event bus.
type busMsg events.Change

// ── model ────────────────────────────────────────────────────────────────────

type watchModel struct {
	app     *App
	spin    spinner.Model
	changes <-chan events.Change
	cancel  func()

	session  *domain.WorkSession
	workType *domain.WorkType
	earnings *payroll.Earnings
	err      error

	cursor int
	keys   watchKeys
}

type watchKeys struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Skip   key.Binding
	Pause  key.Binding
	Quit   key.Binding
}

func newWatchModel(app *App) *watchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = formatter.StyleHeader

	ch, cancel := app.Bus.Subscribe()

	return &watchModel{
		app:     app,
		spin:    s,
		changes: ch,
		cancel:  cancel,
		keys: watchKeys{
			Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
			Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
			Toggle: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
			Skip:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip")),
			Pause:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause/resume")),
			Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		},
	}
}

func (m *watchModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.loadSession(), m.tick(), m.waitForChange())
}

func (m *watchModel) tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *watchModel) waitForChange() tea.Cmd {
	return func() tea.Msg {
		c, ok := <-m.changes
		if !ok {
			return nil
		}
		return busMsg(c)
	}
}

func (m *watchModel) loadSession() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		s, err := m.app.Engine.Active(ctx, m.app.UserID)
		if err != nil {
			return sessionLoadedMsg{err: err}
		}
		if s == nil {
			return sessionLoadedMsg{}
		}
		wt, err := m.app.WorkTypes.GetByID(ctx, s.WorkTypeID)
		if err != nil {
			return sessionLoadedMsg{err: err}
		}
		earnings, _, err := m.app.Engine.EarningsPreview(ctx, m.app.UserID)
		if err != nil {
			return sessionLoadedMsg{session: s, workType: wt}
		}
		return sessionLoadedMsg{session: s, workType: wt, earnings: &earnings}
	}
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.cancel()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.session != nil && m.cursor < len(m.session.Snapshot)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Toggle):
			return m, m.setItem(domain.ItemCompleted)
		case key.Matches(msg, m.keys.Skip):
			return m, m.setItem(domain.ItemSkipped)
		case key.Matches(msg, m.keys.Pause):
			return m, m.togglePause()
		}

	case tickMsg:
		return m, m.tick()

	case busMsg:
		return m, tea.Batch(m.loadSession(), m.waitForChange())

	case sessionLoadedMsg:
		m.session = msg.session
		m.workType = msg.workType
		m.earnings = msg.earnings
		m.err = msg.err
		if m.session != nil && m.cursor >= len(m.session.Snapshot) {
			m.cursor = 0
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// setItem flips the item under the cursor. A completed item toggles back to
// pending.
func (m *watchModel) setItem(status domain.ItemStatus) tea.Cmd {
	if m.session == nil || m.cursor >= len(m.session.Snapshot) {
		return nil
	}
	itemID := m.session.Snapshot[m.cursor].ID
	if status == domain.ItemCompleted {
		for _, p := range m.session.Progress {
			if p.ItemID == itemID && p.Status == domain.ItemCompleted {
				status = domain.ItemPending
				break
			}
		}
	}
	return func() tea.Msg {
		_, err := m.app.Engine.SetItemStatus(context.Background(), m.app.UserID, itemID, status, "")
		if err != nil {
			return sessionLoadedMsg{err: err}
		}
		return m.loadSession()()
	}
}

func (m *watchModel) togglePause() tea.Cmd {
	if m.session == nil {
		return nil
	}
	paused := m.session.Status == domain.SessionPaused
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if paused {
			_, err = m.app.Engine.Resume(ctx, m.app.UserID)
		} else {
			_, err = m.app.Engine.Pause(ctx, m.app.UserID)
		}
		if err != nil {
			return sessionLoadedMsg{err: err}
		}
		return m.loadSession()()
	}
}

func (m *watchModel) View() string {
	if m.err != nil {
		return formatter.StyleRed.Render("error: "+m.err.Error()) + "\n"
	}
	if m.session == nil {
		return formatter.Dim("No open session. Start one with `turno start`.") + "\n" +
			formatter.Dim("q to quit") + "\n"
	}

	now := time.Now()
	view := m.spin.View() + " " +
		formatter.FormatSessionStatus(m.session, m.workType, m.earnings, now, m.app.Loc())

	// Cursor marker over the checklist rendering.
	if len(m.session.Snapshot) > 0 {
		view += "\n" + formatter.Dim(fmt.Sprintf("item %d/%d selected", m.cursor+1, len(m.session.Snapshot)))
	}
	view += "\n" + formatter.Dim("space toggle · s skip · p pause/resume · q quit") + "\n"
	return view
}
