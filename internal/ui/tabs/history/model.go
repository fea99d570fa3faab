// Package history provides the run history tab.
package history

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/r-maier/finetune-prep-tui/internal/app"
	"github.com/r-maier/finetune-prep-tui/internal/models"
	"github.com/r-maier/finetune-prep-tui/internal/services"
)

// runLimits are the selectable history window sizes, cycled with 't'.
var runLimits = []int{10, 30, 90}

// keyMap defines the key bindings specific to the history tab.
type keyMap struct {
	ToggleLimit key.Binding
	Refresh     key.Binding
	Up          key.Binding
	Down        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ToggleLimit: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle window size"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
	}
}

// historyLoadedMsg is sent when run history is loaded.
type historyLoadedMsg struct {
	runs  []models.AnalysisRun
	trend []float64
}

// historyErrorMsg is sent when loading run history fails.
type historyErrorMsg struct {
	err string
}

// Model represents the history tab state.
type Model struct {
	state    *app.State
	services *services.Manager
	width    int
	height   int
	keys     keyMap
	viewport viewport.Model

	limitIdx    int
	runs        []models.AnalysisRun
	trend       []float64
	loading     bool
	lastRefresh time.Time
	errorMsg    string
}

// New creates a new history model.
func New(state *app.State, svc *services.Manager) *Model {
	return &Model{
		state:    state,
		services: svc,
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// Init initializes the history tab.
func (m *Model) Init() tea.Cmd {
	m.loading = true
	return m.loadHistoryCmd()
}

func (m *Model) limit() int {
	return runLimits[m.limitIdx]
}

// loadHistoryCmd creates a command to load run history from the database.
func (m *Model) loadHistoryCmd() tea.Cmd {
	limit := m.limit()
	return func() tea.Msg {
		if m.services == nil {
			return historyErrorMsg{err: "services not initialized"}
		}

		runs, err := m.services.GetRecentRuns(limit)
		if err != nil {
			return historyErrorMsg{err: err.Error()}
		}

		trend, err := m.services.GetBilledTrend(limit)
		if err != nil {
			return historyErrorMsg{err: err.Error()}
		}

		return historyLoadedMsg{runs: runs, trend: trend}
	}
}

// Update handles messages for the history tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case historyLoadedMsg:
		m.runs = msg.runs
		m.trend = msg.trend
		m.loading = false
		m.lastRefresh = time.Now()
		m.errorMsg = ""

	case historyErrorMsg:
		m.loading = false
		m.errorMsg = msg.err
		cmds = append(cmds, func() tea.Msg {
			return app.AddNotificationMsg{
				Type:     app.NotificationError,
				Message:  fmt.Sprintf("History error: %s", msg.err),
				Duration: app.LongNotificationDuration,
			}
		})

	case app.AnalysisLoadedMsg:
		// A new run was just recorded
		if !m.loading {
			m.loading = true
			cmds = append(cmds, m.loadHistoryCmd())
		}

	case app.TabSwitchMsg:
		if msg.Tab == app.TabHistory && !m.loading {
			m.loading = true
			cmds = append(cmds, m.loadHistoryCmd())
		}

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd
	switch {
	case key.Matches(msg, m.keys.ToggleLimit):
		m.limitIdx = (m.limitIdx + 1) % len(runLimits)
		m.loading = true
		cmds = append(cmds, m.loadHistoryCmd())

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		cmds = append(cmds, m.loadHistoryCmd())

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// SetSize sets the available size for the history tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.ToggleLimit,
		m.keys.Refresh,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.ToggleLimit, m.keys.Refresh},
		{m.keys.Up, m.keys.Down},
	}
}
