// Package issues provides the validation issues tab.
package issues

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/r-maier/finetune-prep-tui/internal/app"
	"github.com/r-maier/finetune-prep-tui/internal/models"
)

// keyMap defines the key bindings specific to the issues tab.
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous issue"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next issue"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "first issue"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last issue"),
		),
	}
}

// Model represents the issues tab state.
type Model struct {
	state  *app.State
	width  int
	height int
	keys   keyMap

	selected int
	offset   int
}

// New creates a new issues model.
func New(state *app.State) *Model {
	return &Model{
		state: state,
		keys:  defaultKeyMap(),
	}
}

// Init initializes the issues tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) issues() []models.Issue {
	analysis := m.state.GetAnalysis()
	if analysis == nil {
		return nil
	}
	return analysis.Issues
}

// Update handles messages for the issues tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case app.AnalysisLoadedMsg:
		// Clamp selection when the issue list shrinks
		if n := len(m.issues()); m.selected >= n {
			m.selected = max(0, n-1)
		}
		m.state.SetSelectedIssueIndex(m.selected)

	case tea.KeyMsg:
		m.handleKeyMsg(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) {
	n := len(m.issues())
	if n == 0 {
		return
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < n-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = n - 1
	}

	m.state.SetSelectedIssueIndex(m.selected)
	m.scrollToSelection()
}

// scrollToSelection keeps the selected row visible.
func (m *Model) scrollToSelection() {
	visible := m.visibleRows()
	if visible <= 0 {
		return
	}
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+visible {
		m.offset = m.selected - visible + 1
	}
}

// visibleRows is the number of issue rows that fit below the header cards.
func (m *Model) visibleRows() int {
	return max(m.height-10, 3)
}

// SetSize sets the available size for the issues tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.scrollToSelection()
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.Up,
		m.keys.Down,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down},
		{m.keys.Top, m.keys.Bottom},
	}
}
