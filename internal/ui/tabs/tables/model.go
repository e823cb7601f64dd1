// Package tables provides the raw data tab with collapsible tables.
package tables

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bgeneto/costwatch/internal/app"
)

// sectionID identifies one collapsible table section.
type sectionID int

const (
	sectionRecords sectionID = iota
	sectionModelTokens
	sectionModelCost
	sectionUserTotals
	sectionErrors

	sectionCount
)

func (s sectionID) title() string {
	switch s {
	case sectionRecords:
		return "Raw Records"
	case sectionModelTokens:
		return "Models by Tokens"
	case sectionModelCost:
		return "Models by Cost"
	case sectionUserTotals:
		return "User Totals"
	case sectionErrors:
		return "Record Errors"
	default:
		return "Unknown"
	}
}

// keyMap defines the key bindings specific to the tables tab.
type keyMap struct {
	NextSection key.Binding
	PrevSection key.Binding
	Toggle      key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextSection: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "next section"),
		),
		PrevSection: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "prev section"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "expand/collapse"),
		),
		ExpandAll: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "expand all"),
		),
		CollapseAll: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "collapse all"),
		),
	}
}

// Model represents the tables tab state.
type Model struct {
	state    *app.State
	keys     keyMap
	viewport viewport.Model

	selected sectionID
	expanded map[sectionID]bool

	width  int
	height int
}

// New creates a new tables model. The aggregate sections start expanded,
// the raw record dump collapsed.
func New(state *app.State) *Model {
	return &Model{
		state:    state,
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
		selected: sectionRecords,
		expanded: map[sectionID]bool{
			sectionModelTokens: true,
			sectionModelCost:   true,
			sectionUserTotals:  true,
		},
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.NextSection):
		m.selected = (m.selected + 1) % sectionCount
	case key.Matches(msg, m.keys.PrevSection):
		m.selected = (m.selected - 1 + sectionCount) % sectionCount
	case key.Matches(msg, m.keys.Toggle):
		m.expanded[m.selected] = !m.expanded[m.selected]
	case key.Matches(msg, m.keys.ExpandAll):
		for s := sectionID(0); s < sectionCount; s++ {
			m.expanded[s] = true
		}
	case key.Matches(msg, m.keys.CollapseAll):
		for s := sectionID(0); s < sectionCount; s++ {
			m.expanded[s] = false
		}
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return nil
}

// SetSize sets the available size for the tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.NextSection,
		m.keys.PrevSection,
		m.keys.Toggle,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.NextSection, m.keys.PrevSection},
		{m.keys.Toggle, m.keys.ExpandAll, m.keys.CollapseAll},
	}
}
