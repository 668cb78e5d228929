package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/generator"
)

// Action represents the action to take after the browser exits
type Action int

const (
	ActionNone Action = iota
	ActionSelect
	ActionQuit
)

// BrowseResult holds the result of the browser
type BrowseResult struct {
	Action Action
	Entry  *generator.Entry
}

// ruleItem implements list.Item for one compiled forward
type ruleItem struct {
	entry generator.Entry
}

func (i ruleItem) Title() string {
	return i.entry.Forward.String()
}

func (i ruleItem) Description() string {
	f := i.entry.Forward
	status := fmt.Sprintf("%s %s", statusIcon(f.Status), f.Status)
	if f.Status == generator.StatusConflict {
		status = fmt.Sprintf("%s (held by %s)", status, f.Owner)
	}
	return fmt.Sprintf("%s | %s | container %s", status, f.Bridge, i.entry.Container)
}

func (i ruleItem) FilterValue() string {
	f := i.entry.Forward
	return fmt.Sprintf("%s %d %d %s %s %s", f.Protocol, f.SourcePort, f.DestPort, f.Address, i.entry.Container, i.entry.Interface)
}

func statusIcon(s generator.Status) string {
	switch s {
	case generator.StatusActive:
		return "✓"
	case generator.StatusConflict:
		return "⚠"
	case generator.StatusOutOfBounds:
		return "✗"
	default:
		return "●"
	}
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// Model is the bubbletea model for the rule browser
type Model struct {
	list         list.Model
	entries      []generator.Entry
	disabledOnly bool
	result       BrowseResult
	quitting     bool
	width        int
	height       int
}

// NewBrowser creates a browser over the forwards of a compile report
func NewBrowser(report *generator.Report) Model {
	entries := report.Entries()

	l := list.New(buildGroupedItems(entries, false), newGroupedDelegate(), 80, 20)
	l.Title = "Firefly Forage - Port Forwards"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	skipHeaders(&l, 1)

	return Model{
		list:    l,
		entries: entries,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(ruleItem); ok {
				entry := item.entry
				m.result = BrowseResult{
					Action: ActionSelect,
					Entry:  &entry,
				}
				m.quitting = true
				return m, tea.Quit
			}

		case "d":
			m.disabledOnly = !m.disabledOnly
			cmd := m.list.SetItems(buildGroupedItems(m.entries, m.disabledOnly))
			m.list.Select(0)
			skipHeaders(&m.list, 1)
			return m, cmd

		case "q", "esc":
			m.result = BrowseResult{Action: ActionQuit}
			m.quitting = true
			return m, tea.Quit
		}

		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		if isHeaderSelected(&m.list) {
			skipHeaders(&m.list, navigationDirection(msg))
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	toggle := "[d] Disabled only"
	if m.disabledOnly {
		toggle = "[d] Show all"
	}
	items := m.list.Items()
	help := helpStyle.Render(fmt.Sprintf("%d forwards  [enter] Print rule  %s  [/] Filter  [q] Quit",
		len(items)-headerCount(items), toggle))

	return m.list.View() + "\n" + help
}

// Result returns the browser result
func (m Model) Result() BrowseResult {
	return m.result
}

// RunBrowser runs the interactive rule browser
func RunBrowser(report *generator.Report) (BrowseResult, error) {
	if len(report.Entries()) == 0 {
		return BrowseResult{Action: ActionNone}, nil
	}

	m := NewBrowser(report)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return BrowseResult{}, err
	}

	return finalModel.(Model).Result(), nil
}
