package tui

import (
	"net/netip"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/generator"
	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/rules"
)

func forward(proto rules.Protocol, src int, addr string, status generator.Status) generator.Forward {
	f := generator.Forward{
		Rule: rules.Rule{
			Protocol:   proto,
			Bridge:     "eno1",
			SourcePort: src,
			Address:    netip.MustParseAddr(addr),
			DestPort:   src,
			Disabled:   status != generator.StatusActive,
		},
		Status: status,
	}
	if status == generator.StatusConflict {
		f.Owner = netip.MustParseAddr("10.0.0.1")
	}
	return f
}

func testReport() *generator.Report {
	return &generator.Report{Interfaces: []generator.InterfaceReport{{
		Name:   "eno1",
		Bridge: "eno1",
		Subnet: netip.MustParsePrefix("10.0.0.0/24"),
		Containers: []generator.ContainerReport{
			{Key: "1", ID: 1, State: generator.StateRulesEmitted, Forwards: []generator.Forward{
				forward(rules.TCP, 8080, "10.0.0.1", generator.StatusActive),
			}},
			{Key: "2", ID: 2, State: generator.StateRulesEmitted, Forwards: []generator.Forward{
				forward(rules.TCP, 8080, "10.0.0.2", generator.StatusConflict),
				forward(rules.UDP, 8080, "10.0.0.2", generator.StatusActive),
			}},
		},
	}}}
}

func TestRuleItemMethods(t *testing.T) {
	item := ruleItem{entry: generator.Entry{
		Interface: "eno1",
		Container: "2",
		Forward:   forward(rules.TCP, 8080, "10.0.0.2", generator.StatusConflict),
	}}

	t.Run("Title", func(t *testing.T) {
		if got, want := item.Title(), "tcp 8080 -> 10.0.0.2:8080"; got != want {
			t.Errorf("Title() = %q, want %q", got, want)
		}
	})

	t.Run("Description", func(t *testing.T) {
		desc := item.Description()
		for _, want := range []string{"⚠", "conflict", "held by 10.0.0.1", "container 2"} {
			if !strings.Contains(desc, want) {
				t.Errorf("Description() = %q, want it to contain %q", desc, want)
			}
		}
	})

	t.Run("FilterValue", func(t *testing.T) {
		fv := item.FilterValue()
		for _, want := range []string{"tcp", "8080", "10.0.0.2", "eno1"} {
			if !strings.Contains(fv, want) {
				t.Errorf("FilterValue() = %q, want it to contain %q", fv, want)
			}
		}
	})
}

func TestStatusIcons(t *testing.T) {
	tests := []struct {
		status generator.Status
		icon   string
	}{
		{generator.StatusActive, "✓"},
		{generator.StatusConflict, "⚠"},
		{generator.StatusOutOfBounds, "✗"},
		{generator.Status(99), "●"},
	}

	for _, tt := range tests {
		t.Run(tt.icon, func(t *testing.T) {
			if got := statusIcon(tt.status); got != tt.icon {
				t.Errorf("statusIcon(%v) = %q, want %q", tt.status, got, tt.icon)
			}
		})
	}
}

func TestNewBrowserSkipsFirstHeader(t *testing.T) {
	m := NewBrowser(testReport())

	if _, ok := m.list.SelectedItem().(ruleItem); !ok {
		t.Errorf("selected item = %T, want ruleItem", m.list.SelectedItem())
	}
}

func TestModelKeyHandling(t *testing.T) {
	t.Run("quit with q", func(t *testing.T) {
		m := NewBrowser(testReport())
		newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		model := newModel.(Model)

		if model.result.Action != ActionQuit {
			t.Errorf("Action = %v, want ActionQuit", model.result.Action)
		}
		if !model.quitting {
			t.Error("Model should be quitting")
		}
		if cmd == nil {
			t.Error("Should return tea.Quit command")
		}
	})

	t.Run("quit with esc", func(t *testing.T) {
		m := NewBrowser(testReport())
		newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		model := newModel.(Model)

		if model.result.Action != ActionQuit {
			t.Errorf("Action = %v, want ActionQuit", model.result.Action)
		}
	})

	t.Run("select with enter", func(t *testing.T) {
		m := NewBrowser(testReport())
		newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		model := newModel.(Model)

		if model.result.Action != ActionSelect {
			t.Fatalf("Action = %v, want ActionSelect", model.result.Action)
		}
		if got := model.result.Entry.Forward.SourcePort; got != 8080 {
			t.Errorf("selected SourcePort = %d, want 8080", got)
		}
		if got := model.result.Entry.Container; got != "1" {
			t.Errorf("selected Container = %q, want %q", got, "1")
		}
	})

	t.Run("toggle disabled only", func(t *testing.T) {
		m := NewBrowser(testReport())
		newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
		model := newModel.(Model)

		if !model.disabledOnly {
			t.Fatal("disabledOnly should be set")
		}
		items := model.list.Items()
		if got := len(items) - headerCount(items); got != 1 {
			t.Errorf("visible forwards = %d, want 1", got)
		}
		if item, ok := model.list.SelectedItem().(ruleItem); !ok || item.entry.Forward.Status != generator.StatusConflict {
			t.Errorf("selected item = %#v, want the conflicting forward", model.list.SelectedItem())
		}
		if !strings.Contains(model.View(), "[d] Show all") {
			t.Error("View should offer to show all forwards")
		}
	})

	t.Run("window size update", func(t *testing.T) {
		m := NewBrowser(testReport())
		newModel, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
		model := newModel.(Model)

		if model.width != 100 {
			t.Errorf("Width = %d, want 100", model.width)
		}
		if model.height != 50 {
			t.Errorf("Height = %d, want 50", model.height)
		}
		if cmd != nil {
			t.Error("Window size update should not return a command")
		}
	})
}

func TestModelInit(t *testing.T) {
	m := Model{}
	if cmd := m.Init(); cmd != nil {
		t.Error("Init() should return nil")
	}
}

func TestModelView(t *testing.T) {
	t.Run("normal view contains help", func(t *testing.T) {
		view := NewBrowser(testReport()).View()

		for _, want := range []string{"3 forwards", "[enter] Print rule", "[d] Disabled only", "[q] Quit"} {
			if !strings.Contains(view, want) {
				t.Errorf("View should contain %q", want)
			}
		}
	})

	t.Run("quitting view is empty", func(t *testing.T) {
		m := NewBrowser(testReport())
		m.quitting = true

		if view := m.View(); view != "" {
			t.Errorf("Quitting view should be empty, got %q", view)
		}
	})
}

func TestRunBrowserEmptyReport(t *testing.T) {
	result, err := RunBrowser(&generator.Report{})
	if err != nil {
		t.Fatalf("RunBrowser with empty report failed: %v", err)
	}
	if result.Action != ActionNone {
		t.Errorf("Empty report should return ActionNone, got %v", result.Action)
	}
}
