package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/generator"
	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/rules"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Padding(0, 1)
	cellStyle        = lipgloss.NewStyle().Padding(0, 1)
	failedCellStyle  = cellStyle.Foreground(lipgloss.Color("203"))
	borderStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...)
}

// Summary renders one row per interface of report followed by totals.
func Summary(report *generator.Report) string {
	failedRows := make(map[int]bool)

	t := newTable("INTERFACE", "BRIDGE", "SUBNET", "CONTAINERS", "ACTIVE", "DISABLED", "STATUS")
	for i, ir := range report.Interfaces {
		sub := generator.Report{Interfaces: []generator.InterfaceReport{ir}}
		totals := sub.Totals()

		subnet, status := "-", "ok"
		if ir.Subnet.IsValid() {
			subnet = ir.Subnet.String()
		}
		switch {
		case ir.Err != nil:
			status = ir.Err.Error()
			failedRows[i] = true
		case totals.FailedContainers > 0:
			status = fmt.Sprintf("%d container(s) failed", totals.FailedContainers)
			failedRows[i] = true
		}

		t.Row(ir.Name, ir.Bridge, subnet,
			strconv.Itoa(totals.Containers),
			strconv.Itoa(totals.Active),
			strconv.Itoa(totals.Disabled()),
			status)
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return tableHeaderStyle
		case failedRows[row]:
			return failedCellStyle
		default:
			return cellStyle
		}
	})

	totals := report.Totals()
	footer := fmt.Sprintf("%d interface(s), %d container(s): %d active, %d out of bounds, %d conflicting, %d failed block(s)",
		totals.Interfaces, totals.Containers, totals.Active, totals.OutOfBounds, totals.Conflicts,
		totals.FailedInterfaces+totals.FailedContainers)

	return t.String() + "\n" + footer + "\n"
}

// RuleTable renders rules read back from a generated file.
func RuleTable(rs []rules.Rule) string {
	t := newTable("STATE", "PROTO", "BRIDGE", "PORT", "DESTINATION")
	for _, r := range rs {
		state := "active"
		if r.Disabled {
			state = "disabled"
		}
		t.Row(state, string(r.Protocol), r.Bridge,
			strconv.Itoa(r.SourcePort),
			fmt.Sprintf("%s:%d", r.Address, r.DestPort))
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return tableHeaderStyle
		case row >= 0 && row < len(rs) && rs[row].Disabled:
			return failedCellStyle
		default:
			return cellStyle
		}
	})
	return t.String() + "\n"
}
