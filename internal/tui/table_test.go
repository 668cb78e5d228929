package tui

import (
	"errors"
	"net/netip"
	"strings"
	"testing"

	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/generator"
	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/rules"
)

func TestSummary(t *testing.T) {
	report := testReport()
	report.Interfaces = append(report.Interfaces, generator.InterfaceReport{
		Name: "eno2",
		Err:  errors.New("subnet is required"),
	})

	out := Summary(report)

	for _, want := range []string{
		"INTERFACE", "eno1", "10.0.0.0/24", "eno2", "subnet is required",
		"2 interface(s), 2 container(s): 2 active, 0 out of bounds, 1 conflicting, 1 failed block(s)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Summary() missing %q:\n%s", want, out)
		}
	}
}

func TestRuleTable(t *testing.T) {
	rs := []rules.Rule{
		{Protocol: rules.TCP, Bridge: "eno1", SourcePort: 80, Address: netip.MustParseAddr("10.0.0.1"), DestPort: 8080},
		{Protocol: rules.UDP, Bridge: "eno1", SourcePort: 53, Address: netip.MustParseAddr("10.0.0.2"), DestPort: 53, Disabled: true},
	}

	out := RuleTable(rs)

	for _, want := range []string{"STATE", "active", "disabled", "10.0.0.1:8080", "10.0.0.2:53", "udp"} {
		if !strings.Contains(out, want) {
			t.Errorf("RuleTable() missing %q:\n%s", want, out)
		}
	}
}
