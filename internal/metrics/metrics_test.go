package metrics

import (
	"errors"
	"net/netip"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/generator"
	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/rules"
)

func testReport() *generator.Report {
	addr := netip.MustParseAddr("10.0.0.1")
	fwd := func(proto rules.Protocol, port int, status generator.Status) generator.Forward {
		return generator.Forward{
			Rule: rules.Rule{
				Protocol:   proto,
				Bridge:     "eno1",
				SourcePort: port,
				Address:    addr,
				DestPort:   port,
				Disabled:   status != generator.StatusActive,
			},
			Status: status,
		}
	}

	return &generator.Report{Interfaces: []generator.InterfaceReport{
		{
			Name: "eno1",
			Containers: []generator.ContainerReport{
				{
					Key:   "1",
					ID:    1,
					State: generator.StateRulesEmitted,
					Forwards: []generator.Forward{
						fwd(rules.TCP, 80, generator.StatusActive),
						fwd(rules.TCP, 443, generator.StatusActive),
						fwd(rules.UDP, 53, generator.StatusActive),
						fwd(rules.TCP, 70000, generator.StatusOutOfBounds),
					},
				},
				{Key: "web", State: generator.StateFailed, Err: errors.New("container id \"web\" is not an integer")},
			},
		},
		{Name: "eno2", Err: errors.New("subnet is required")},
	}}
}

func TestWriteTextfile(t *testing.T) {
	reg := FromReport(testReport(), 3, time.Unix(1234, 0))

	path := filepath.Join(t.TempDir(), "forage_portfwd.prom")
	if err := reg.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	text := string(data)

	for _, want := range []string{
		`forage_portfwd_rules{interface="eno1",protocol="tcp",status="active"} 2`,
		`forage_portfwd_rules{interface="eno1",protocol="udp",status="active"} 1`,
		`forage_portfwd_rules{interface="eno1",protocol="tcp",status="out-of-bounds"} 1`,
		`forage_portfwd_containers{interface="eno1",state="rules-emitted"} 1`,
		`forage_portfwd_containers{interface="eno1",state="failed"} 1`,
		`forage_portfwd_interfaces{status="ok"} 1`,
		`forage_portfwd_interfaces{status="failed"} 1`,
		`forage_portfwd_port_reservations 3`,
		`forage_portfwd_last_run_timestamp_seconds 1234`,
		`# HELP forage_portfwd_rules Forward rules written, by interface, protocol and status`,
	} {
		if !strings.Contains(text, want+"\n") {
			t.Errorf("textfile missing %q:\n%s", want, text)
		}
	}
}

func TestObserveReplacesValues(t *testing.T) {
	reg := FromReport(testReport(), 3, time.Unix(1234, 0))
	reg.Observe(&generator.Report{}, 0, time.Unix(5678, 0))

	families, err := reg.Gatherer().Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}

	for _, mf := range families {
		switch mf.GetName() {
		case "forage_portfwd_rules", "forage_portfwd_containers", "forage_portfwd_interfaces":
			if n := len(mf.GetMetric()); n != 0 {
				t.Errorf("%s still has %d series after Observe", mf.GetName(), n)
			}
		case "forage_portfwd_last_run_timestamp_seconds":
			if got := mf.GetMetric()[0].GetGauge().GetValue(); got != 5678 {
				t.Errorf("last run = %v, want 5678", got)
			}
		}
	}
}

func TestWriteTextfileBadPath(t *testing.T) {
	reg := New()
	path := filepath.Join(t.TempDir(), "missing", "dir", "x.prom")
	if err := reg.WriteTextfile(path); err == nil {
		t.Error("expected error for missing directory")
	}
}
