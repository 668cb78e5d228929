package generator

import (
	"net/netip"

	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/rules"
)

// State tracks a container through compilation.
type State int

const (
	StatePending State = iota
	StateAddressResolved
	StateRulesEmitted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateAddressResolved:
		return "address-resolved"
	case StateRulesEmitted:
		return "rules-emitted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Status says whether a forward was written active, and if not, why.
type Status int

const (
	StatusActive Status = iota
	StatusOutOfBounds
	StatusConflict
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusOutOfBounds:
		return "out-of-bounds"
	case StatusConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Forward is a rule as written, with the reason it was disabled.
type Forward struct {
	rules.Rule
	Status Status
	// Owner is the address already holding the port when Status is StatusConflict.
	Owner netip.Addr
}

// ContainerReport describes one container block.
type ContainerReport struct {
	Key      string
	ID       int
	Address  netip.Addr
	State    State
	Err      error
	Forwards []Forward
}

// InterfaceReport describes one interface block.
type InterfaceReport struct {
	Name       string
	Bridge     string
	Subnet     netip.Prefix
	Err        error
	Containers []ContainerReport
}

// Report describes a whole compile in document order.
type Report struct {
	Interfaces []InterfaceReport
}

// Totals summarises a Report.
type Totals struct {
	Interfaces       int
	FailedInterfaces int
	Containers       int
	FailedContainers int
	Active           int
	OutOfBounds      int
	Conflicts        int
}

// Disabled returns the number of forwards written commented out.
func (t Totals) Disabled() int {
	return t.OutOfBounds + t.Conflicts
}

// Findings reports whether anything was skipped or disabled.
func (t Totals) Findings() bool {
	return t.FailedInterfaces > 0 || t.FailedContainers > 0 || t.Disabled() > 0
}

// Totals counts interfaces, containers and forwards by outcome.
func (r *Report) Totals() Totals {
	var t Totals
	for _, ir := range r.Interfaces {
		t.Interfaces++
		if ir.Err != nil {
			t.FailedInterfaces++
		}
		for _, cr := range ir.Containers {
			t.Containers++
			if cr.State == StateFailed {
				t.FailedContainers++
			}
			for _, f := range cr.Forwards {
				switch f.Status {
				case StatusActive:
					t.Active++
				case StatusOutOfBounds:
					t.OutOfBounds++
				case StatusConflict:
					t.Conflicts++
				}
			}
		}
	}
	return t
}

// Entry is a forward together with the blocks it was written in.
type Entry struct {
	Interface string
	Container string
	Forward   Forward
}

// Entries flattens the report into output order.
func (r *Report) Entries() []Entry {
	var out []Entry
	for _, ir := range r.Interfaces {
		for _, cr := range ir.Containers {
			for _, f := range cr.Forwards {
				out = append(out, Entry{Interface: ir.Name, Container: cr.Key, Forward: f})
			}
		}
	}
	return out
}
