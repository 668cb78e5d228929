package port

import (
	"fmt"
	"net/netip"

	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/rules"
)

// Key identifies a reservation: a host port for one protocol.
type Key struct {
	Port     int
	Protocol rules.Protocol
}

func (k Key) String() string {
	return fmt.Sprintf("%d/%s", k.Port, k.Protocol)
}

// Ledger records which address owns each (port, protocol) pair during one
// compile. The first claim wins. A Ledger is not safe for concurrent use.
type Ledger struct {
	owners map[Key]netip.Addr
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{owners: make(map[Key]netip.Addr)}
}

// Claim reserves port/proto for owner. If the pair is already reserved it
// returns the existing owner and true, and the reservation is unchanged.
func (l *Ledger) Claim(port int, proto rules.Protocol, owner netip.Addr) (netip.Addr, bool) {
	k := Key{Port: port, Protocol: proto}
	if existing, ok := l.owners[k]; ok {
		return existing, true
	}
	l.owners[k] = owner
	return netip.Addr{}, false
}

// Len returns the number of reservations.
func (l *Ledger) Len() int {
	return len(l.owners)
}
