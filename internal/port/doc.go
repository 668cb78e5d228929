// Package port arbitrates host ports and container addresses for one run.
//
// # Reservations
//
// A Ledger records which container address owns each (port, protocol) pair.
// The compiler creates one per run and shares it across every interface,
// so the first container in document order to claim a pair keeps it:
//
//	ledger := port.NewLedger()
//	if owner, taken := ledger.Claim(8080, rules.TCP, addr); taken {
//	    // disable the rule; owner already forwards 8080/tcp
//	}
//
// # Addresses
//
// Containers are addressed by offset into their interface's subnet. The
// container id is the offset, so container 5 in 10.0.0.0/24 is 10.0.0.5:
//
//	subnet, err := port.ParseSubnet("10.0.0.0/24")
//	addr, err := port.HostAddress(subnet, 5)
//
// Offsets must address a host: 1-254 in a /24. On /31 and /32 networks
// every address is usable.
package port
