package port

import (
	"encoding/binary"
	"fmt"
	"net/netip"
)

// ParseSubnet parses an IPv4 network in CIDR notation. Host bits must be
// zero: 10.0.0.0/24 is accepted, 10.0.0.1/24 is not.
func ParseSubnet(s string) (netip.Prefix, error) {
	p, err := netip.ParsePrefix(s)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("invalid subnet %q: %w", s, err)
	}
	if !p.Addr().Is4() {
		return netip.Prefix{}, fmt.Errorf("invalid subnet %q: only IPv4 networks are supported", s)
	}
	if p.Masked() != p {
		return netip.Prefix{}, fmt.Errorf("invalid subnet %q: host bits set (network is %s)", s, p.Masked())
	}
	return p, nil
}

// HostRange returns the first and last offsets that address a host in p.
// The network and broadcast addresses are excluded, except on /31 and /32
// where every address is a host.
func HostRange(p netip.Prefix) (first, last int) {
	size := 1 << (32 - p.Bits())
	if p.Bits() >= 31 {
		return 0, size - 1
	}
	return 1, size - 2
}

// HostAddress returns the address at offset from the start of subnet p.
// Container 5 in 10.0.0.0/24 lives at 10.0.0.5.
func HostAddress(p netip.Prefix, offset int) (netip.Addr, error) {
	first, last := HostRange(p)
	if offset < first || offset > last {
		return netip.Addr{}, fmt.Errorf("address offset %d outside host range %d-%d of %s", offset, first, last, p)
	}

	b := p.Masked().Addr().As4()
	binary.BigEndian.PutUint32(b[:], binary.BigEndian.Uint32(b[:])+uint32(offset))
	return netip.AddrFrom4(b), nil
}
