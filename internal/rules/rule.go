package rules

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	shellquote "github.com/kballard/go-shellquote"
)

// Protocol is a transport protocol iptables can match with -p.
type Protocol string

const (
	TCP Protocol = "tcp"
	UDP Protocol = "udp"
)

// Port bounds for both sides of a forward.
const (
	MinPort = 1
	MaxPort = 65535
)

// Markers written around interface and container blocks.
const (
	InterfaceMarker = "#==========================="
	ContainerEnd    = "#---"
	ErrorPrefix     = "# error: "
	DisabledPrefix  = "#"

	containerStartPrefix = "#--- Container "
	indent               = "        "
	hook                 = "post-up"
)

// ContainerStart returns the marker opening a container block.
func ContainerStart(id string) string {
	return containerStartPrefix + id
}

// Declaration returns the static interface stanza opening an interface block.
func Declaration(name string) string {
	return fmt.Sprintf("iface %s inet static", name)
}

// ErrorLine returns an inert comment carrying a failure message. Newlines in
// msg are folded so the marker stays on one line.
func ErrorLine(msg string) string {
	return ErrorPrefix + strings.Join(strings.Fields(msg), " ")
}

// ValidPort reports whether p can appear on either side of a forward.
func ValidPort(p int) bool {
	return p >= MinPort && p <= MaxPort
}

// Rule is one DNAT forward from a port on the bridge to a container address.
type Rule struct {
	Protocol   Protocol
	Bridge     string
	SourcePort int
	Address    netip.Addr
	DestPort   int

	// Disabled rules are written commented out.
	Disabled bool
}

func (r Rule) args() []string {
	return []string{
		"iptables", "-t", "nat", "-A", "PREROUTING",
		"-i", r.Bridge,
		"-p", string(r.Protocol),
		"--dport", strconv.Itoa(r.SourcePort),
		"-j", "DNAT",
		"--to", r.Address.String() + ":" + strconv.Itoa(r.DestPort),
	}
}

// Line renders the rule without a trailing newline.
func (r Rule) Line() string {
	line := indent + hook + " " + shellquote.Join(r.args()...)
	if r.Disabled {
		return DisabledPrefix + line
	}
	return line
}

// String returns a compact description used in logs and the browser.
func (r Rule) String() string {
	return fmt.Sprintf("%s %d -> %s:%d", r.Protocol, r.SourcePort, r.Address, r.DestPort)
}

// ParseLine parses a rendered rule line, active or disabled. It returns
// false for lines that are not rule lines (markers, declarations, blanks).
func ParseLine(line string) (Rule, bool, error) {
	text := strings.TrimSpace(line)
	disabled := false
	if strings.HasPrefix(text, DisabledPrefix) {
		disabled = true
		text = strings.TrimSpace(strings.TrimPrefix(text, DisabledPrefix))
	}

	rest, ok := strings.CutPrefix(text, hook+" ")
	if !ok {
		return Rule{}, false, nil
	}

	argv, err := shellquote.Split(rest)
	if err != nil {
		return Rule{}, true, fmt.Errorf("split rule: %w", err)
	}

	r, err := fromArgs(argv)
	if err != nil {
		return Rule{}, true, err
	}
	r.Disabled = disabled
	return r, true, nil
}

func fromArgs(argv []string) (Rule, error) {
	const want = 15
	if len(argv) != want || argv[0] != "iptables" {
		return Rule{}, fmt.Errorf("not a DNAT rule: %q", strings.Join(argv, " "))
	}

	fixed := map[int]string{1: "-t", 2: "nat", 3: "-A", 4: "PREROUTING", 5: "-i", 7: "-p", 9: "--dport", 11: "-j", 12: "DNAT", 13: "--to"}
	for i, tok := range fixed {
		if argv[i] != tok {
			return Rule{}, fmt.Errorf("unexpected token %q at position %d, want %q", argv[i], i, tok)
		}
	}

	var r Rule
	r.Bridge = argv[6]

	switch p := Protocol(argv[8]); p {
	case TCP, UDP:
		r.Protocol = p
	default:
		return Rule{}, fmt.Errorf("unsupported protocol %q", argv[8])
	}

	src, err := strconv.Atoi(argv[10])
	if err != nil {
		return Rule{}, fmt.Errorf("invalid source port %q: %w", argv[10], err)
	}
	r.SourcePort = src

	// Port bounds are not checked here: disabled out-of-range rules are
	// written by the compiler and must read back unchanged.
	addr, portText, ok := strings.Cut(argv[14], ":")
	if !ok {
		return Rule{}, fmt.Errorf("invalid destination %q", argv[14])
	}
	ip, err := netip.ParseAddr(addr)
	if err != nil {
		return Rule{}, fmt.Errorf("invalid destination address %q: %w", addr, err)
	}
	dst, err := strconv.Atoi(portText)
	if err != nil {
		return Rule{}, fmt.Errorf("invalid destination port %q: %w", portText, err)
	}
	r.Address = ip
	r.DestPort = dst

	return r, nil
}
