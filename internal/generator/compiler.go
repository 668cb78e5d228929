package generator

import (
	"fmt"
	"io"
	"log/slog"
	"net/netip"
	"strings"

	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/port"
	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/portspec"
	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/rules"
)

// maxBridgeName is IFNAMSIZ minus the terminating NUL.
const maxBridgeName = 15

// Compiler turns a port document into forward rules. Each call to Compile
// starts with an empty port ledger.
type Compiler struct {
	ledger *port.Ledger
}

// NewCompiler returns a Compiler.
func NewCompiler() *Compiler {
	return &Compiler{}
}

// Ledger returns the reservations made by the most recent Compile call,
// or nil if Compile has not run.
func (c *Compiler) Ledger() *port.Ledger {
	return c.ledger
}

// Compile writes the rule text for doc to w and reports what was produced.
// Problems inside an interface or container are written as error markers
// and logged; compilation carries on with the next block. The only error
// returned is a failure to write to w.
func (c *Compiler) Compile(doc *config.Document, w io.Writer) (*Report, error) {
	c.ledger = port.NewLedger()

	r := &run{
		ledger: c.ledger,
		out:    &emitter{w: w},
		report: &Report{},
	}

	if len(doc.Interfaces) == 0 {
		logging.Warn("port document defines no interfaces")
	}
	for _, iface := range doc.Interfaces {
		r.compileInterface(iface)
		if r.out.err != nil {
			break
		}
	}

	if r.out.err != nil {
		return r.report, fmt.Errorf("failed to write rules: %w", r.out.err)
	}
	return r.report, nil
}

// run holds the state of one Compile call.
type run struct {
	ledger *port.Ledger
	out    *emitter
	report *Report
}

func (r *run) compileInterface(iface config.Interface) {
	log := logging.With("interface", iface.Name)
	ir := InterfaceReport{Name: iface.Name, Bridge: iface.Bridge}

	r.out.line(rules.InterfaceMarker)
	r.out.line(rules.Declaration(iface.Name))
	defer func() {
		r.out.line(rules.InterfaceMarker)
		r.report.Interfaces = append(r.report.Interfaces, ir)
	}()

	subnet, err := interfaceSubnet(iface)
	if err != nil {
		ir.Err = err
		log.Error("interface skipped", "line", iface.Line, "error", err)
		r.out.line(rules.ErrorLine(fmt.Sprintf("interface %s: %v", iface.Name, err)))
		return
	}
	ir.Subnet = subnet

	for _, key := range iface.Unknown {
		log.Warn("ignoring unknown interface key", "key", key)
	}
	if len(iface.Containers) == 0 {
		log.Warn("interface has no forwards")
	}

	for _, ctr := range iface.Containers {
		ir.Containers = append(ir.Containers, r.compileContainer(log, iface.Bridge, subnet, ctr))
		if r.out.err != nil {
			return
		}
	}
}

// interfaceSubnet checks the interface-level settings and returns the
// parsed subnet.
func interfaceSubnet(iface config.Interface) (netip.Prefix, error) {
	if iface.Err != nil {
		return netip.Prefix{}, iface.Err
	}
	if err := validateBridge(iface.Bridge); err != nil {
		return netip.Prefix{}, err
	}
	if iface.Subnet == "" {
		return netip.Prefix{}, fmt.Errorf("subnet is required")
	}
	return port.ParseSubnet(iface.Subnet)
}

func validateBridge(name string) error {
	if name == "" {
		return fmt.Errorf("bridge is required")
	}
	if len(name) > maxBridgeName {
		return fmt.Errorf("bridge name %q is longer than %d characters", name, maxBridgeName)
	}
	if strings.ContainsAny(name, "/ \t\r\n") {
		return fmt.Errorf("bridge name %q contains '/' or whitespace", name)
	}
	return nil
}

func (r *run) compileContainer(log *slog.Logger, bridge string, subnet netip.Prefix, ctr config.Container) ContainerReport {
	log = log.With("container", ctr.Key)
	cr := ContainerReport{Key: ctr.Key, ID: ctr.ID, State: StatePending}

	r.out.line(rules.ContainerStart(ctr.Key))
	defer r.out.line(rules.ContainerEnd)

	fail := func(err error) ContainerReport {
		cr.State = StateFailed
		cr.Err = err
		log.Error("container skipped", "line", ctr.Line, "error", err)
		r.out.line(rules.ErrorLine(err.Error()))
		return cr
	}

	if ctr.Err != nil {
		return fail(ctr.Err)
	}

	addr, err := port.HostAddress(subnet, ctr.ID)
	if err != nil {
		return fail(fmt.Errorf("container %d: %w", ctr.ID, err))
	}
	cr.Address = addr
	cr.State = StateAddressResolved
	log = log.With("address", addr)

	for _, key := range ctr.Unknown {
		log.Warn("ignoring unknown protocol", "key", key)
	}

	fw := forwarder{run: r, log: log, bridge: bridge, addr: addr, report: &cr}

	if ctr.SSH.Present() {
		res := portspec.ResolveSSH(ctr.SSH, ctr.ID)
		logIssues(log, config.KeySSH, res)
		fw.emit(res.Mapping, rules.TCP)
	}
	for _, p := range []struct {
		key    string
		spec   config.Spec
		protos []rules.Protocol
	}{
		{config.KeyTCP, ctr.TCP, []rules.Protocol{rules.TCP}},
		{config.KeyUDP, ctr.UDP, []rules.Protocol{rules.UDP}},
		{config.KeyTCPUDP, ctr.TCPUDP, []rules.Protocol{rules.TCP, rules.UDP}},
	} {
		res := portspec.Parse(p.spec)
		logIssues(log, p.key, res)
		fw.emit(res.Mapping, p.protos...)
	}

	if len(cr.Forwards) == 0 {
		log.Debug("container has no forwards")
	}
	cr.State = StateRulesEmitted
	return cr
}

// forwarder emits the rules of one container.
type forwarder struct {
	*run
	log    *slog.Logger
	bridge string
	addr   netip.Addr
	report *ContainerReport
}

// emit writes one rule per pair and protocol. For several protocols the
// rules of a pair are written together, in protocol order.
func (f *forwarder) emit(m portspec.Mapping, protos ...rules.Protocol) {
	for _, pair := range m.Pairs() {
		for _, proto := range protos {
			f.forward(pair, proto)
		}
	}
}

func (f *forwarder) forward(pair portspec.Pair, proto rules.Protocol) {
	fwd := Forward{Rule: rules.Rule{
		Protocol:   proto,
		Bridge:     f.bridge,
		SourcePort: pair.Source,
		Address:    f.addr,
		DestPort:   pair.Dest,
	}}

	switch {
	case !rules.ValidPort(pair.Source) || !rules.ValidPort(pair.Dest):
		fwd.Status = StatusOutOfBounds
		fwd.Disabled = true
		f.log.Warn("port out of range, rule disabled",
			"protocol", proto, "source", pair.Source, "dest", pair.Dest,
			"range", fmt.Sprintf("%d-%d", rules.MinPort, rules.MaxPort))
	default:
		if owner, taken := f.ledger.Claim(pair.Source, proto, f.addr); taken {
			fwd.Status = StatusConflict
			fwd.Owner = owner
			fwd.Disabled = true
			f.log.Warn("port already forwarded, rule disabled",
				"port", port.Key{Port: pair.Source, Protocol: proto}, "owner", owner)
		}
	}

	f.out.line(fwd.Line())
	f.report.Forwards = append(f.report.Forwards, fwd)
}

func logIssues(log *slog.Logger, key string, res portspec.Result) {
	for _, issue := range res.Issues {
		switch issue.Severity {
		case portspec.SeverityWarn:
			log.Warn("port spec entry skipped", "spec", key, "reason", issue.Message)
		default:
			log.Debug("port spec entry skipped", "spec", key, "reason", issue.Message)
		}
	}
}

// emitter writes lines to a sink and keeps the first write error.
type emitter struct {
	w   io.Writer
	err error
}

func (e *emitter) line(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s+"\n")
}
