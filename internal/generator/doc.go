// Package generator compiles a port document into DNAT forward rules.
//
// The output is meant for an ifupdown interfaces.d snippet: one block per
// interface, one sub-block per container, one post-up iptables line per
// forwarded port and protocol.
//
//	doc, err := config.LoadDocument("port_conf.yaml")
//	if err != nil {
//	    return err
//	}
//	report, err := generator.NewCompiler().Compile(doc, w)
//
// # Output
//
// A compiled interface looks like:
//
//	#===========================
//	iface eno1 inet static
//	#--- Container 1
//	        post-up iptables -t nat -A PREROUTING -i eno1 -p tcp --dport 80 -j DNAT --to 10.0.0.1:80
//	#---
//	#===========================
//
// Rules whose ports fall outside 1-65535, or whose host port and protocol
// were already claimed earlier in the same run, are written commented out.
// The first claim of a port wins across all interfaces.
//
// # Failures
//
// A broken interface (missing bridge, bad subnet) or container (bad id,
// address outside the subnet) gets a "# error:" marker inside its block and
// is logged; the rest of the document is still compiled. Compile only
// returns an error when the output sink fails.
package generator
