// Package config loads forage-portfwd's two inputs.
//
// # Port Document
//
// The port document is YAML, one block per interface:
//
//	vmbr0:
//	  bridge: vmbr0
//	  subnet: 10.0.0.0/24
//	  forwards:
//	    100:
//	      ssh:
//	      tcp: "80, 443"
//	      udp: 27015
//	      tcpudp:
//	        8053: 53
//
// ParseDocument walks the yaml.Node tree rather than decoding into maps so
// interface, container and port order survive into the generated file.
// Each protocol value is classified once into a Spec, a closed set of
// shapes (absent, null, bool, int, delimited list, mapping, invalid) that
// the port spec parsers switch over.
//
// Problems are recorded where they occur: Interface.Err for a malformed
// block, Container.Err for a bad container id or body. Only a document that
// cannot be parsed at all, or whose top level is not a mapping, fails
// ParseDocument.
//
// # Settings
//
// Tool defaults live in an optional TOML file, /etc/forage-portfwd/config.toml:
//
//	input        = "/etc/forage-portfwd/port_conf.yaml"
//	output       = "/etc/network/interfaces.d/port_forwards"
//	root         = "/"
//	metrics_file = "/var/lib/node_exporter/textfile/portfwd.prom"
//	strict       = true
//
// Unknown keys are rejected so typos do not silently fall back to defaults.
package config
