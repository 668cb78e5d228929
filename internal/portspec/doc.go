// Package portspec normalizes protocol specs into port mappings.
//
// A spec is whatever the port document holds under ssh, tcp, udp or tcpudp
// for one container, already classified into a config.Spec:
//
//	tcp: 80                      -> {80: 80}
//	tcp: "80, 443"               -> {80: 80, 443: 443}
//	tcp: {8080: 80, 8443: "443"} -> {8080: 80, 8443: 443}
//	tcp: {5432: ~, 6379: true}   -> {5432: 5432, 6379: 6379}
//
// Parse handles the generic protocols. ResolveSSH handles the ssh shorthand,
// which places a container's forwards in a block of 100 host ports derived
// from its id:
//
//	ssh:       (container 100) -> {10022: 22}
//	ssh: 23    (container 100) -> {10023: 23}
//	ssh: false                 -> no forward
//
// Both return a Result: the usable pairs in document order plus Issues
// describing anything dropped. They never log and never fail as a whole; a
// bad entry costs only that entry.
package portspec
