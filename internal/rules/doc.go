// Package rules defines the text shape of generated port forwards.
//
// A Rule renders to one interfaces(5) post-up hook:
//
//	post-up iptables -t nat -A PREROUTING -i vmbr0 -p tcp --dport 10022 -j DNAT --to 10.0.0.100:22
//
// A disabled rule is the same text prefixed with "#", so it stays visible to
// whoever reads the file but is inert to ifupdown.
//
// Blocks are delimited by marker comments:
//
//	#===========================   interface start / end
//	iface vmbr0 inet static
//	#--- Container 100              container start
//	#---                            container end
//	# error: ...                    failed container or interface
//
// ParseLine reads a rendered line back into a Rule. The inspect and diff
// commands use it to summarize files produced by earlier runs.
package rules
