// Package output publishes generated rules.
//
// Rules are written with an atomic rename so ifupdown never reads a
// half-written interfaces.d snippet. When the tool runs against an image
// or chroot, Resolve keeps the output path inside the given root.
//
//	path, err := output.Resolve("/mnt/image", "/etc/network/interfaces.d/port_forwards")
//	if err != nil {
//	    return err
//	}
//	err = output.Write(path, rendered)
//
// The path "-" writes to standard output instead.
//
// File access goes through a FileSystem; tests swap in MockFS with
// SetDefaultFS.
package output
