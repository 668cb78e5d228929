package portspec

import (
	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/rules"
)

// SSH forwards live in a block of SSHBlock ports per container: container
// 100 gets 10000-10099 and, by default, 10022 -> 22.
const (
	SSHPort  = 22
	SSHBlock = 100
	// MaxSSHContainerID is the largest id whose whole port block fits in 16 bits.
	MaxSSHContainerID = (rules.MaxPort - (SSHBlock - 1)) / SSHBlock
)

// SSHSourcePort returns the host port forwarded to internal port p of a container.
func SSHSourcePort(containerID, p int) int {
	return containerID*SSHBlock + p
}

// ResolveSSH resolves a container's ssh shorthand. An empty value or true
// selects the default port 22; an integer below SSHBlock overrides the
// internal port; false disables the forward.
func ResolveSSH(s config.Spec, containerID int) Result {
	var r Result

	if containerID < 0 {
		r.warnf("container id %d cannot carry an ssh forward", containerID)
		return r
	}
	if containerID > MaxSSHContainerID {
		r.warnf("container id %d is above %d, the largest id with an ssh port block; use a tcp spec instead",
			containerID, MaxSSHContainerID)
		return r
	}

	switch s.Shape {
	case config.ShapeAbsent, config.ShapeNull:
		r.Mapping.Add(SSHSourcePort(containerID, SSHPort), SSHPort)
	case config.ShapeBool:
		if s.Bool {
			r.Mapping.Add(SSHSourcePort(containerID, SSHPort), SSHPort)
		} else {
			r.debugf("ssh disabled for container %d", containerID)
		}
	case config.ShapeInt:
		if s.Int >= SSHBlock {
			r.warnf("ssh port %d does not fit the %d-port block of container %d; use a tcp spec instead",
				s.Int, SSHBlock, containerID)
			break
		}
		r.Mapping.Add(SSHSourcePort(containerID, s.Int), s.Int)
	case config.ShapeList:
		r.warnf("ssh takes a single internal port, got text %q; use a tcp spec for lists", s.Text)
	case config.ShapeMapping:
		r.warnf("ssh takes a single internal port, got mapping %s; use a tcp spec for mappings", s)
	case config.ShapeInvalid:
		r.warnf("ssh takes a single internal port, got %s", s.Text)
	default:
		r.warnf("unexpected ssh spec shape %v", s.Shape)
	}

	return r
}
