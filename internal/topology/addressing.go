package topology

import (
	"fmt"

	"github.com/alonzeltser/fabricsim/internal/packet"
)

// HostID names a server per the address plan: su<pod>_leaf<L>_srv<S>.
func HostID(pod, leaf, server int) string {
	return fmt.Sprintf("su%d_leaf%d_srv%d", pod, leaf, server)
}

// LeafID names a leaf switch.
func LeafID(pod, leaf int) string {
	return fmt.Sprintf("su%d_leaf%d", pod, leaf)
}

// SpineID names a spine switch.
func SpineID(pod, spine int) string {
	return fmt.Sprintf("su%d_spine%d", pod, spine)
}

// HostAddr computes a host's IPv4 address: 10.<pod>.<leaf+1>.<server+1>.
func HostAddr(pod, leaf, server int) packet.Addr {
	return packet.NewAddr(10, uint8(pod), uint8(leaf+1), uint8(server+1))
}

// LeafHostPrefix is the per-leaf /24 a spine advertises toward that leaf's
// downlink: 10.<pod>.<leaf+1>.0/24.
func LeafHostPrefix(pod, leaf int) packet.Prefix {
	return packet.NewPrefix(packet.NewAddr(10, uint8(pod), uint8(leaf+1), 0), 24)
}

// PodPrefix is the /16 a leaf advertises to all its spine uplinks:
// 10.<pod>.0.0/16.
func PodPrefix(pod int) packet.Prefix {
	return packet.NewPrefix(packet.NewAddr(10, uint8(pod), 0, 0), 16)
}

// HostPrefix is the per-host /32 a leaf advertises to its local host port.
func HostPrefix(addr packet.Addr) packet.Prefix {
	return packet.NewPrefix(addr, 32)
}
