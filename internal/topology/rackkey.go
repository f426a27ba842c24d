// Package topology builds the concrete fabric.Network for the supported
// topology kinds, wiring nodes, ports, links, and forwarding tables
// according to the address plan in spec §6.
package topology

import "strings"

// RackKey derives a host's rack key from its id: "su<pod>_leaf<L>_srv<S>"
// becomes "su<pod>_leaf<L>". Hosts sharing a rack key are on the same
// leaf and are excluded from each other under mice traffic's
// force-cross-rack sampling.
func RackKey(hostID string) string {
	idx := strings.LastIndex(hostID, "_srv")
	if idx < 0 {
		return hostID
	}
	return hostID[:idx]
}
