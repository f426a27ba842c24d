package topology

import (
	"github.com/alonzeltser/fabricsim/internal/config"
	"github.com/alonzeltser/fabricsim/internal/fabric"
)

// ToFabricRoutingMode maps the config-layer routing mode onto the
// forwarding plane's RoutingMode enum.
func ToFabricRoutingMode(mode config.RoutingMode) fabric.RoutingMode {
	if mode == config.RoutingModeAdaptive {
		return fabric.RoutingModeAdaptive
	}
	return fabric.RoutingModeStaticHash
}
