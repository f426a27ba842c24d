package topology

import (
	"math/rand"

	"github.com/alonzeltser/fabricsim/internal/config"
	"github.com/alonzeltser/fabricsim/internal/fabric"
	"github.com/alonzeltser/fabricsim/internal/logger"
	simerrors "github.com/alonzeltser/fabricsim/pkg/errors"
)

// Plan summarizes the constructed topology for the result-summary
// reporting layer (spec §6 topology summary).
type Plan struct {
	HostIDs          []string
	LeafIDs          []string
	SpineIDs         []string
	FailedLinkCount  int
	AffectedSwitches int
}

// Options carries the non-config inputs a topology build needs: which
// scalable-unit pod this is (multi-pod routing is out of scope, so this
// is normally 0), the routing mode already normalized, and a seed for
// the deterministic link-failure draw. The returned Network owns its own
// Scheduler; every Node and Link built here is wired to it.
type Options struct {
	Pod          int
	RoutingMode  fabric.RoutingMode
	FailureSeed  int64
	Log          *logger.Logger
	VerboseRoute bool
}

// BuildAIFactorySU constructs the leaf/spine scalable-unit fabric
// described by cfg: Leaves leaf switches each with ServersPerLeaf hosts
// (joined by ServerParallelLinks parallel links) and LeafToSpineParallelLinks
// parallel links to every one of Spines spine switches.
func BuildAIFactorySU(cfg config.TopologyConfig, opts Options) (*fabric.Network, *Plan, error) {
	su := cfg.AIFactorySU
	if su.Leaves <= 0 || su.ServersPerLeaf <= 0 || su.Spines <= 0 {
		return nil, nil, simerrors.NewTopologyError("ai-factory-su", "leaves, spines, and servers_per_leaf must all be positive", nil)
	}

	net := fabric.NewNetwork()
	rng := rand.New(rand.NewSource(opts.FailureSeed))

	plan := &Plan{}

	leafNodes := make([]*fabric.Switch, su.Leaves)
	spineNodes := make([]*fabric.Switch, su.Spines)

	for l := 0; l < su.Leaves; l++ {
		id := LeafID(opts.Pod, l)
		base := fabric.NewNode(id, cfg.TTL, opts.RoutingMode, net.Scheduler, int64(1000+l), opts.Log, opts.VerboseRoute)
		sw := fabric.NewSwitch(base)
		net.AddSwitch(sw)
		leafNodes[l] = sw
		plan.LeafIDs = append(plan.LeafIDs, id)
	}

	for s := 0; s < su.Spines; s++ {
		id := SpineID(opts.Pod, s)
		base := fabric.NewNode(id, cfg.TTL, opts.RoutingMode, net.Scheduler, int64(2000+s), opts.Log, opts.VerboseRoute)
		sw := fabric.NewSwitch(base)
		net.AddSwitch(sw)
		spineNodes[s] = sw
		plan.SpineIDs = append(plan.SpineIDs, id)
	}

	affectedSwitches := make(map[string]struct{})

	// Propagation delay is not an exposed configuration knob (spec §6 lists
	// only failure_percent and per-tier bandwidth); every link carries zero
	// propagation delay, matching the spec's own end-to-end scenarios.
	makeLink := func(name string, bandwidthBps float64) *fabric.Link {
		link := fabric.NewLink(name, bandwidthBps, 0, net.Scheduler)
		if rng.Float64()*100 < cfg.Links.FailurePercent {
			link.MarkFailed()
			plan.FailedLinkCount++
		}
		net.AddLink(link)
		return link
	}

	// Server <-> leaf tier.
	for l := 0; l < su.Leaves; l++ {
		leaf := leafNodes[l]
		for srv := 0; srv < su.ServersPerLeaf; srv++ {
			hostID := HostID(opts.Pod, l, srv)
			addr := HostAddr(opts.Pod, l, srv)

			hostBase := fabric.NewNode(hostID, cfg.TTL, opts.RoutingMode, net.Scheduler, int64(3000+l*1000+srv), opts.Log, opts.VerboseRoute)
			host := fabric.NewHost(hostBase, addr, cfg.MTU, cfg.Routing.ECMPFlowletNPackets)
			net.AddHost(host)
			plan.HostIDs = append(plan.HostIDs, hostID)

			for rep := 0; rep < su.ServerParallelLinks; rep++ {
				leafPort := leaf.AddPort()
				hostPort := host.AddPort()

				link := makeLink(hostID+"<->"+leaf.ID, cfg.Links.BandwidthBps.ServerToLeaf)
				link.Connect(leafPort)
				link.Connect(hostPort)
				if link.Failed() {
					affectedSwitches[leaf.ID] = struct{}{}
				}

				leaf.InstallRoute(HostPrefix(addr), leafPort.ID)
				host.InstallRoute(PodPrefix(opts.Pod), hostPort.ID)
			}
		}
	}

	// Leaf <-> spine tier.
	for l := 0; l < su.Leaves; l++ {
		leaf := leafNodes[l]
		for s := 0; s < su.Spines; s++ {
			spine := spineNodes[s]
			for rep := 0; rep < su.LeafToSpineParallelLinks; rep++ {
				leafPort := leaf.AddPort()
				spinePort := spine.AddPort()

				link := makeLink(leaf.ID+"<->"+spine.ID, cfg.Links.BandwidthBps.LeafToSpine)
				link.Connect(leafPort)
				link.Connect(spinePort)
				if link.Failed() {
					affectedSwitches[leaf.ID] = struct{}{}
					affectedSwitches[spine.ID] = struct{}{}
				}

				leaf.InstallRoute(PodPrefix(opts.Pod), leafPort.ID)
				spine.InstallRoute(LeafHostPrefix(opts.Pod, l), spinePort.ID)
			}
		}
	}

	plan.AffectedSwitches = len(affectedSwitches)
	return net, plan, nil
}
