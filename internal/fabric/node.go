package fabric

import (
	"math/rand"
	"sort"

	"github.com/alonzeltser/fabricsim/internal/logger"
	"github.com/alonzeltser/fabricsim/internal/packet"
	"github.com/alonzeltser/fabricsim/internal/simclock"
)

// RoutingMode selects the equal-cost-path selection policy.
type RoutingMode int

const (
	RoutingModeStaticHash RoutingMode = iota
	RoutingModeAdaptive
)

// routeEntry is one compiled (network, mask, port) triple at a given
// prefix length.
type routeEntry struct {
	network   uint32
	mask      uint32
	portIndex int
}

// MessageHandler is the subclass hook a Node dispatches drained ingress
// packets to. Host and Switch each implement this.
type MessageHandler interface {
	OnMessage(pkt *packet.Packet)
}

// Node is the shared base for Host and Switch: it owns ports, a compiled
// forwarding table, and the ingress drain indirection that keeps packet
// handling from recursing through the call stack.
type Node struct {
	ID          string
	Ports       []*Port
	RoutingMode RoutingMode
	TTL         int

	humanRoutes map[string][]int
	byLength    map[int][]routeEntry
	lengths     []int

	ingress        []*packet.Packet
	ingressPending bool

	scheduler *simclock.Scheduler
	rng       *rand.Rand
	log       *logger.Logger
	verbose   bool

	handler MessageHandler

	dropCounts map[DropReason]int
}

// NewNode constructs a Node with empty routing state. Call SetHandler
// before the node can receive traffic.
func NewNode(id string, ttl int, mode RoutingMode, scheduler *simclock.Scheduler, seed int64, log *logger.Logger, verbose bool) *Node {
	return &Node{
		ID:          id,
		TTL:         ttl,
		RoutingMode: mode,
		humanRoutes: make(map[string][]int),
		byLength:    make(map[int][]routeEntry),
		scheduler:   scheduler,
		rng:         rand.New(rand.NewSource(seed)),
		log:         log,
		verbose:     verbose,
		dropCounts:  make(map[DropReason]int),
	}
}

// SetHandler installs the subclass's OnMessage hook. Host and Switch call
// this with themselves immediately after construction.
func (n *Node) SetHandler(h MessageHandler) {
	n.handler = h
}

// AddPort appends and returns a new Port on this node.
func (n *Node) AddPort() *Port {
	p := NewPort(len(n.Ports), n, n.scheduler)
	n.Ports = append(n.Ports, p)
	return p
}

// DropCount returns the count of packets dropped for the given reason.
func (n *Node) DropCount(reason DropReason) int {
	return n.dropCounts[reason]
}

// InstallRoute records prefix -> port in both the human-readable map and
// the compiled lookup structure. A route whose port's link is failed is
// silently dropped, not learned.
func (n *Node) InstallRoute(prefix packet.Prefix, portIndex int) {
	port := n.Ports[portIndex]
	if port.Link() != nil && port.Link().Failed() {
		return
	}

	key := prefix.String()
	n.humanRoutes[key] = append(n.humanRoutes[key], portIndex)

	length := prefix.Length
	_, seenLength := n.byLength[length]
	n.byLength[length] = append(n.byLength[length], routeEntry{network: prefix.Network, mask: prefix.Mask(), portIndex: portIndex})

	if !seenLength {
		n.lengths = append(n.lengths, length)
		sort.Sort(sort.Reverse(sort.IntSlice(n.lengths)))
	}
}

// Routes returns the human-readable prefix->ports map, for introspection.
func (n *Node) Routes() map[string][]int {
	return n.humanRoutes
}

// post is called by a Link on packet arrival: it decrements TTL,
// increments hops, and appends to the ingress deque, scheduling a drain
// if none is pending. This indirection avoids deep recursion when many
// packets arrive at the same instant.
func (n *Node) post(pkt *packet.Packet) {
	pkt.L3.TTL--
	pkt.RecordHop(n.ID, n.scheduler.CurrentTime(), n.verbose)

	n.ingress = append(n.ingress, pkt)
	if !n.ingressPending {
		n.ingressPending = true
		n.scheduler.Schedule(0, n.handleIngress)
	}
}

// handleIngress drains the ingress deque, dispatching each packet to the
// subclass hook. All packets that arrived at the same instant are
// handled in one drain.
func (n *Node) handleIngress() {
	n.ingressPending = false

	batch := n.ingress
	n.ingress = nil

	for _, pkt := range batch {
		n.handler.OnMessage(pkt)
	}
}

// dropPacket marks pkt dropped, increments the counter, and logs a
// warning when the node's verbose flag is set.
func (n *Node) dropPacket(pkt *packet.Packet, reason DropReason) {
	pkt.L3.Dropped = true
	n.dropCounts[reason]++

	if n.verbose && n.log != nil {
		n.log.Warn("packet dropped",
			"node_id", n.ID,
			"reason", string(reason),
			"src_ip", pkt.L3.Tuple.SrcIP.String(),
			"dst_ip", pkt.L3.Tuple.DstIP.String(),
			"flow_id", pkt.Transport.FlowID,
		)
	}
}

// SelectEgressPort runs longest-prefix match followed by equal-cost
// selection, returning nil when no route matches.
func (n *Node) SelectEgressPort(pkt *packet.Packet) *Port {
	dst := pkt.L3.Tuple.DstIP.Uint32()

	for _, length := range n.lengths {
		mask := prefixMaskFor(length)
		var candidates []int
		for _, e := range n.byLength[length] {
			if (dst & mask) == e.network {
				candidates = append(candidates, e.portIndex)
			}
		}
		if len(candidates) == 0 {
			continue
		}
		return n.Ports[n.selectAmong(candidates, pkt)]
	}

	n.dropPacket(pkt, DropReasonNoRoute)
	return nil
}

func prefixMaskFor(length int) uint32 {
	if length <= 0 {
		return 0
	}
	if length >= 32 {
		return 0xFFFFFFFF
	}
	return ^uint32(0) << (32 - length)
}

func (n *Node) selectAmong(candidates []int, pkt *packet.Packet) int {
	if len(candidates) == 1 {
		return candidates[0]
	}

	switch n.RoutingMode {
	case RoutingModeAdaptive:
		return n.selectMinQueue(candidates)
	default:
		idx := pkt.L3.Tuple.Hash() % uint64(len(candidates))
		return candidates[idx]
	}
}

func (n *Node) selectMinQueue(candidates []int) int {
	minLen := -1
	var tied []int
	for _, c := range candidates {
		qlen := n.Ports[c].QueueSize()
		switch {
		case minLen == -1 || qlen < minLen:
			minLen = qlen
			tied = []int{c}
		case qlen == minLen:
			tied = append(tied, c)
		}
	}
	if len(tied) == 1 {
		return tied[0]
	}
	return tied[n.rng.Intn(len(tied))]
}
