package workload

import (
	"github.com/alonzeltser/fabricsim/internal/fabric"
	"github.com/alonzeltser/fabricsim/internal/packet"
)

// flowStat tracks a flow's in-flight byte accounting.
type flowStat struct {
	dstIP    packet.Addr
	expected int
	received int
}

// FlowInjector adapts a logical Flow to the originating Host's byte send
// and detects per-flow completion by observing every packet a
// destination Host receives. It implements fabric.FlowObserver so it can
// be registered on every Host at topology construction time instead of
// wrapping Host.OnMessage.
type FlowInjector struct {
	net       *fabric.Network
	callbacks map[string]func()
	stats     map[string]*flowStat
}

// NewFlowInjector constructs an injector bound to net. Call
// RegisterOnAllHosts once topology construction has added every host.
func NewFlowInjector(net *fabric.Network) *FlowInjector {
	return &FlowInjector{
		net:       net,
		callbacks: make(map[string]func()),
		stats:     make(map[string]*flowStat),
	}
}

// RegisterOnAllHosts installs this injector as the flow observer on every
// host currently in the network.
func (fi *FlowInjector) RegisterOnAllHosts() {
	for _, h := range fi.net.Hosts() {
		h.SetFlowObserver(fi)
	}
}

// Inject registers onComplete for flow.FlowID and originates the byte
// send from the flow's source host.
func (fi *FlowInjector) Inject(flow Flow, onComplete func()) {
	src, ok := fi.net.Host(flow.SrcNodeID)
	if !ok {
		return
	}
	dst, ok := fi.net.Host(flow.DstNodeID)
	if !ok {
		return
	}

	fi.callbacks[flow.FlowID] = onComplete
	fi.stats[flow.FlowID] = &flowStat{dstIP: dst.IP, expected: flow.SizeBytes}

	src.Send(flow.FlowID, dst.IP, 1000, 2000, flow.SizeBytes, packet.ProtocolTCP)
}

// OnFlowPacket implements fabric.FlowObserver. When the destination IP
// matches the registered destination for a tracked flow id and the
// received total reaches the expected size, the completion callback
// fires exactly once and the tracking entry is removed.
func (fi *FlowInjector) OnFlowPacket(flowID string, sizeBytes int, dstIP packet.Addr) {
	stat, ok := fi.stats[flowID]
	if !ok {
		return
	}
	if stat.dstIP != dstIP {
		return
	}

	stat.received += sizeBytes
	if stat.received < stat.expected {
		return
	}

	delete(fi.stats, flowID)
	cb := fi.callbacks[flowID]
	delete(fi.callbacks, flowID)
	if cb != nil {
		cb()
	}
}
