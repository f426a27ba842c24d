package fabric

import (
	"github.com/alonzeltser/fabricsim/internal/packet"
)

// FlowObserver is notified of every byte a Host receives belonging to a
// tracked flow. The Flow Injector registers itself here rather than
// wrapping Host.OnMessage, keeping packet handling and flow accounting
// as separate concerns.
type FlowObserver interface {
	OnFlowPacket(flowID string, sizeBytes int, dstIP packet.Addr)
}

// PacketObserver is notified of every packet a Host originates, before it
// enters the forwarding plane. The packet-timeline sampler registers here.
type PacketObserver interface {
	OnPacketCreated(birthTime float64, sizeBytes int)
}

// Host originates and terminates packets. Origination splits a byte-size
// send into MTU-sized packets; termination records delivery totals and
// hop extrema and forwards each arrival to the registered FlowObserver,
// which does the per-flow byte accounting.
type Host struct {
	*Node

	IP       packet.Addr
	MTU      int
	FlowletN int

	observer       FlowObserver
	packetObserver PacketObserver

	receivedCount int
	deliveredSize int64

	hopsMin, hopsMax int
	hopsSum          int64

	seq uint64
}

// NewHost constructs a Host and wires it as its own message handler.
func NewHost(base *Node, ip packet.Addr, mtu, flowletN int) *Host {
	h := &Host{Node: base, IP: ip, MTU: mtu, FlowletN: flowletN}
	h.SetHandler(h)
	return h
}

// SetFlowObserver installs the Flow Injector's per-flow-byte hook.
func (h *Host) SetFlowObserver(obs FlowObserver) {
	h.observer = obs
}

// SetPacketObserver installs the packet-timeline sampler's creation hook.
func (h *Host) SetPacketObserver(obs PacketObserver) {
	h.packetObserver = obs
}

// Send splits size bytes into MTU-sized packets and enqueues each on the
// port selected by the node's forwarding logic.
func (h *Host) Send(flowID string, dstIP packet.Addr, srcPort, dstPort uint16, sizeBytes int, proto packet.Protocol) {
	if sizeBytes <= 0 {
		return
	}

	packetCount := (sizeBytes + h.MTU - 1) / h.MTU
	now := h.scheduler.CurrentTime()

	for i := 0; i < packetCount; i++ {
		size := h.MTU
		if i == packetCount-1 {
			remainder := sizeBytes - h.MTU*(packetCount-1)
			size = remainder
		}

		flowlet := uint32(0)
		if h.FlowletN > 0 {
			flowlet = uint32(now) + uint32(i/h.FlowletN)
		}

		tuple := packet.FiveTuple{
			SrcIP: h.IP, DstIP: dstIP,
			SrcPort: srcPort, DstPort: dstPort,
			Protocol: proto, Flowlet: flowlet,
		}

		h.seq++
		l3 := packet.L3Header{Tuple: tuple, Seq: h.seq, Size: size, TTL: h.TTL}
		transport := packet.TransportHeader{FlowID: flowID, FlowPackets: packetCount, FlowSequence: i}

		pkt := packet.NewPacket(l3, transport, now)
		if h.packetObserver != nil {
			h.packetObserver.OnPacketCreated(now, size)
		}

		port := h.SelectEgressPort(pkt)
		if port == nil {
			continue
		}
		port.Enqueue(pkt)
	}
}

// OnMessage implements MessageHandler: marks delivery state and notifies
// the flow observer.
func (h *Host) OnMessage(pkt *packet.Packet) {
	now := h.scheduler.CurrentTime()
	pkt.MarkDelivered(now)
	h.receivedCount++
	h.deliveredSize += int64(pkt.L3.Size)

	hops := pkt.Tracking.Hops
	if h.receivedCount == 1 || hops < h.hopsMin {
		h.hopsMin = hops
	}
	if hops > h.hopsMax {
		h.hopsMax = hops
	}
	h.hopsSum += int64(hops)

	if h.observer != nil {
		h.observer.OnFlowPacket(pkt.Transport.FlowID, pkt.L3.Size, h.IP)
	}
}

// ReceivedCount returns the number of packets delivered to this host.
func (h *Host) ReceivedCount() int {
	return h.receivedCount
}

// DeliveredBytes returns the cumulative bytes delivered to this host.
func (h *Host) DeliveredBytes() int64 {
	return h.deliveredSize
}

// CreatedCount returns the number of packets this host has originated.
func (h *Host) CreatedCount() int {
	return int(h.seq)
}

// HopStats returns the min/max/sum hop counts observed across every packet
// delivered to this host, for the result summary's bounded-hops reporting.
func (h *Host) HopStats() (min, max int, sum int64, count int) {
	return h.hopsMin, h.hopsMax, h.hopsSum, h.receivedCount
}
