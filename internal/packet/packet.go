package packet

import "github.com/google/uuid"

// L3Header carries routing-plane state. TTL decrements on every node
// entry; at zero the packet is dropped by the next switch.
type L3Header struct {
	Tuple   FiveTuple
	Seq     uint64
	Size    int
	TTL     int
	Dropped bool
}

// TransportHeader identifies which logical flow a packet belongs to and
// its position within it.
type TransportHeader struct {
	FlowID       string
	FlowPackets  int
	FlowSequence int
}

// Hop records one node visited by a packet, kept only when verbose route
// tracking is enabled.
type Hop struct {
	NodeID string
	Time   float64
}

// TrackingInfo is mutated only by the forwarding plane and the
// terminating Host; it never influences routing decisions.
type TrackingInfo struct {
	GlobalPacketID string
	BirthTime      float64
	Hops           int
	Route          []Hop
	Delivered      bool
	ArrivalTime    float64
}

// Packet bundles the three headers. It has exactly one producer (the
// originating Host) and one consumer (the destination Host); ownership
// passes from Node to Node via the scheduler's event queue, never shared.
type Packet struct {
	L3        L3Header
	Transport TransportHeader
	Tracking  TrackingInfo
}

// NewPacket mints a packet with a fresh globally unique id and zeroed
// tracking state.
func NewPacket(l3 L3Header, transport TransportHeader, birthTime float64) *Packet {
	return &Packet{
		L3:        l3,
		Transport: transport,
		Tracking: TrackingInfo{
			GlobalPacketID: uuid.NewString(),
			BirthTime:      birthTime,
		},
	}
}

// RecordHop increments the hop counter and, when verbose is true, appends
// the visited node and time to the route.
func (p *Packet) RecordHop(nodeID string, now float64, verbose bool) {
	p.Tracking.Hops++
	if verbose {
		p.Tracking.Route = append(p.Tracking.Route, Hop{NodeID: nodeID, Time: now})
	}
}

// MarkDelivered records terminal delivery state.
func (p *Packet) MarkDelivered(now float64) {
	p.Tracking.Delivered = true
	p.Tracking.ArrivalTime = now
}
