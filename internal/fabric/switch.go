package fabric

import "github.com/alonzeltser/fabricsim/internal/packet"

// Switch forwards packets by longest-prefix match or drops them on TTL
// expiry. It never originates or terminates traffic.
type Switch struct {
	*Node
}

// NewSwitch constructs a Switch and wires it as its own message handler.
func NewSwitch(base *Node) *Switch {
	s := &Switch{Node: base}
	s.SetHandler(s)
	return s
}

// OnMessage implements MessageHandler: drops expired packets, otherwise
// forwards via the compiled routing table.
func (s *Switch) OnMessage(pkt *packet.Packet) {
	if pkt.L3.TTL <= 0 {
		s.dropPacket(pkt, DropReasonTTLExpired)
		return
	}

	port := s.SelectEgressPort(pkt)
	if port == nil {
		return
	}
	port.Enqueue(pkt)
}
