package packet

import "hash/fnv"

// Protocol is the transport-kind field of a FiveTuple.
type Protocol uint8

const (
	ProtocolTCP Protocol = iota
	ProtocolUDP
)

func (p Protocol) String() string {
	switch p {
	case ProtocolTCP:
		return "tcp"
	case ProtocolUDP:
		return "udp"
	default:
		return "unknown"
	}
}

// FiveTuple identifies a flow's wire-level endpoints. Hash is deterministic
// and stable across runs, including the flowlet field so a sender can
// deliberately force a path change by bumping it.
type FiveTuple struct {
	SrcIP    Addr
	DstIP    Addr
	SrcPort  uint16
	DstPort  uint16
	Protocol Protocol
	Flowlet  uint32
}

// Hash returns a deterministic, stable hash of the tuple. FNV-1a is used
// because it is a fixed, unseeded algorithm: the same tuple always hashes
// to the same value, which static-hash ECMP depends on.
func (t FiveTuple) Hash() uint64 {
	h := fnv.New64a()
	var buf [17]byte
	be32(buf[0:4], t.SrcIP.Uint32())
	be32(buf[4:8], t.DstIP.Uint32())
	be16(buf[8:10], t.SrcPort)
	be16(buf[10:12], t.DstPort)
	buf[12] = byte(t.Protocol)
	be32(buf[13:17], t.Flowlet)
	_, _ = h.Write(buf[:17])
	return h.Sum64()
}

func be32(dst []byte, v uint32) {
	dst[0] = byte(v >> 24)
	dst[1] = byte(v >> 16)
	dst[2] = byte(v >> 8)
	dst[3] = byte(v)
}

func be16(dst []byte, v uint16) {
	dst[0] = byte(v >> 8)
	dst[1] = byte(v)
}
