package fabric

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alonzeltser/fabricsim/internal/packet"
	"github.com/alonzeltser/fabricsim/internal/simclock"
)

func newBareNode(t *testing.T, id string, sched *simclock.Scheduler, mode RoutingMode, seed int64) *Node {
	t.Helper()
	return NewNode(id, 64, mode, sched, seed, testLogger(t), false)
}

func samplePacket(dst packet.Addr, flowlet uint32) *packet.Packet {
	l3 := packet.L3Header{
		Tuple: packet.FiveTuple{
			SrcIP: mustAddr(10, 0, 0, 9), DstIP: dst,
			SrcPort: 1000, DstPort: 2000, Protocol: packet.ProtocolTCP, Flowlet: flowlet,
		},
		Size: 100, TTL: 64,
	}
	return packet.NewPacket(l3, packet.TransportHeader{}, 0)
}

func TestSelectEgressPortLongestPrefixWins(t *testing.T) {
	t.Parallel()

	sched := simclock.New()
	node := newBareNode(t, "node0", sched, RoutingModeStaticHash, 1)

	for i := 0; i < 3; i++ {
		node.AddPort()
	}

	node.InstallRoute(packet.NewPrefix(mustAddr(10, 0, 0, 0), 16), 0)
	node.InstallRoute(packet.NewPrefix(mustAddr(10, 0, 5, 0), 24), 1)

	pkt := samplePacket(mustAddr(10, 0, 5, 9), 0)
	port := node.SelectEgressPort(pkt)
	require.NotNil(t, port)
	require.Equal(t, 1, port.ID)
}

func TestSelectEgressPortNoMatchDropsPacket(t *testing.T) {
	t.Parallel()

	sched := simclock.New()
	node := newBareNode(t, "node0", sched, RoutingModeStaticHash, 1)
	node.AddPort()
	node.InstallRoute(packet.NewPrefix(mustAddr(10, 0, 0, 0), 24), 0)

	pkt := samplePacket(mustAddr(192, 168, 0, 1), 0)
	port := node.SelectEgressPort(pkt)

	require.Nil(t, port)
	require.True(t, pkt.L3.Dropped)
	require.Equal(t, 1, node.DropCount(DropReasonNoRoute))
}

func TestStaticHashSelectionIsStableForIdenticalFiveTuples(t *testing.T) {
	t.Parallel()

	sched := simclock.New()
	node := newBareNode(t, "node0", sched, RoutingModeStaticHash, 1)
	node.AddPort()
	node.AddPort()

	prefix := packet.NewPrefix(mustAddr(10, 0, 0, 0), 24)
	node.InstallRoute(prefix, 0)
	node.InstallRoute(prefix, 1)

	p1 := samplePacket(mustAddr(10, 0, 0, 5), 7)
	p2 := samplePacket(mustAddr(10, 0, 0, 5), 7)

	port1 := node.SelectEgressPort(p1)
	port2 := node.SelectEgressPort(p2)

	require.Equal(t, port1.ID, port2.ID)
}

func TestAdaptiveSelectionPicksShortestQueue(t *testing.T) {
	t.Parallel()

	sched := simclock.New()
	node := newBareNode(t, "node0", sched, RoutingModeAdaptive, 1)
	port0 := node.AddPort()
	node.AddPort()

	prefix := packet.NewPrefix(mustAddr(10, 0, 0, 0), 24)
	node.InstallRoute(prefix, 0)
	node.InstallRoute(prefix, 1)

	// Pre-load port 0's queue directly to simulate backlog.
	port0.queue = append(port0.queue, samplePacket(mustAddr(10, 0, 0, 5), 0))

	pkt := samplePacket(mustAddr(10, 0, 0, 5), 0)
	port := node.SelectEgressPort(pkt)

	require.Equal(t, 1, port.ID)
}
