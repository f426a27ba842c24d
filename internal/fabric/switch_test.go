package fabric

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alonzeltser/fabricsim/internal/packet"
)

func TestSwitchDropsExpiredTTL(t *testing.T) {
	t.Parallel()

	sched, hostA, hostB, _ := twoHostLink(t, 1_000_000, 0)
	_ = hostB

	node := newBareNode(t, "sw0", sched, RoutingModeStaticHash, 1)
	sw := NewSwitch(node)

	pkt := samplePacket(hostA.IP, 0)
	pkt.L3.TTL = 0

	sw.OnMessage(pkt)

	require.True(t, pkt.L3.Dropped)
	require.Equal(t, 1, sw.DropCount(DropReasonTTLExpired))
}

func TestSwitchForwardsWhenRouteExists(t *testing.T) {
	t.Parallel()

	sched, hostA, hostB, _ := twoHostLink(t, 1_000_000, 0)

	node := newBareNode(t, "sw0", sched, RoutingModeStaticHash, 1)
	sw := NewSwitch(node)
	port := sw.AddPort()
	sw.InstallRoute(packet.NewPrefix(hostB.IP, 32), port.ID)

	pkt := samplePacket(hostB.IP, 0)
	sw.OnMessage(pkt)

	require.Equal(t, 1, port.QueueSize())
	require.False(t, pkt.L3.Dropped)
}
