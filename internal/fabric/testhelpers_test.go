package fabric

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alonzeltser/fabricsim/internal/logger"
	"github.com/alonzeltser/fabricsim/internal/packet"
	"github.com/alonzeltser/fabricsim/internal/simclock"
)

func mustAddr(a, b, c, d uint8) packet.Addr {
	return packet.NewAddr(a, b, c, d)
}

func prefix32(addr packet.Addr) packet.Prefix {
	return packet.NewPrefix(addr, 32)
}

// funcObserver adapts a plain function to the FlowObserver interface for
// test assertions.
type funcObserver func(flowID string, sizeBytes int, dstIP packet.Addr)

func (f funcObserver) OnFlowPacket(flowID string, sizeBytes int, dstIP packet.Addr) {
	f(flowID, sizeBytes, dstIP)
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(logger.Options{Writer: io.Discard})
	require.NoError(t, err)
	return log
}

// twoHostLink builds two Hosts connected back-to-back through a single
// Link, returning (scheduler, hostA, hostB, link).
func twoHostLink(t *testing.T, bandwidthBps, propagationSec float64) (*simclock.Scheduler, *Host, *Host, *Link) {
	t.Helper()
	sched := simclock.New()
	log := testLogger(t)

	nodeA := NewNode("hostA", 64, RoutingModeStaticHash, sched, 1, log, false)
	nodeB := NewNode("hostB", 64, RoutingModeStaticHash, sched, 2, log, false)

	ipA := mustAddr(10, 0, 0, 1)
	ipB := mustAddr(10, 0, 0, 2)

	hostA := NewHost(nodeA, ipA, 1000, 0)
	hostB := NewHost(nodeB, ipB, 1000, 0)

	portA := hostA.AddPort()
	portB := hostB.AddPort()

	link := NewLink("a-b", bandwidthBps, propagationSec, sched)
	link.Connect(portA)
	link.Connect(portB)

	hostA.InstallRoute(prefix32(ipB), portA.ID)
	hostB.InstallRoute(prefix32(ipA), portB.ID)

	return sched, hostA, hostB, link
}
