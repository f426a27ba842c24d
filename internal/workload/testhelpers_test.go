package workload

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alonzeltser/fabricsim/internal/fabric"
	"github.com/alonzeltser/fabricsim/internal/logger"
	"github.com/alonzeltser/fabricsim/internal/packet"
	"github.com/alonzeltser/fabricsim/internal/simclock"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(logger.Options{Writer: io.Discard})
	require.NoError(t, err)
	return log
}

// directNetwork builds a small fully-meshed network of n hosts, each pair
// connected back-to-back (only used here for n == 2), with a FlowInjector
// already registered.
func directNetwork(t *testing.T, n int, bandwidthBps float64) (*simclock.Scheduler, *fabric.Network, *FlowInjector, []string) {
	t.Helper()
	require.Equal(t, 2, n, "test helper only wires a direct pair")

	sched := simclock.New()
	net := fabric.NewNetwork()
	log := testLogger(t)

	ids := make([]string, 0, n)
	hosts := make([]*fabric.Host, 0, n)
	for i := 0; i < n; i++ {
		id := hostID(i)
		ids = append(ids, id)
		node := fabric.NewNode(id, 64, fabric.RoutingModeStaticHash, sched, int64(i+1), log, false)
		h := fabric.NewHost(node, packet.NewAddr(10, 0, 0, uint8(i+1)), 1000, 0)
		net.AddHost(h)
		hosts = append(hosts, h)
	}

	portA := hosts[0].AddPort()
	portB := hosts[1].AddPort()
	link := fabric.NewLink("a-b", bandwidthBps, 0, sched)
	link.Connect(portA)
	link.Connect(portB)
	net.AddLink(link)

	hosts[0].InstallRoute(packet.NewPrefix(hosts[1].IP, 32), portA.ID)
	hosts[1].InstallRoute(packet.NewPrefix(hosts[0].IP, 32), portB.ID)

	injector := NewFlowInjector(net)
	injector.RegisterOnAllHosts()

	return sched, net, injector, ids
}

func hostID(i int) string {
	return "host" + string(rune('a'+i))
}
