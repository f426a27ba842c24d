package fabric

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestTwoHostSerialization is end-to-end scenario 1 from the spec: a
// 1 Mb/s link, zero propagation, two 1,000-byte sends back to back at
// time 0. Both are delivered; end time is two serialization delays.
func TestTwoHostSerialization(t *testing.T) {
	t.Parallel()

	sched, hostA, hostB, _ := twoHostLink(t, 1_000_000, 0)

	hostA.Send("flow-1", hostB.IP, 1000, 2000, 1000, 0)
	hostA.Send("flow-2", hostB.IP, 1000, 2000, 1000, 0)

	sched.Run()

	require.Equal(t, 2, hostB.ReceivedCount())
	require.InDelta(t, 0.016, sched.EndTime(), 1e-9)
}

func TestLinkFailedNeverAccumulatesBytes(t *testing.T) {
	t.Parallel()

	sched, hostA, hostB, link := twoHostLink(t, 1_000_000, 0)
	link.MarkFailed()

	hostA.Send("flow-1", hostB.IP, 1000, 2000, 1000, 0)
	sched.Run()

	require.Equal(t, int64(0), link.BytesTransmitted())
	require.Equal(t, 0, hostB.ReceivedCount())
	require.Equal(t, 1, hostA.DropCount(DropReasonLinkFailure))
}

func TestLinkConnectThirdEndpointPanics(t *testing.T) {
	t.Parallel()

	sched, hostA, _, _ := twoHostLink(t, 1_000_000, 0)
	link := NewLink("extra", 1_000_000, 0, sched)
	thirdPort := hostA.AddPort()
	link.Connect(thirdPort)
	fourthPort := hostA.AddPort()
	link.Connect(fourthPort)

	require.Panics(t, func() {
		link.Connect(hostA.AddPort())
	})
}
