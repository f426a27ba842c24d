package workload

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMiceInjectorCompletesFlowsAndPublishesStats(t *testing.T) {
	t.Parallel()

	sched, _, injector, ids := directNetwork(t, 2, 1_000_000)

	mice := NewMiceInjector(MiceConfig{
		Enabled:      true,
		Seed:         1,
		StartDelay:   0,
		EndTime:      0.1,
		InterArrival: 0.01,
		MinPackets:   1,
		MaxPackets:   2,
		MTU:          500,
	}, ids, nil, sched, injector)

	mice.Start()
	sched.Run()

	stats := mice.Stats()
	require.Greater(t, stats.FlowCount, 0)
	require.GreaterOrEqual(t, stats.P95Ms, stats.AvgMs)
	require.GreaterOrEqual(t, stats.P99Ms, stats.P95Ms)
}

func TestMiceInjectorDisabledDoesNothing(t *testing.T) {
	t.Parallel()

	sched, _, injector, ids := directNetwork(t, 2, 1_000_000)

	mice := NewMiceInjector(MiceConfig{Enabled: false}, ids, nil, sched, injector)
	mice.Start()
	sched.Run()

	require.Equal(t, 0, mice.Stats().FlowCount)
}
