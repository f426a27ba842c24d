package topology

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alonzeltser/fabricsim/internal/config"
	"github.com/alonzeltser/fabricsim/internal/fabric"
	"github.com/alonzeltser/fabricsim/internal/logger"
)

func smallConfig() config.TopologyConfig {
	return config.TopologyConfig{
		Type:    "ai-factory-su",
		MaxPath: 4,
		MTU:     1500,
		TTL:     64,
		Routing: config.RoutingConfig{Mode: "ecmp"},
		Links: config.LinksConfig{
			FailurePercent: 0,
			BandwidthBps:   config.BandwidthBpsSpec{ServerToLeaf: 1_000_000_000, LeafToSpine: 4_000_000_000},
		},
		AIFactorySU: config.AIFactorySUSpec{
			Leaves: 2, Spines: 2, ServersPerLeaf: 2,
			ServerParallelLinks: 1, LeafToSpineParallelLinks: 1,
		},
	}
}

func TestBuildAIFactorySUCreatesExpectedHosts(t *testing.T) {
	t.Parallel()

	log, err := logger.New(logger.Options{Writer: io.Discard})
	require.NoError(t, err)

	net, plan, err := BuildAIFactorySU(smallConfig(), Options{
		Pod: 0, RoutingMode: fabric.RoutingModeStaticHash, FailureSeed: 1, Log: log,
	})
	require.NoError(t, err)

	require.Len(t, plan.HostIDs, 4)
	require.Len(t, plan.LeafIDs, 2)
	require.Len(t, plan.SpineIDs, 2)
	require.Equal(t, 0, plan.FailedLinkCount)

	h, ok := net.Host("su0_leaf0_srv0")
	require.True(t, ok)
	require.Equal(t, "10.0.1.1", h.IP.String())

	h2, ok := net.Host("su0_leaf1_srv1")
	require.True(t, ok)
	require.Equal(t, "10.0.2.2", h2.IP.String())
}

func TestBuiltTopologyDeliversAcrossLeavesAndSpine(t *testing.T) {
	t.Parallel()

	log, err := logger.New(logger.Options{Writer: io.Discard})
	require.NoError(t, err)

	net, _, err := BuildAIFactorySU(smallConfig(), Options{
		Pod: 0, RoutingMode: fabric.RoutingModeStaticHash, FailureSeed: 1, Log: log,
	})
	require.NoError(t, err)

	src, ok := net.Host("su0_leaf0_srv0")
	require.True(t, ok)
	dst, ok := net.Host("su0_leaf1_srv0")
	require.True(t, ok)

	src.Send("flow-1", dst.IP, 1000, 2000, 1000, 0)
	net.Run()

	require.Equal(t, 1, dst.ReceivedCount())
}

func TestBuildAIFactorySURejectsEmptyDimensions(t *testing.T) {
	t.Parallel()

	cfg := smallConfig()
	cfg.AIFactorySU.Leaves = 0

	_, _, err := BuildAIFactorySU(cfg, Options{})
	require.Error(t, err)
}
