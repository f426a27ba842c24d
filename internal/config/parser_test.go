package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	simerrors "github.com/alonzeltser/fabricsim/pkg/errors"
)

const validYAML = `
run:
  message_verbose: false
topology:
  type: ai-factory-su
  max_path: 4
  mtu: 1500
  ttl: 64
  routing:
    mode: ecmp
    ecmp_flowlet_n_packets: 8
  links:
    failure_percent: 0
    bandwidth_bps:
      server_to_leaf: 100000000000
      leaf_to_spine: 400000000000
  ai_factory_su:
    leaves: 2
    spines: 2
    servers_per_leaf: 4
    server_parallel_links: 1
    leaf_to_spine_parallel_links: 1
scenario:
  name: ai-factory-su-workload1-dp-heavy
  params:
    steps: 5
    seed: 42
    bytes_per_participant: 1048576
    buckets_per_step: 2
    compute_duration_sec: 0.01
`

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestParseConfigValid(t *testing.T) {
	t.Parallel()

	path := writeTempConfig(t, validYAML)
	cfg, err := ParseConfig(path)
	require.NoError(t, err)
	require.Equal(t, "ai-factory-su", cfg.Topology.Type)
	require.Equal(t, RoutingModeStaticHash, NormalizeRoutingMode(cfg.Topology.Routing.Mode))
	require.Equal(t, 2, cfg.Topology.AIFactorySU.Leaves)
}

func TestParseConfigMissingFile(t *testing.T) {
	t.Parallel()

	_, err := ParseConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	var parseErr *simerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseConfigRejectsUnknownScenario(t *testing.T) {
	t.Parallel()

	body := validYAML + "\n"
	path := writeTempConfig(t, body)
	cfg, err := ParseConfig(path)
	require.NoError(t, err)
	cfg.Scenario.Name = "not-a-real-scenario"
	require.Error(t, ValidateConfig(cfg))
}

func TestParseConfigRejectsBadRoutingMode(t *testing.T) {
	t.Parallel()

	path := writeTempConfig(t, validYAML)
	cfg, err := ParseConfig(path)
	require.NoError(t, err)
	cfg.Topology.Routing.Mode = "round_robin"
	require.Error(t, ValidateConfig(cfg))
}
