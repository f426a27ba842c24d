package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
run:
  message_verbose: false
topology:
  type: ai-factory-su
  max_path: 4
  mtu: 1500
  ttl: 64
  routing:
    mode: ecmp
    ecmp_flowlet_n_packets: 0
  links:
    failure_percent: 0
    bandwidth_bps:
      server_to_leaf: 1000000000
      leaf_to_spine: 4000000000
  ai_factory_su:
    leaves: 2
    spines: 2
    servers_per_leaf: 2
    server_parallel_links: 1
    leaf_to_spine_parallel_links: 1
scenario:
  name: ai-factory-su-workload1-dp-heavy
  params:
    steps: 1
    seed: 1
    bytes_per_participant: 4096
    buckets_per_step: 1
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0o600))
	return path
}

func TestValidateCommandAcceptsWellFormedConfig(t *testing.T) {
	t.Parallel()

	path := writeTestConfig(t)
	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"validate", path})

	require.NoError(t, root.Execute())
	require.Contains(t, buf.String(), "valid")
}

func TestRunCommandPrintsResultSummary(t *testing.T) {
	t.Parallel()

	path := writeTestConfig(t)
	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"run", path})

	require.NoError(t, root.Execute())
	require.Contains(t, buf.String(), "topology:")
	require.Contains(t, buf.String(), "stats:")
}

func TestVersionCommandPrintsBuildInfo(t *testing.T) {
	t.Parallel()

	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	require.Contains(t, buf.String(), "fabricsim")
}
