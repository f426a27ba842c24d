package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("config.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "config.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "config.yaml")
}

func TestValidationErrorIncludesPath(t *testing.T) {
	t.Parallel()

	err := NewValidationError("topology.ai_factory_su.leaves", "must be > 0", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "topology.ai_factory_su.leaves", validationErr.Path)
	require.Contains(t, validationErr.Message, "must be > 0")
}

func TestTopologyErrorIncludesComponent(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("odd host count")
	err := NewTopologyError("ai-factory-su", "cannot split hosts evenly", underlying)

	var topoErr *TopologyError
	require.ErrorAs(t, err, &topoErr)
	require.Equal(t, "ai-factory-su", topoErr.Component)
	require.True(t, stdErrors.Is(err, underlying))
}

func TestSimulationErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("negative delay")
	err := NewSimulationError("scheduler", underlying)

	var simErr *SimulationError
	require.ErrorAs(t, err, &simErr)
	require.Equal(t, "scheduler", simErr.Component)
	require.True(t, stdErrors.Is(err, underlying))
}
