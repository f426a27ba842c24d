package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterStepsDefaultsToEveryStep(t *testing.T) {
	t.Parallel()

	require.Equal(t, []int{0, 1, 2}, filterSteps(3, nil))
}

func TestFilterStepsRestrictsToRequestedIndices(t *testing.T) {
	t.Parallel()

	require.Equal(t, []int{0, 2}, filterSteps(3, []int{0, 2}))
}

func TestFilterStepsDropsOutOfRangeIndices(t *testing.T) {
	t.Parallel()

	require.Equal(t, []int{1}, filterSteps(3, []int{-1, 1, 5}))
}
