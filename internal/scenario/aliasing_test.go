package scenario

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithAliasesExposesBothCanonicalAndLegacyKeys(t *testing.T) {
	t.Parallel()

	results := map[string]int{DPHeavyJobID: 1, MixedJobID: 2}
	aliased := WithAliases(results)

	require.Equal(t, 1, aliased["jobA"])
	require.Equal(t, 1, aliased["tp_heavy"])
	require.Equal(t, 2, aliased["jobB"])
	require.Equal(t, 2, aliased["pp_dp"])
}
