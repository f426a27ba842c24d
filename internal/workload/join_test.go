package workload

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJoinFiresWhenPendingSetEmpties(t *testing.T) {
	t.Parallel()

	fired := 0
	j := NewJoin([]string{"a", "b"}, func() { fired++ })

	j.MarkComplete("a")
	require.Equal(t, 0, fired)
	require.Equal(t, 1, j.Pending())

	j.MarkComplete("b")
	require.Equal(t, 1, fired)
	require.Equal(t, 0, j.Pending())
}

func TestJoinIdempotentOnRedundantCompletion(t *testing.T) {
	t.Parallel()

	fired := 0
	j := NewJoin([]string{"a"}, func() { fired++ })

	j.MarkComplete("a")
	j.MarkComplete("a")
	j.MarkComplete("unknown")

	require.Equal(t, 1, fired)
}

func TestJoinWithEmptySetFiresImmediately(t *testing.T) {
	t.Parallel()

	fired := 0
	NewJoin(nil, func() { fired++ })

	require.Equal(t, 1, fired)
}
