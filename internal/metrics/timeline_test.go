package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimelineSamplesEveryStride(t *testing.T) {
	t.Parallel()

	tl := NewTimeline(3, 100)
	for i := 1; i <= 9; i++ {
		tl.OnPacketCreated(float64(i), i*10)
	}

	samples := tl.Samples()
	require.Len(t, samples, 3)
	require.Equal(t, TimelineSample{BirthTime: 3, SizeBytes: 30}, samples[0])
	require.Equal(t, TimelineSample{BirthTime: 6, SizeBytes: 60}, samples[1])
	require.Equal(t, TimelineSample{BirthTime: 9, SizeBytes: 90}, samples[2])
}

func TestTimelineEvictsOldestOnceFull(t *testing.T) {
	t.Parallel()

	tl := NewTimeline(1, 3)
	for i := 1; i <= 5; i++ {
		tl.OnPacketCreated(float64(i), i)
	}

	samples := tl.Samples()
	require.Len(t, samples, 3)
	require.Equal(t, 3.0, samples[0].BirthTime)
	require.Equal(t, 4.0, samples[1].BirthTime)
	require.Equal(t, 5.0, samples[2].BirthTime)
}

func TestNewTimelineClampsStrideAndCapacity(t *testing.T) {
	t.Parallel()

	tl := NewTimeline(0, 0)
	tl.OnPacketCreated(1, 100)
	require.Len(t, tl.Samples(), 1)
}
