package workload

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJobRunnerAdvancesThroughComputeAndCommPhases(t *testing.T) {
	t.Parallel()

	sched, _, injector, ids := directNetwork(t, 2, 1_000_000)

	job := Job{
		JobID:        "job1",
		Participants: ids,
		Steps: []JobStep{
			{
				StepID: "step0",
				Phases: []Phase{
					{PhaseID: "compute0", Kind: PhaseKindCompute, ComputeDuration: 0.01},
					{
						PhaseID: "comm0",
						Kind:    PhaseKindComm,
						Buckets: []Bucket{
							{
								BucketID: "bucket0",
								Flows: []Flow{
									{FlowID: "f1", SrcNodeID: ids[0], DstNodeID: ids[1], SizeBytes: 1000},
								},
							},
						},
					},
				},
			},
		},
	}

	var finalMetrics JobMetrics
	runner := NewJobRunner(job, sched, injector, testLogger(t), func(m JobMetrics) { finalMetrics = m })
	runner.Start()

	sched.Run()

	require.Len(t, finalMetrics.Steps, 1)
	require.Greater(t, finalMetrics.EndTime, finalMetrics.StartTime)
	require.Len(t, finalMetrics.Steps[0].Phases, 2)
	require.GreaterOrEqual(t, finalMetrics.Steps[0].Phases[1].EndTime, finalMetrics.Steps[0].Phases[1].StartTime)
}

func TestJobRunnerSkipsEmptyBucketImmediately(t *testing.T) {
	t.Parallel()

	sched, _, injector, ids := directNetwork(t, 2, 1_000_000)

	job := Job{
		JobID:        "job1",
		Participants: ids,
		Steps: []JobStep{
			{
				StepID: "step0",
				Phases: []Phase{
					{
						PhaseID: "comm0",
						Kind:    PhaseKindComm,
						Buckets: []Bucket{
							{BucketID: "empty"},
							{BucketID: "real", Flows: []Flow{
								{FlowID: "f1", SrcNodeID: ids[0], DstNodeID: ids[1], SizeBytes: 100},
							}},
						},
					},
				},
			},
		},
	}

	done := false
	runner := NewJobRunner(job, sched, injector, testLogger(t), func(m JobMetrics) { done = true })
	runner.Start()
	sched.Run()

	require.True(t, done)
}
