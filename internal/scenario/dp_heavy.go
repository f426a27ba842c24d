// Package scenario combines the collective expander, the job runner, and
// the flow injector into the two concrete workloads the simulator ships:
// a DP-heavy all-reduce job and a mixed pipeline-parallel + data-parallel
// job.
package scenario

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/alonzeltser/fabricsim/internal/collective"
	"github.com/alonzeltser/fabricsim/internal/config"
	"github.com/alonzeltser/fabricsim/internal/workload"
)

// BuildDPHeavy constructs the DP-heavy workload: every step runs a
// compute phase (only when ComputeDurationSec > 0) followed by a
// communication phase of BucketsPerStep
// independent all-reduce buckets over every participant host, each
// moving BytesPerParticipant bytes per participant (gradient bucketing,
// the common pattern for large-model data-parallel training).
func BuildDPHeavy(params config.ScenarioParams, participants []string) workload.Job {
	steps := make([]workload.JobStep, 0, params.Steps)

	for i := 0; i < params.Steps; i++ {
		stepID := "step" + strconv.Itoa(i)
		phases := make([]workload.Phase, 0, 2)

		if params.ComputeDurationSec > 0 {
			phases = append(phases, workload.Phase{
				PhaseID:         stepID + "/compute",
				Kind:            workload.PhaseKindCompute,
				ComputeDuration: params.ComputeDurationSec,
			})
		}

		commPhaseID := stepID + "/comm"
		idGen := func() string { return uuid.NewString() }
		buckets := make([]workload.Bucket, 0, params.BucketsPerStep*2)

		// Each gradient bucket is its own all-reduce: a reduce-scatter pass
		// followed by an all-gather pass. The two passes are sequential
		// buckets, not a combined join, since all-gather depends on
		// reduce-scatter having finished.
		for b := 0; b < params.BucketsPerStep; b++ {
			scatterID := commPhaseID + "/bucket" + strconv.Itoa(b) + "/reduce_scatter"
			gatherID := commPhaseID + "/bucket" + strconv.Itoa(b) + "/all_gather"

			scatter := collective.Expand(collective.KindReduceScatter, participants, int(params.BytesPerParticipant),
				0, params.InterStepGapSec, params.Seed, DPHeavyJobID, stepID, commPhaseID, scatterID, idGen)
			gather := collective.Expand(collective.KindAllGather, participants, int(params.BytesPerParticipant),
				0, params.InterStepGapSec, params.Seed, DPHeavyJobID, stepID, commPhaseID, gatherID, idGen)

			buckets = append(buckets,
				workload.Bucket{BucketID: scatterID, Flows: toWorkloadFlows(scatter)},
				workload.Bucket{BucketID: gatherID, Flows: toWorkloadFlows(gather)},
			)
		}

		phases = append(phases, workload.Phase{
			PhaseID: commPhaseID,
			Kind:    workload.PhaseKindComm,
			Buckets: buckets,
		})

		steps = append(steps, workload.JobStep{StepID: stepID, Phases: phases})
	}

	return workload.Job{
		JobID:        DPHeavyJobID,
		Name:         "dp_heavy",
		Steps:        steps,
		Participants: participants,
	}
}

// toWorkloadFlows adapts collective.Flow values into the workload
// package's Flow type, which additionally carries EarliestStart.
func toWorkloadFlows(in []collective.Flow) []workload.Flow {
	out := make([]workload.Flow, len(in))
	for i, f := range in {
		out[i] = workload.Flow{
			FlowID:        f.FlowID,
			JobID:         f.JobID,
			StepID:        f.StepID,
			PhaseID:       f.PhaseID,
			BucketID:      f.BucketID,
			Tag:           f.Tag,
			SrcNodeID:     f.SrcNodeID,
			DstNodeID:     f.DstNodeID,
			SizeBytes:     f.SizeBytes,
			EarliestStart: f.StartTime,
		}
	}
	return out
}
