package scenario

import (
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/alonzeltser/fabricsim/internal/collective"
	"github.com/alonzeltser/fabricsim/internal/config"
	"github.com/alonzeltser/fabricsim/internal/topology"
	"github.com/alonzeltser/fabricsim/internal/workload"
)

// partitionIntoStages splits participants into params.PipelineStages
// equal groups, either contiguously ("sequential", the default) or by
// round-robin assignment across racks ("rack_balanced"). rack_balanced
// requires every rack to contribute the same number of hosts; uneven
// racks are a defined configuration error rather than a silent fallback.
func partitionIntoStages(params config.ScenarioParams, participants []string) ([][]string, error) {
	stages := params.PipelineStages
	if stages <= 0 {
		stages = 1
	}

	if len(participants)%stages != 0 {
		return nil, newPipelineStageError(len(participants))
	}
	stageSize := len(participants) / stages
	if stageSize%4 != 0 {
		return nil, newPipelineStageError(len(participants))
	}

	if params.AllocationMode != "rack_balanced" {
		groups := make([][]string, stages)
		for s := 0; s < stages; s++ {
			groups[s] = append([]string(nil), participants[s*stageSize:(s+1)*stageSize]...)
		}
		return groups, nil
	}

	byRack := make(map[string][]string)
	for _, p := range participants {
		key := topology.RackKey(p)
		byRack[key] = append(byRack[key], p)
	}

	racks := make([]string, 0, len(byRack))
	for k := range byRack {
		racks = append(racks, k)
	}
	sort.Strings(racks)

	size := len(byRack[racks[0]])
	for _, k := range racks {
		if len(byRack[k]) != size {
			return nil, ErrNonUniformRacks
		}
		sort.Strings(byRack[k])
	}

	groups := make([][]string, stages)
	counter := 0
	for _, rack := range racks {
		for _, host := range byRack[rack] {
			groups[counter%stages] = append(groups[counter%stages], host)
			counter++
		}
	}
	return groups, nil
}

// BuildMixedScenario constructs the pipeline-parallel + data-parallel
// mixed job: each step pipes MicroBatches activations sequentially
// through the PipelineStages, then every stage group runs its own
// data-parallel all-reduce to synchronize gradients.
func BuildMixedScenario(params config.ScenarioParams, participants []string) (workload.Job, error) {
	stageGroups, err := partitionIntoStages(params, participants)
	if err != nil {
		return workload.Job{}, err
	}

	microBatches := params.MicroBatches
	if microBatches < 1 {
		microBatches = 1
	}

	steps := make([]workload.JobStep, 0, params.Steps)
	idGen := func() string { return uuid.NewString() }

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
		buckets := make([]workload.Bucket, 0, len(stageGroups))

		microBatchBytes := int(params.BytesPerParticipant) / microBatches
		if microBatchBytes < 1 {
			microBatchBytes = 1
		}

		for s := 0; s+1 < len(stageGroups); s++ {
			bucketID := commPhaseID + "/pp_stage" + strconv.Itoa(s)
			flows := make([]workload.Flow, 0, microBatches)
			src := stageGroups[s][0]
			dst := stageGroups[s+1][0]
			for m := 0; m < microBatches; m++ {
				flows = append(flows, workload.Flow{
					FlowID:    idGen(),
					JobID:     MixedJobID,
					StepID:    stepID,
					PhaseID:   commPhaseID,
					BucketID:  bucketID,
					Tag:       "pipeline/stage_" + strconv.Itoa(s) + "_microbatch_" + strconv.Itoa(m),
					SrcNodeID: src,
					DstNodeID: dst,
					SizeBytes: microBatchBytes,
				})
			}
			buckets = append(buckets, workload.Bucket{BucketID: bucketID, Flows: flows})
		}

		// Every stage group's gradient sync runs its own reduce-scatter then
		// all-gather. Groups are independent of each other, so their
		// scatter passes share one bucket and their gather passes share the
		// next; within a group, gather still only starts once scatter (for
		// every group) has finished.
		scatterBucketID := commPhaseID + "/dp_sync/reduce_scatter"
		gatherBucketID := commPhaseID + "/dp_sync/all_gather"
		var scatterFlows, gatherFlows []collective.Flow
		for s, group := range stageGroups {
			seed := params.Seed + int64(s)
			scatterFlows = append(scatterFlows, collective.Expand(collective.KindReduceScatter, group, int(params.BytesPerParticipant),
				0, params.InterStepGapSec, seed, MixedJobID, stepID, commPhaseID, scatterBucketID, idGen)...)
			gatherFlows = append(gatherFlows, collective.Expand(collective.KindAllGather, group, int(params.BytesPerParticipant),
				0, params.InterStepGapSec, seed, MixedJobID, stepID, commPhaseID, gatherBucketID, idGen)...)
		}
		buckets = append(buckets,
			workload.Bucket{BucketID: scatterBucketID, Flows: toWorkloadFlows(scatterFlows)},
			workload.Bucket{BucketID: gatherBucketID, Flows: toWorkloadFlows(gatherFlows)},
		)

		phases = append(phases, workload.Phase{
			PhaseID: commPhaseID,
			Kind:    workload.PhaseKindComm,
			Buckets: buckets,
		})

		steps = append(steps, workload.JobStep{StepID: stepID, Phases: phases})
	}

	return workload.Job{
		JobID:        MixedJobID,
		Name:         "mixed_scenario",
		Steps:        steps,
		Participants: participants,
	}, nil
}
