// Package collective compiles logical collective-communication primitives
// (all-reduce, reduce-scatter, all-gather) over a set of participants into
// concrete point-to-point flows with deterministic chunking and ordering.
package collective

import (
	"math/rand"
	"strconv"
)

// Kind identifies the logical collective being expanded.
type Kind string

const (
	KindAllReduce     Kind = "all-reduce"
	KindReduceScatter Kind = "reduce-scatter"
	KindAllGather     Kind = "all-gather"
)

// Flow is the point-to-point transfer one ring step emits from one
// participant to its ring successor.
type Flow struct {
	FlowID    string
	JobID     string
	StepID    string
	PhaseID   string
	BucketID  string
	Tag       string
	SrcNodeID string
	DstNodeID string
	SizeBytes int
	StartTime float64
}

// IDGenerator mints a flow id; the caller supplies this so the expander
// itself stays free of any identity-generation policy.
type IDGenerator func() string

// Expand produces the deterministic flow list for one ring pass (a
// reduce-scatter or an all-gather). participants must have length >= 2 or
// an empty list is returned, per the boundary behavior. The ring order is
// a seeded Fisher-Yates shuffle of participants, so the same seed always
// yields the same ring.
func Expand(kind Kind, participants []string, bytesPerParticipant int, startTime, gap float64, seed int64, jobID, stepID, phaseID, bucketID string, nextID IDGenerator) []Flow {
	p := len(participants)
	if p < 2 {
		return nil
	}

	ring := shuffledRing(participants, seed)
	steps := p - 1
	chunks := chunkSizes(bytesPerParticipant, p, steps)

	flows := make([]Flow, 0, p*steps)
	for s := 0; s < steps; s++ {
		t := startTime + float64(s)*gap
		tag := string(kind) + "/ring_step_" + strconv.Itoa(s)
		for i := 0; i < p; i++ {
			src := ring[i]
			dst := ring[(i+1)%p]
			flows = append(flows, Flow{
				FlowID:    nextID(),
				JobID:     jobID,
				StepID:    stepID,
				PhaseID:   phaseID,
				BucketID:  bucketID,
				Tag:       tag,
				SrcNodeID: src,
				DstNodeID: dst,
				SizeBytes: chunks[s],
				StartTime: t,
			})
		}
	}
	return flows
}

// shuffledRing derives a stable ring order via a seeded Fisher-Yates
// shuffle. The same seed and participant list always produce the same
// ring, independent of call count.
func shuffledRing(participants []string, seed int64) []string {
	ring := make([]string, len(participants))
	copy(ring, participants)

	rng := rand.New(rand.NewSource(seed))
	for i := len(ring) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		ring[i], ring[j] = ring[j], ring[i]
	}
	return ring
}

// chunkSizes computes the per-step chunk for steps ring steps: the base
// chunk is bytesPerParticipant/participantCount, and the first
// bytesPerParticipant%participantCount steps get one extra byte. steps is P-1 by construction (never zero here,
// since Expand already rejected P < 2).
func chunkSizes(bytesPerParticipant, participantCount, steps int) []int {
	base := bytesPerParticipant / participantCount
	remainder := bytesPerParticipant % participantCount

	sizes := make([]int, steps)
	for s := 0; s < steps; s++ {
		sizes[s] = base
		if s < remainder {
			sizes[s]++
		}
	}
	return sizes
}
