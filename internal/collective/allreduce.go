package collective

// ExpandAllReduce models all-reduce as a reduce-scatter pass followed by
// an all-gather pass, each contributing its own flow list with the same
// total bytes. gatherStart is normally reduceScatterStart plus
// (P-1)*gap so the gather pass starts after the scatter pass completes.
func ExpandAllReduce(participants []string, bytesPerParticipant int, reduceScatterStart, gatherStart, gap float64, seed int64, jobID, stepID, phaseID, bucketID string, nextID IDGenerator) []Flow {
	scatter := Expand(KindReduceScatter, participants, bytesPerParticipant, reduceScatterStart, gap, seed, jobID, stepID, phaseID, bucketID, nextID)
	gather := Expand(KindAllGather, participants, bytesPerParticipant, gatherStart, gap, seed, jobID, stepID, phaseID, bucketID, nextID)
	return append(scatter, gather...)
}
