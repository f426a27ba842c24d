// Package workload turns a hierarchical job description (job -> step ->
// phase -> bucket -> flow) into time-ordered packet injection events and
// barriers, driving the fabric through the flow injector.
package workload

// Flow is a logical point-to-point byte transfer between two hosts,
// produced by the collective expander or the mice injector and consumed
// by the Flow Injector. It is immutable once created.
type Flow struct {
	FlowID        string
	JobID         string
	StepID        string
	PhaseID       string
	BucketID      string
	Tag           string
	SrcNodeID     string
	DstNodeID     string
	SizeBytes     int
	EarliestStart float64
	Metadata      map[string]any
}

// Bucket is a set of flows that must all complete before the next bucket
// in a communication phase starts.
type Bucket struct {
	BucketID string
	Flows    []Flow
}

// PhaseKind distinguishes the two closed variants a Phase can be.
type PhaseKind int

const (
	PhaseKindCompute PhaseKind = iota
	PhaseKindComm
)

// Phase is a tagged variant: a ComputePhase carries only a duration; a
// CommPhase carries an ordered list of buckets. Treat Kind as a closed
// sum and branch on it rather than growing a class hierarchy.
type Phase struct {
	PhaseID         string
	Kind            PhaseKind
	ComputeDuration float64
	Buckets         []Bucket
}

// JobStep is one step of a job: an ordered list of phases.
type JobStep struct {
	StepID string
	Phases []Phase
}

// Job is a named, ordered sequence of steps over a fixed participant set.
type Job struct {
	JobID        string
	Name         string
	Steps        []JobStep
	Participants []string
}

// PhaseMetrics captures the simulated start/end time of one phase.
type PhaseMetrics struct {
	PhaseID   string
	StartTime float64
	EndTime   float64
}

// StepMetrics captures the simulated start/end time of one step and its
// constituent phases.
type StepMetrics struct {
	StepID    string
	StartTime float64
	EndTime   float64
	Phases    []PhaseMetrics
}

// JobMetrics captures the simulated start/end time of an entire job and
// its constituent steps.
type JobMetrics struct {
	JobID     string
	StartTime float64
	EndTime   float64
	Steps     []StepMetrics
}
