package workload

import (
	"github.com/alonzeltser/fabricsim/internal/logger"
	"github.com/alonzeltser/fabricsim/internal/simclock"
)

// JobRunner advances a Job through JobStart -> (Step)* -> JobEnd,
// scheduling continuations on the event loop rather than suspending a
// coroutine. Each continuation closes over exactly the state it needs for
// its next transition.
type JobRunner struct {
	job       Job
	sched     *simclock.Scheduler
	injector  *FlowInjector
	log       *logger.Logger
	onJobDone func(JobMetrics)

	metrics JobMetrics
}

// NewJobRunner constructs a runner for job, driven by sched and injector.
// onJobDone is invoked once with the completed metrics when the job ends.
func NewJobRunner(job Job, sched *simclock.Scheduler, injector *FlowInjector, log *logger.Logger, onJobDone func(JobMetrics)) *JobRunner {
	return &JobRunner{job: job, sched: sched, injector: injector, log: log, onJobDone: onJobDone}
}

// Start schedules the job's first step at time 0.
func (r *JobRunner) Start() {
	r.metrics = JobMetrics{JobID: r.job.JobID, StartTime: r.sched.CurrentTime()}
	r.sched.Schedule(0, func() { r.runStep(0) })
}

func (r *JobRunner) runStep(i int) {
	if i == len(r.job.Steps) {
		r.metrics.EndTime = r.sched.CurrentTime()
		if r.log != nil {
			r.log.Info("job complete", "job_id", r.job.JobID, "end_time", r.metrics.EndTime)
		}
		if r.onJobDone != nil {
			r.onJobDone(r.metrics)
		}
		return
	}

	step := r.job.Steps[i]
	stepMetrics := StepMetrics{StepID: step.StepID, StartTime: r.sched.CurrentTime()}
	r.metrics.Steps = append(r.metrics.Steps, stepMetrics)

	r.runPhase(i, 0)
}

func (r *JobRunner) runPhase(i, j int) {
	step := r.job.Steps[i]

	if j == len(step.Phases) {
		idx := len(r.metrics.Steps) - 1
		r.metrics.Steps[idx].EndTime = r.sched.CurrentTime()
		r.runStep(i + 1)
		return
	}

	phase := step.Phases[j]
	phaseMetrics := PhaseMetrics{PhaseID: phase.PhaseID, StartTime: r.sched.CurrentTime()}
	stepIdx := len(r.metrics.Steps) - 1
	r.metrics.Steps[stepIdx].Phases = append(r.metrics.Steps[stepIdx].Phases, phaseMetrics)

	donePhase := func() {
		phaseIdx := len(r.metrics.Steps[stepIdx].Phases) - 1
		r.metrics.Steps[stepIdx].Phases[phaseIdx].EndTime = r.sched.CurrentTime()
		r.runPhase(i, j+1)
	}

	switch phase.Kind {
	case PhaseKindCompute:
		r.sched.Schedule(phase.ComputeDuration, donePhase)
	case PhaseKindComm:
		r.runBucket(phase.Buckets, 0, donePhase)
	}
}

func (r *JobRunner) runBucket(buckets []Bucket, k int, donePhase func()) {
	if k == len(buckets) {
		donePhase()
		return
	}

	bucket := buckets[k]
	if len(bucket.Flows) == 0 {
		r.runBucket(buckets, k+1, donePhase)
		return
	}

	ids := make([]string, len(bucket.Flows))
	for idx, f := range bucket.Flows {
		ids[idx] = f.FlowID
	}

	join := NewJoin(ids, func() { r.runBucket(buckets, k+1, donePhase) })

	now := r.sched.CurrentTime()
	for _, flow := range bucket.Flows {
		flow := flow
		delay := flow.EarliestStart - now
		if delay < 0 {
			delay = 0
		}
		r.sched.Schedule(delay, func() {
			r.injector.Inject(flow, func() { join.MarkComplete(flow.FlowID) })
		})
	}
}

// Metrics returns the accumulated JobMetrics. Only meaningful once the
// job has reached JobEnd.
func (r *JobRunner) Metrics() JobMetrics {
	return r.metrics
}
