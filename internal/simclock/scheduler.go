// Package simclock implements the discrete-event timeline the rest of the
// simulator runs on: a single ordered queue of (time, thunk) events with
// deterministic tie-breaking, advanced by one cooperative goroutine.
package simclock

import (
	"container/heap"
	"fmt"
	"math"

	simerrors "github.com/alonzeltser/fabricsim/pkg/errors"
)

// Thunk is the unit of work a scheduled event runs. It may itself call
// Scheduler.Schedule to extend the timeline; it must never block.
type Thunk func()

// event is one entry on the timeline: fires at Time, ties broken by the
// insertion-ordered Seq.
type event struct {
	time  float64
	seq   uint64
	thunk Thunk
	index int
}

// eventQueue implements container/heap.Interface ordered by (time, seq).
type eventQueue []*event

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].time != q[j].time {
		return q[i].time < q[j].time
	}
	return q[i].seq < q[j].seq
}

func (q eventQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *eventQueue) Push(x any) {
	e := x.(*event)
	e.index = len(*q)
	*q = append(*q, e)
}

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[:n-1]
	return e
}

// Scheduler owns the event timeline. It is not safe for concurrent use:
// the whole simulator is single-threaded cooperative per design (spec §5).
type Scheduler struct {
	queue       eventQueue
	nextSeq     uint64
	currentTime float64
	started     bool
	ended       bool
	endTime     float64
}

// New returns an empty Scheduler with current time 0.
func New() *Scheduler {
	s := &Scheduler{queue: make(eventQueue, 0, 64)}
	heap.Init(&s.queue)
	return s
}

// Schedule enqueues thunk to run at CurrentTime()+delay. delay must be
// non-negative, or +Inf for an "end of time" sentinel that only fires if
// nothing else remains on the timeline. A negative delay is a programmer
// error and panics via a SimulationError, per spec §4.1 failure semantics.
func (s *Scheduler) Schedule(delay float64, thunk Thunk) {
	if delay < 0 {
		panic(simerrors.NewSimulationError("scheduler", fmt.Errorf("negative schedule delay: %v", delay)))
	}
	if thunk == nil {
		panic(simerrors.NewSimulationError("scheduler", fmt.Errorf("nil thunk scheduled")))
	}

	t := s.currentTime + delay
	if math.IsInf(delay, 1) {
		t = math.Inf(1)
	}

	e := &event{time: t, seq: s.nextSeq, thunk: thunk}
	s.nextSeq++
	heap.Push(&s.queue, e)
}

// CurrentTime returns the time of the most recently popped event, or 0
// before Run has been called.
func (s *Scheduler) CurrentTime() float64 {
	return s.currentTime
}

// EndTime returns the simulated time at which Run drained the queue.
// Only meaningful after Run returns.
func (s *Scheduler) EndTime() float64 {
	return s.endTime
}

// Pending reports how many events remain on the timeline.
func (s *Scheduler) Pending() int {
	return s.queue.Len()
}

// Run drains the event queue in (time, insertion-sequence) order, advancing
// CurrentTime monotonically. It returns when the queue is empty.
func (s *Scheduler) Run() {
	s.started = true
	for s.queue.Len() > 0 {
		e := heap.Pop(&s.queue).(*event)
		if e.time < s.currentTime {
			panic(simerrors.NewSimulationError("scheduler", fmt.Errorf("time went backwards: %v < %v", e.time, s.currentTime)))
		}
		s.currentTime = e.time
		e.thunk()
	}
	s.ended = true
	s.endTime = s.currentTime
}
