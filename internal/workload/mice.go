package workload

import (
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"github.com/alonzeltser/fabricsim/internal/simclock"
)

// MiceConfig configures the background low-rate, small-size flow
// generator used to measure tail latency of short flows under a running
// main workload.
type MiceConfig struct {
	Enabled        bool
	Seed           int64
	StartDelay     float64
	EndTime        float64
	InterArrival   float64
	MinPackets     int
	MaxPackets     int
	MTU            int
	ForceCrossRack bool
}

// RackKeyFunc derives a host's rack key from its id, used to enforce
// ForceCrossRack rejection sampling.
type RackKeyFunc func(hostID string) string

// MiceInjector is the background flow generator. It shares the main
// workload's FlowInjector so completion detection follows the same path.
type MiceInjector struct {
	cfg       MiceConfig
	hostIDs   []string
	rackKeyOf RackKeyFunc
	sched     *simclock.Scheduler
	injector  *FlowInjector
	rng       *rand.Rand

	completionTimesMs []float64
}

// NewMiceInjector constructs a mice injector over the given host id pool.
func NewMiceInjector(cfg MiceConfig, hostIDs []string, rackKeyOf RackKeyFunc, sched *simclock.Scheduler, injector *FlowInjector) *MiceInjector {
	return &MiceInjector{
		cfg:       cfg,
		hostIDs:   hostIDs,
		rackKeyOf: rackKeyOf,
		sched:     sched,
		injector:  injector,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Start schedules the first mice flow at cfg.StartDelay. A no-op if the
// generator is disabled.
func (m *MiceInjector) Start() {
	if !m.cfg.Enabled || len(m.hostIDs) < 2 {
		return
	}
	m.sched.Schedule(m.cfg.StartDelay, m.fire)
}

func (m *MiceInjector) fire() {
	now := m.sched.CurrentTime()
	if now >= m.cfg.EndTime {
		return
	}

	src, dst := m.pickPair()
	packets := m.cfg.MinPackets
	if m.cfg.MaxPackets > m.cfg.MinPackets {
		packets += m.rng.Intn(m.cfg.MaxPackets - m.cfg.MinPackets + 1)
	}
	sizeBytes := packets * m.cfg.MTU

	flow := Flow{
		FlowID:        uuid.NewString(),
		Tag:           "mice",
		SrcNodeID:     src,
		DstNodeID:     dst,
		SizeBytes:     sizeBytes,
		EarliestStart: now,
	}

	birth := now
	m.injector.Inject(flow, func() {
		fct := (m.sched.CurrentTime() - birth) * 1000
		m.completionTimesMs = append(m.completionTimesMs, fct)
	})

	if now+m.cfg.InterArrival < m.cfg.EndTime {
		m.sched.Schedule(m.cfg.InterArrival, m.fire)
	}
}

func (m *MiceInjector) pickPair() (src, dst string) {
	src = m.hostIDs[m.rng.Intn(len(m.hostIDs))]
	for attempts := 0; attempts < 1000; attempts++ {
		dst = m.hostIDs[m.rng.Intn(len(m.hostIDs))]
		if dst == src {
			continue
		}
		if !m.cfg.ForceCrossRack || m.rackKeyOf == nil {
			return src, dst
		}
		if m.rackKeyOf(src) != m.rackKeyOf(dst) {
			return src, dst
		}
	}
	return src, dst
}

// MiceStats summarizes flow-completion-time statistics across every
// completed mice flow.
type MiceStats struct {
	FlowCount int
	AvgMs     float64
	P95Ms     float64
	P99Ms     float64
}

// Stats computes the avg/p95/p99 completion-time summary over every mice
// flow that has completed so far.
func (m *MiceInjector) Stats() MiceStats {
	n := len(m.completionTimesMs)
	if n == 0 {
		return MiceStats{}
	}

	sorted := make([]float64, n)
	copy(sorted, m.completionTimesMs)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}

	return MiceStats{
		FlowCount: n,
		AvgMs:     sum / float64(n),
		P95Ms:     percentile(sorted, 0.95),
		P99Ms:     percentile(sorted, 0.99),
	}
}

// percentile expects sorted ascending input.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
