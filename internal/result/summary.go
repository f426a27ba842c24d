// Package result aggregates a finished run's topology, configuration, and
// statistics into the structure spec'd out for the end-of-run report
// (counts, percentages, hop/link/queue extrema, per-job step timing, and
// the mice tail-latency summary), plus the packet timeline sampled for the
// visualization layer.
package result

import (
	"sort"

	"github.com/alonzeltser/fabricsim/internal/config"
	"github.com/alonzeltser/fabricsim/internal/fabric"
	"github.com/alonzeltser/fabricsim/internal/metrics"
	"github.com/alonzeltser/fabricsim/internal/topology"
	"github.com/alonzeltser/fabricsim/internal/workload"
)

// TopologySummary reports the constructed fabric's shape and failure draw.
type TopologySummary struct {
	HostCount        int
	SwitchCount      int
	LinkCount        int
	FailedLinkCount  int
	AffectedSwitches int
}

// ParametersSummary echoes the run's effective configuration.
type ParametersSummary struct {
	RoutingMode    string
	FailurePercent float64
	FlowletN       int
	MTU            int
	TTL            int
	ScenarioName   string
}

// LinkStats reports one link's transmitted-byte extrema and utilization.
type LinkStats struct {
	Name               string
	BytesTransmitted   int64
	UtilizationPercent float64
}

// LinkSummary rolls up min/avg/max across every link's byte count and
// utilization.
type LinkSummary struct {
	MinBytes, AvgBytes, MaxBytes           int64
	MinUtilization, AvgUtilization, MaxUtilization float64
	Links                                  []LinkStats
}

// StepTimeSummary is the avg/p95/p99 step duration (ms) for one job.
type StepTimeSummary struct {
	AvgMs, P95Ms, P99Ms float64
}

// RunStats is the body of the spec's "run statistics" section.
type RunStats struct {
	TotalPackets      int
	DeliveredCount    int
	DeliveredPercent  float64
	DroppedCount      int
	DroppedPercent    float64
	MinHops, MaxHops  int
	AvgHops           float64
	Links             LinkSummary
	PeakQueueGlobal   int
	PeakQueueAvg      float64
	JobStepTimes      map[string]StepTimeSummary
	Mice              *workload.MiceStats
}

// Summary is the full end-of-run report.
type Summary struct {
	Topology       TopologySummary
	Parameters     ParametersSummary
	Stats          RunStats
	PacketTimeline []metrics.TimelineSample
}

// Build assembles a Summary from a finished run's network, topology plan,
// configuration, and per-job metrics. jobMetrics is keyed by the job id
// used when scheduling (aliases, if any, are the caller's concern via
// scenario.WithAliases). mice may be nil when the scenario had no mice
// generator configured.
func Build(net *fabric.Network, plan *topology.Plan, cfg config.Config, jobMetrics map[string]workload.JobMetrics, mice *workload.MiceStats, timeline []metrics.TimelineSample) Summary {
	topo := TopologySummary{
		HostCount:        len(plan.HostIDs),
		SwitchCount:      len(plan.LeafIDs) + len(plan.SpineIDs),
		LinkCount:        len(net.Links()),
		FailedLinkCount:  plan.FailedLinkCount,
		AffectedSwitches: plan.AffectedSwitches,
	}

	params := ParametersSummary{
		RoutingMode:    string(config.NormalizeRoutingMode(cfg.Topology.Routing.Mode)),
		FailurePercent: cfg.Topology.Links.FailurePercent,
		FlowletN:       cfg.Topology.Routing.ECMPFlowletNPackets,
		MTU:            cfg.Topology.MTU,
		TTL:            cfg.Topology.TTL,
		ScenarioName:   cfg.Scenario.Name,
	}

	stats := buildRunStats(net, jobMetrics, mice)

	return Summary{
		Topology:       topo,
		Parameters:     params,
		Stats:          stats,
		PacketTimeline: timeline,
	}
}

func buildRunStats(net *fabric.Network, jobMetrics map[string]workload.JobMetrics, mice *workload.MiceStats) RunStats {
	var created, delivered, dropped int
	var hopsMin, hopsMax int
	var hopsSum int64
	var hopsCount int
	var peakGlobal int
	var peakSum, peakN int

	for _, host := range net.Hosts() {
		created += host.CreatedCount()
		delivered += host.ReceivedCount()
		for _, reason := range dropReasons {
			dropped += host.DropCount(reason)
		}

		min, max, sum, count := host.HopStats()
		if count > 0 {
			if hopsCount == 0 || min < hopsMin {
				hopsMin = min
			}
			if max > hopsMax {
				hopsMax = max
			}
			hopsSum += sum
			hopsCount += count
		}

		for _, port := range host.Ports {
			peak := port.PeakQueueLen()
			if peak > peakGlobal {
				peakGlobal = peak
			}
			peakSum += peak
			peakN++
		}
	}

	for _, sw := range net.Switches() {
		for _, reason := range dropReasons {
			dropped += sw.DropCount(reason)
		}
		for _, port := range sw.Ports {
			peak := port.PeakQueueLen()
			if peak > peakGlobal {
				peakGlobal = peak
			}
			peakSum += peak
			peakN++
		}
	}

	endTime := net.Scheduler.CurrentTime()
	links := buildLinkSummary(net, endTime)

	avgHops := 0.0
	if hopsCount > 0 {
		avgHops = float64(hopsSum) / float64(hopsCount)
	}

	peakAvg := 0.0
	if peakN > 0 {
		peakAvg = float64(peakSum) / float64(peakN)
	}

	total := created
	deliveredPct, droppedPct := 0.0, 0.0
	if total > 0 {
		deliveredPct = float64(delivered) / float64(total) * 100
		droppedPct = float64(dropped) / float64(total) * 100
	}

	jobStepTimes := make(map[string]StepTimeSummary, len(jobMetrics))
	for jobID, jm := range jobMetrics {
		jobStepTimes[jobID] = stepTimeSummary(jm)
	}

	return RunStats{
		TotalPackets:     total,
		DeliveredCount:   delivered,
		DeliveredPercent: deliveredPct,
		DroppedCount:     dropped,
		DroppedPercent:   droppedPct,
		MinHops:          hopsMin,
		MaxHops:          hopsMax,
		AvgHops:          avgHops,
		Links:            links,
		PeakQueueGlobal:  peakGlobal,
		PeakQueueAvg:     peakAvg,
		JobStepTimes:     jobStepTimes,
		Mice:             mice,
	}
}

var dropReasons = []fabric.DropReason{
	fabric.DropReasonNoRoute,
	fabric.DropReasonTTLExpired,
	fabric.DropReasonLinkFailure,
}

func buildLinkSummary(net *fabric.Network, endTime float64) LinkSummary {
	links := net.Links()
	if len(links) == 0 {
		return LinkSummary{}
	}

	stats := make([]LinkStats, 0, len(links))
	for _, link := range links {
		utilization := 0.0
		if endTime > 0 {
			utilization = link.TransmittingSeconds() / endTime * 100
		}
		stats = append(stats, LinkStats{
			Name:               link.Name,
			BytesTransmitted:   link.BytesTransmitted(),
			UtilizationPercent: utilization,
		})
	}

	summary := LinkSummary{
		MinBytes: stats[0].BytesTransmitted, MaxBytes: stats[0].BytesTransmitted,
		MinUtilization: stats[0].UtilizationPercent, MaxUtilization: stats[0].UtilizationPercent,
		Links: stats,
	}

	var byteSum int64
	var utilSum float64
	for _, s := range stats {
		if s.BytesTransmitted < summary.MinBytes {
			summary.MinBytes = s.BytesTransmitted
		}
		if s.BytesTransmitted > summary.MaxBytes {
			summary.MaxBytes = s.BytesTransmitted
		}
		if s.UtilizationPercent < summary.MinUtilization {
			summary.MinUtilization = s.UtilizationPercent
		}
		if s.UtilizationPercent > summary.MaxUtilization {
			summary.MaxUtilization = s.UtilizationPercent
		}
		byteSum += s.BytesTransmitted
		utilSum += s.UtilizationPercent
	}
	summary.AvgBytes = byteSum / int64(len(stats))
	summary.AvgUtilization = utilSum / float64(len(stats))

	return summary
}

// stepTimeSummary computes avg/p95/p99 step duration in milliseconds
// across every step of a job.
func stepTimeSummary(jm workload.JobMetrics) StepTimeSummary {
	if len(jm.Steps) == 0 {
		return StepTimeSummary{}
	}

	durations := make([]float64, 0, len(jm.Steps))
	for _, step := range jm.Steps {
		durations = append(durations, (step.EndTime-step.StartTime)*1000)
	}
	sort.Float64s(durations)

	sum := 0.0
	for _, d := range durations {
		sum += d
	}

	return StepTimeSummary{
		AvgMs: sum / float64(len(durations)),
		P95Ms: percentile(durations, 0.95),
		P99Ms: percentile(durations, 0.99),
	}
}

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
