package metrics

import (
	"strconv"

	"github.com/alonzeltser/fabricsim/internal/fabric"
)

// CollectFromNetwork snapshots the final state of a finished run into the
// registry: per-reason drop counts, delivered/created totals, peak port
// queue lengths, and per-link utilization. The core never updates
// Prometheus instruments mid-run — single-threaded determinism shouldn't
// pay for histogram bookkeeping on every packet — so this runs once, at
// run end.
var dropReasons = []fabric.DropReason{
	fabric.DropReasonNoRoute,
	fabric.DropReasonTTLExpired,
	fabric.DropReasonLinkFailure,
}

func CollectFromNetwork(r *Registry, net *fabric.Network, endTime float64) {
	var delivered, created int

	for _, host := range net.Hosts() {
		delivered += host.ReceivedCount()
		created += host.CreatedCount()
		for _, reason := range dropReasons {
			if count := host.DropCount(reason); count > 0 {
				r.PacketsDropped.WithLabelValues(string(reason)).Add(float64(count))
			}
		}
		for _, port := range host.Ports {
			r.PortQueueLength.WithLabelValues(host.ID, strconv.Itoa(port.ID)).Set(float64(port.PeakQueueLen()))
		}
	}

	for _, sw := range net.Switches() {
		for _, reason := range dropReasons {
			if count := sw.DropCount(reason); count > 0 {
				r.PacketsDropped.WithLabelValues(string(reason)).Add(float64(count))
			}
		}
		for _, port := range sw.Ports {
			r.PortQueueLength.WithLabelValues(sw.ID, strconv.Itoa(port.ID)).Set(float64(port.PeakQueueLen()))
		}
	}

	for _, link := range net.Links() {
		if endTime <= 0 {
			continue
		}
		utilization := link.TransmittingSeconds() / endTime * 100
		r.LinkUtilization.WithLabelValues(link.Name).Set(utilization)
	}

	r.PacketsCreated.Add(float64(created))
	r.PacketsDelivered.Add(float64(delivered))
}
