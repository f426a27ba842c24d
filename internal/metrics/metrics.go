// Package metrics exposes run-level Prometheus instruments for the
// simulator process. These observe the *process*, not the simulated
// network — the spec's Non-goals exclude an observability layer from the
// simulated fabric itself, not from the ambient process running it.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Registry bundles every run-level Prometheus collector the simulator
// fills in once at run end (see CollectFromNetwork).
type Registry struct {
	PacketsCreated   prometheus.Counter
	PacketsDelivered prometheus.Counter
	PacketsDropped   *prometheus.CounterVec
	PortQueueLength  *prometheus.GaugeVec
	LinkUtilization  *prometheus.GaugeVec
}

// NewRegistry constructs and registers a fresh set of collectors against
// reg. cmd/fabricsim and the tests each pass a fresh
// prometheus.NewRegistry().
func NewRegistry(reg prometheus.Registerer) *Registry {
	r := &Registry{
		PacketsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fabricsim", Name: "packets_created_total",
			Help: "Total packets originated by hosts.",
		}),
		PacketsDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fabricsim", Name: "packets_delivered_total",
			Help: "Total packets delivered to a destination host.",
		}),
		PacketsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fabricsim", Name: "packets_dropped_total",
			Help: "Total packets dropped, by reason.",
		}, []string{"reason"}),
		PortQueueLength: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "fabricsim", Name: "port_queue_length",
			Help: "Peak egress queue length per port over the run.",
		}, []string{"node_id", "port_id"}),
		LinkUtilization: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "fabricsim", Name: "link_utilization_percent",
			Help: "Percentage of run time a link spent transmitting.",
		}, []string{"link_name"}),
	}

	reg.MustRegister(r.PacketsCreated, r.PacketsDelivered, r.PacketsDropped, r.PortQueueLength, r.LinkUtilization)
	return r
}
