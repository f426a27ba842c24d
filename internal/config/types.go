package config

// RoutingMode is the normalized equal-cost selection policy.
type RoutingMode string

const (
	// RoutingModeStaticHash picks the next hop by a stable hash of the five-tuple.
	RoutingModeStaticHash RoutingMode = "static_hash"
	// RoutingModeAdaptive picks the next hop with the shortest egress queue.
	RoutingModeAdaptive RoutingMode = "adaptive"
)

// NormalizeRoutingMode maps the user-facing spelling ("ecmp"/"hash",
// "adaptive"/"adapt", case-insensitive) onto the canonical RoutingMode.
// Unknown input is returned unchanged so validation can reject it.
func NormalizeRoutingMode(mode string) RoutingMode {
	switch lower(mode) {
	case "ecmp", "hash", "static_hash":
		return RoutingModeStaticHash
	case "adaptive", "adapt":
		return RoutingModeAdaptive
	default:
		return RoutingMode(lower(mode))
	}
}

func lower(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

// Config is the full recognized configuration document (spec §6).
type Config struct {
	Run      RunConfig      `yaml:"run"`
	Topology TopologyConfig `yaml:"topology" validate:"required"`
	Scenario ScenarioConfig `yaml:"scenario" validate:"required"`
}

// RunConfig controls process-level behavior, not simulated network behavior.
type RunConfig struct {
	FileDebug      bool `yaml:"file_debug,omitempty"`
	MessageVerbose bool `yaml:"message_verbose,omitempty"`
	VerboseRoute   bool `yaml:"verbose_route,omitempty"`
	Visualize      bool `yaml:"visualize,omitempty"`
}

// TopologyConfig describes the fabric to construct and how to route over it.
type TopologyConfig struct {
	Type        string          `yaml:"type" validate:"required,eq=ai-factory-su"`
	MaxPath     int             `yaml:"max_path" validate:"required,min=1"`
	MTU         int             `yaml:"mtu" validate:"required,min=64"`
	TTL         int             `yaml:"ttl" validate:"required,min=1,max=255"`
	Routing     RoutingConfig   `yaml:"routing"`
	Links       LinksConfig     `yaml:"links"`
	AIFactorySU AIFactorySUSpec `yaml:"ai_factory_su" validate:"required"`
}

// RoutingConfig controls equal-cost path selection.
type RoutingConfig struct {
	Mode                  string `yaml:"mode" validate:"required,routing_mode"`
	ECMPFlowletNPackets   int    `yaml:"ecmp_flowlet_n_packets" validate:"omitempty,min=0"`
}

// LinksConfig describes failure injection and per-tier bandwidths.
type LinksConfig struct {
	FailurePercent float64          `yaml:"failure_percent" validate:"omitempty,min=0,max=100"`
	BandwidthBps   BandwidthBpsSpec `yaml:"bandwidth_bps"`
}

// BandwidthBpsSpec carries the two link-tier bandwidths in bits/sec.
type BandwidthBpsSpec struct {
	ServerToLeaf float64 `yaml:"server_to_leaf" validate:"required,gt=0"`
	LeafToSpine  float64 `yaml:"leaf_to_spine" validate:"required,gt=0"`
}

// AIFactorySUSpec sizes the leaf/spine scalable-unit topology.
type AIFactorySUSpec struct {
	Leaves                 int `yaml:"leaves" validate:"required,min=1"`
	Spines                 int `yaml:"spines" validate:"required,min=1"`
	ServersPerLeaf          int `yaml:"servers_per_leaf" validate:"required,min=1"`
	ServerParallelLinks     int `yaml:"server_parallel_links" validate:"required,min=1"`
	LeafToSpineParallelLinks int `yaml:"leaf_to_spine_parallel_links" validate:"required,min=1"`
}

// ScenarioConfig selects and parameterizes the workload to run.
type ScenarioConfig struct {
	Name   string         `yaml:"name" validate:"required,scenario_name"`
	Params ScenarioParams `yaml:"params"`
}

// ScenarioParams carries the union of fields used by the two supported
// scenarios; unused fields for a given scenario are simply left zero.
type ScenarioParams struct {
	Steps                int         `yaml:"steps" validate:"omitempty,min=1"`
	Seed                 int64       `yaml:"seed"`
	BytesPerParticipant  int64       `yaml:"bytes_per_participant" validate:"omitempty,min=1"`
	ComputeDurationSec   float64     `yaml:"compute_duration_sec" validate:"omitempty,min=0"`
	BucketsPerStep       int         `yaml:"buckets_per_step" validate:"omitempty,min=1"`
	InterStepGapSec      float64     `yaml:"inter_step_gap_sec" validate:"omitempty,min=0"`
	AllocationMode       string      `yaml:"allocation_mode,omitempty" validate:"omitempty,oneof=rack_balanced sequential"`
	PipelineStages       int         `yaml:"pipeline_stages" validate:"omitempty,min=1"`
	MicroBatches         int         `yaml:"micro_batches" validate:"omitempty,min=1"`
	Mice                 *MiceConfig `yaml:"mice,omitempty"`
}

// MiceConfig configures the background small-flow generator (spec §4.10).
type MiceConfig struct {
	Enabled        bool    `yaml:"enabled"`
	Seed           int64   `yaml:"seed"`
	StartDelaySec  float64 `yaml:"start_delay_sec" validate:"omitempty,min=0"`
	EndTimeSec     float64 `yaml:"end_time_sec" validate:"omitempty,min=0"`
	InterArrivalSec float64 `yaml:"inter_arrival_sec" validate:"omitempty,gt=0"`
	MinPackets     int     `yaml:"min_packets" validate:"omitempty,min=1"`
	MaxPackets     int     `yaml:"max_packets" validate:"omitempty,min=1"`
	MTU            int     `yaml:"mtu" validate:"omitempty,min=64"`
	ForceCrossRack bool    `yaml:"force_cross_rack"`
}
