package main

import (
	"fmt"

	cblog "github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/alonzeltser/fabricsim/internal/config"
	logginginfra "github.com/alonzeltser/fabricsim/internal/infrastructure/logging"
	"github.com/alonzeltser/fabricsim/internal/logger"
	"github.com/alonzeltser/fabricsim/internal/metrics"
	"github.com/alonzeltser/fabricsim/internal/result"
	"github.com/alonzeltser/fabricsim/internal/scenario"
	"github.com/alonzeltser/fabricsim/internal/topology"
	"github.com/alonzeltser/fabricsim/internal/workload"
)

const (
	dpHeavyScenarioName = "ai-factory-su-workload1-dp-heavy"
	mixedScenarioName   = "ai-factory-su-mixed_scenario"

	packetTimelineStride   = 50
	packetTimelineCapacity = 4096
)

func newRunCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run <config.yaml>",
		Short: "build the configured fabric and scenario, run it to completion, and print the result summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd, args[0], flags)
		},
	}
}

func runSimulation(cmd *cobra.Command, configPath string, flags *rootFlags) error {
	cfg, err := config.ParseConfig(configPath)
	if err != nil {
		return err
	}

	log, buffer, err := buildLogger(flags)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	if buffer != nil {
		defer func() {
			level := "info"
			if flags.verbose {
				level = "debug"
			}
			delegate, err := logginginfra.New(logginginfra.Options{
				Writer: cmd.ErrOrStderr(), Level: level, Formatter: cblog.JSONFormatter,
				Layer: "core", Component: "fabricsim",
			})
			if err == nil {
				buffer.Flush(delegate)
			}
		}()
	}

	failureSeed := int64(1)
	if flags.seedOverride != 0 {
		failureSeed = flags.seedOverride
	}

	net, plan, err := topology.BuildAIFactorySU(cfg.Topology, topology.Options{
		Pod:          0,
		RoutingMode:  topology.ToFabricRoutingMode(config.NormalizeRoutingMode(cfg.Topology.Routing.Mode)),
		FailureSeed:  failureSeed,
		Log:          log,
		VerboseRoute: cfg.Run.VerboseRoute,
	})
	if err != nil {
		return err
	}

	injector := workload.NewFlowInjector(net)
	injector.RegisterOnAllHosts()

	timeline := metrics.NewTimeline(packetTimelineStride, packetTimelineCapacity)
	for _, host := range net.Hosts() {
		host.SetPacketObserver(timeline)
	}

	job, err := buildScenarioJob(cfg.Scenario, plan.HostIDs, flags)
	if err != nil {
		return err
	}

	jobMetrics := make(map[string]workload.JobMetrics)
	runner := workload.NewJobRunner(job, net.Scheduler, injector, log, func(m workload.JobMetrics) {
		jobMetrics[m.JobID] = m
	})
	runner.Start()

	var miceInjector *workload.MiceInjector
	if mc := cfg.Scenario.Params.Mice; mc != nil && mc.Enabled {
		miceCfg := toMiceConfig(*mc, flags)
		miceInjector = workload.NewMiceInjector(miceCfg, plan.HostIDs, topology.RackKey, net.Scheduler, injector)
		miceInjector.Start()
	}

	net.Run()

	registry := metrics.NewRegistry(prometheus.NewRegistry())
	metrics.CollectFromNetwork(registry, net, net.Scheduler.CurrentTime())

	var miceStats *workload.MiceStats
	if miceInjector != nil {
		stats := miceInjector.Stats()
		miceStats = &stats
	}

	summary := result.Build(net, plan, *cfg, scenario.WithAliases(jobMetrics), miceStats, timeline.Samples())

	out, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal result summary: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}

func buildLogger(flags *rootFlags) (*logger.Logger, *logginginfra.EventBuffer, error) {
	level := "info"
	if flags.verbose {
		level = "debug"
	}

	if !flags.trace {
		log, err := logger.New(logger.Options{Level: level, Layer: "core", Component: "fabricsim"})
		return log, nil, err
	}

	// --trace buffers every log line in memory instead of streaming, per
	// the bounded-memory full-trace mode: a verbose run's log volume is
	// proportional to packet count, so it is held and flushed once to
	// stderr at run end rather than interleaved with the result summary.
	buffer := logginginfra.NewEventBuffer(0)
	bufferedBase := logginginfra.NewBufferedLogger(buffer)
	log := logger.WrapBase(bufferedBase)
	return log, buffer, nil
}

func toMiceConfig(mc config.MiceConfig, flags *rootFlags) workload.MiceConfig {
	seed := mc.Seed
	if flags.seedOverride != 0 {
		seed = flags.seedOverride
	}
	return workload.MiceConfig{
		Enabled:        mc.Enabled,
		Seed:           seed,
		StartDelay:     mc.StartDelaySec,
		EndTime:        mc.EndTimeSec,
		InterArrival:   mc.InterArrivalSec,
		MinPackets:     mc.MinPackets,
		MaxPackets:     mc.MaxPackets,
		MTU:            mc.MTU,
		ForceCrossRack: mc.ForceCrossRack,
	}
}

func buildScenarioJob(sc config.ScenarioConfig, participants []string, flags *rootFlags) (workload.Job, error) {
	params := sc.Params
	if flags.seedOverride != 0 {
		params.Seed = flags.seedOverride
	}

	var job workload.Job
	switch sc.Name {
	case dpHeavyScenarioName:
		job = scenario.BuildDPHeavy(params, participants)
	case mixedScenarioName:
		var err error
		job, err = scenario.BuildMixedScenario(params, participants)
		if err != nil {
			return workload.Job{}, err
		}
	default:
		return workload.Job{}, fmt.Errorf("unsupported scenario %q", sc.Name)
	}

	job.Steps = selectSteps(job.Steps, filterSteps(len(job.Steps), flags.steps))
	return job, nil
}

func selectSteps(steps []workload.JobStep, indices []int) []workload.JobStep {
	out := make([]workload.JobStep, 0, len(indices))
	for _, i := range indices {
		out = append(out, steps[i])
	}
	return out
}
