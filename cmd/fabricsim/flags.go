package main

import "github.com/spf13/pflag"

// rootFlags carries the persistent CLI flags shared by every subcommand.
type rootFlags struct {
	verbose    bool
	trace      bool
	seedOverride int64
	steps      []int
}

func registerPersistentFlags(flags *pflag.FlagSet, f *rootFlags) {
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "log at debug level instead of info")
	flags.BoolVar(&f.trace, "trace", false, "buffer log lines in memory (the most recent 1000) and write them to stderr at run end, instead of streaming")
	flags.Int64Var(&f.seedOverride, "seed", 0, "override every configured seed (0 keeps the config's own seeds)")
	flags.IntSliceVar(&f.steps, "jobs", nil, "restrict the run to these step indices of the configured scenario (default: all)")
}

// filterSteps returns the requested step indices that fall within
// [0, total), or every index in [0, total) when none were requested.
func filterSteps(total int, indices []int) []int {
	if len(indices) == 0 {
		out := make([]int, total)
		for i := range out {
			out[i] = i
		}
		return out
	}

	out := make([]int, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < total {
			out = append(out, i)
		}
	}
	return out
}
