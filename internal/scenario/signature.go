package scenario

import (
	"crypto/sha1"
	"fmt"
	"sort"

	"github.com/alonzeltser/fabricsim/internal/workload"
)

// FirstStepSignature computes the determinism fingerprint for a job: a
// sorted SHA-1 digest of (src, dst, size, start, tag, job_id) tuples
// across every flow in the job's first step. Two runs with identical
// configuration and seeds must produce a bit-identical signature.
func FirstStepSignature(job workload.Job) string {
	if len(job.Steps) == 0 {
		return ""
	}

	lines := make([]string, 0, 64)
	for _, phase := range job.Steps[0].Phases {
		for _, bucket := range phase.Buckets {
			for _, f := range bucket.Flows {
				lines = append(lines, fmt.Sprintf("%s|%s|%d|%.9f|%s|%s",
					f.SrcNodeID, f.DstNodeID, f.SizeBytes, f.EarliestStart, f.Tag, f.JobID))
			}
		}
	}
	sort.Strings(lines)

	h := sha1.New()
	for _, l := range lines {
		_, _ = h.Write([]byte(l))
		_, _ = h.Write([]byte{'\n'})
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
