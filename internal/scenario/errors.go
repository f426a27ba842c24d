package scenario

import (
	"fmt"

	simerrors "github.com/alonzeltser/fabricsim/pkg/errors"
)

// ErrNonUniformRacks is returned when allocation_mode=rack_balanced is
// requested but the participant racks are not all the same size. The
// original implementation's fallback path for this case was
// underspecified; this implementation treats it as a defined
// configuration error rather than guessing intent.
var ErrNonUniformRacks = simerrors.NewValidationError(
	"scenario.params.allocation_mode",
	"rack_balanced requires every participant rack to contribute the same number of hosts",
	nil,
)

// newPipelineStageError reports that the mixed scenario's participants
// cannot be split into equal pipeline stages whose host count is a
// multiple of 4.
func newPipelineStageError(hostCount int) error {
	return simerrors.NewTopologyError("mixed-scenario-pipeline-split",
		fmt.Sprintf("participant count %d cannot be split into equal pipeline stages of a multiple of 4 hosts", hostCount), nil)
}
