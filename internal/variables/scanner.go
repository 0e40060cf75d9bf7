package variables

import (
	"github.com/deploymenttheory/go-journey-composer/internal/journey"
)

// ScanReferences walks the canonical step sequence once and returns the
// distinct variable names referenced by any step, in first-seen order. Only
// the explicit variable field counts as a reference; selector clues are not
// scanned for variable syntax.
func ScanReferences(j *journey.Journey) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, cp := range j.Checkpoints {
		for _, step := range cp.Steps {
			if step.Variable == "" {
				continue
			}
			if _, ok := seen[step.Variable]; ok {
				continue
			}
			seen[step.Variable] = struct{}{}
			names = append(names, step.Variable)
		}
	}
	return names
}
