package variables

import (
	"github.com/deploymenttheory/go-journey-composer/internal/journey"
)

// Usage is one place a variable is referenced.
type Usage struct {
	Checkpoint string `json:"checkpoint"`
	Action     string `json:"action"`
	Field      string `json:"field"`
}

// CollectUsage gathers, per variable, every step that references it in step
// order. Repeated use in the same checkpoint yields repeated occurrences;
// only the variable record itself is deduplicated, never its usage detail.
func CollectUsage(j *journey.Journey) map[string][]Usage {
	usage := make(map[string][]Usage)
	for _, cp := range j.Checkpoints {
		for _, step := range cp.Steps {
			if step.Variable == "" {
				continue
			}
			field := ""
			if step.Target != nil {
				field = step.Target.Label
			}
			usage[step.Variable] = append(usage[step.Variable], Usage{
				Checkpoint: cp.Title,
				Action:     string(step.Action),
				Field:      field,
			})
		}
	}
	return usage
}
