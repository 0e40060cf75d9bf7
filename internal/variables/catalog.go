// Package variables resolves every variable referenced by a journey to a
// concrete value, a provenance classification and its usage occurrences.
package variables

import (
	"fmt"
	"strings"

	errs "github.com/deploymenttheory/go-journey-composer/internal/common/errors"
	"github.com/deploymenttheory/go-journey-composer/internal/journey"
)

// Record is one catalog entry for a referenced variable.
type Record struct {
	Name       string     `json:"name"`
	Value      string     `json:"value"`
	Provenance Provenance `json:"provenance"`
	Source     string     `json:"source"`
	Ambiguous  bool       `json:"ambiguous,omitempty"`
	Usage      []Usage    `json:"usage"`
}

// Options tunes catalog assembly.
type Options struct {
	// IncludeUnresolved keeps records whose value is empty or missing
	// instead of silently dropping them. Default is the drop behavior.
	IncludeUnresolved bool
}

// Resolve is the variable engine's entry operation: scan references, resolve
// each against the ordered sources, merge in usage and assemble the catalog.
// The journey and both tables are only read, never mutated.
func Resolve(j *journey.Journey, attrs map[string]string, envs []journey.Environment, opts Options) ([]Record, error) {
	if j == nil || len(j.Checkpoints) == 0 {
		return nil, fmt.Errorf("%w: nothing to resolve", errs.ErrInvalidJourney)
	}

	names := ScanReferences(j)
	resolutions := ResolveReferences(names, attrs, envs)
	usage := CollectUsage(j)
	return assembleCatalog(names, resolutions, usage, opts), nil
}

// assembleCatalog merges resolutions and usage in first-seen name order.
// This is the only place a variable may be dropped from the result: records
// need a non-blank value (unless IncludeUnresolved) and at least one usage.
func assembleCatalog(names []string, resolutions map[string]Resolution, usage map[string][]Usage, opts Options) []Record {
	records := make([]Record, 0, len(names))
	for _, name := range names {
		uses := usage[name]
		if len(uses) == 0 {
			continue
		}

		res := resolutions[name]
		if strings.TrimSpace(res.Value) == "" && !opts.IncludeUnresolved {
			continue
		}

		records = append(records, Record{
			Name:       name,
			Value:      res.Value,
			Provenance: res.Provenance,
			Source:     res.Source,
			Ambiguous:  res.Ambiguous,
			Usage:      uses,
		})
	}
	return records
}
