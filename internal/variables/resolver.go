package variables

import (
	"sort"
	"strconv"

	"github.com/deploymenttheory/go-journey-composer/internal/journey"
	"github.com/deploymenttheory/go-journey-composer/internal/logger"
)

// Provenance classifies where a resolved variable's value originated.
type Provenance string

const (
	ProvenanceDataAttribute Provenance = "DATA_ATTRIBUTE"
	ProvenanceEnvironment   Provenance = "ENVIRONMENT"
	ProvenanceUnresolved    Provenance = "UNRESOLVED"
)

// Source labels reported alongside provenance.
const (
	SourceDataAttributes = "dataAttributeValues"
	SourceEnvironment    = "Environment variable"
	SourceNotFound       = "Not found"
)

// Resolution is one variable's lookup outcome before usage merging.
type Resolution struct {
	Name       string
	Value      string
	Provenance Provenance
	Source     string
	// Ambiguous marks a name matched by more than one environment entry.
	// First match wins; the flag keeps the collision observable.
	Ambiguous bool
}

type lookupFunc func(name string) (Resolution, bool)

// valueSource is one strategy in the resolver chain.
type valueSource struct {
	label  string
	lookup lookupFunc
}

// orderedSources builds the resolver strategy chain. Slice order encodes
// precedence: the data-attribute table always wins over environments.
func orderedSources(attrs map[string]string, envs []journey.Environment) []valueSource {
	return []valueSource{
		{label: SourceDataAttributes, lookup: attributeLookup(attrs)},
		{label: SourceEnvironment, lookup: environmentLookup(envs)},
	}
}

// ResolveReferences resolves every referenced name against the source chain.
// It reads its inputs only; running it twice on identical inputs yields
// identical results.
func ResolveReferences(names []string, attrs map[string]string, envs []journey.Environment) map[string]Resolution {
	sources := orderedSources(attrs, envs)
	resolved := make(map[string]Resolution, len(names))
	for _, name := range names {
		resolved[name] = resolveOne(name, sources)
	}
	return resolved
}

func resolveOne(name string, sources []valueSource) Resolution {
	for _, src := range sources {
		if res, ok := src.lookup(name); ok {
			return res
		}
	}
	return Resolution{Name: name, Provenance: ProvenanceUnresolved, Source: SourceNotFound}
}

// attributeLookup resolves against the flat data-attribute table, whose keys
// are variable names directly.
func attributeLookup(attrs map[string]string) lookupFunc {
	return func(name string) (Resolution, bool) {
		value, ok := attrs[name]
		if !ok {
			return Resolution{}, false
		}
		return Resolution{
			Name:       name,
			Value:      value,
			Provenance: ProvenanceDataAttribute,
			Source:     SourceDataAttributes,
		}, true
	}
}

// environmentLookup scans every environment's variable map and compares each
// entry's inner name field against the target. The map keys are opaque
// numeric ids and must never be used for the lookup. Keys are visited in
// sorted order so the first match is deterministic despite map iteration.
func environmentLookup(envs []journey.Environment) lookupFunc {
	return func(name string) (Resolution, bool) {
		var found *Resolution
		matches := 0
		for _, env := range envs {
			for _, key := range sortedVariableKeys(env.Variables) {
				entry := env.Variables[key]
				if entry.Name != name {
					continue
				}
				matches++
				if found == nil {
					found = &Resolution{
						Name:       name,
						Value:      entry.Value,
						Provenance: ProvenanceEnvironment,
						Source:     SourceEnvironment,
					}
				}
			}
		}
		if found == nil {
			return Resolution{}, false
		}
		if matches > 1 {
			found.Ambiguous = true
			logger.LogWarn("Variable name matches multiple environment entries; first match wins",
				map[string]interface{}{
					"variable": name,
					"matches":  matches,
				})
		}
		return *found, true
	}
}

// sortedVariableKeys orders id keys numerically when possible so scans are
// stable across runs.
func sortedVariableKeys(m map[string]journey.EnvironmentVariable) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, aerr := strconv.Atoi(keys[i])
		b, berr := strconv.Atoi(keys[j])
		if aerr == nil && berr == nil {
			return a < b
		}
		return keys[i] < keys[j]
	})
	return keys
}
