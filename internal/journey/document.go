package journey

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/thedevsaddam/gojsonq/v2"

	errs "github.com/deploymenttheory/go-journey-composer/internal/common/errors"
)

// rawCheckpoint mirrors the checkpoint shapes the extraction endpoints
// return. Title and Name are both probed because the testsuite endpoints
// use one and the execution endpoints the other.
type rawCheckpoint struct {
	ID               string                   `mapstructure:"id"`
	Title            string                   `mapstructure:"title"`
	Name             string                   `mapstructure:"name"`
	Position         string                   `mapstructure:"position"`
	CheckpointNumber string                   `mapstructure:"checkpointNumber"`
	Steps            []map[string]interface{} `mapstructure:"steps"`
}

// checkpointPaths is the priority order of payload shapes, matching the
// order the extraction tool structures whichever endpoint succeeded first:
// checkpoint data, bare step lists, testsuite cases, then the GraphQL
// fallback shape.
var checkpointPaths = []struct {
	path     string
	stepList bool
}{
	{path: "checkpoints"},
	{path: "item.checkpoints"},
	{path: "steps", stepList: true},
	{path: "item.cases"},
	{path: "cases"},
	{path: "data.execution.journey.checkpoints"},
}

// ParseJourney converts an already-fetched journey payload into a Journey.
// It accepts any of the shapes the extraction endpoints produce; a payload
// in none of them is the one hard failure of the conversion pipeline.
func ParseJourney(data []byte) (*Journey, error) {
	var top interface{}
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidJourney, err.Error())
	}

	doc := string(data)
	j := &Journey{
		ID:    probeString(doc, "id", "journeyId", "executionId"),
		Title: probeString(doc, "title", "name", "item.title", "item.name"),
	}

	// A bare array is already the checkpoint list.
	if list, ok := top.([]interface{}); ok {
		checkpoints, err := decodeCheckpoints(list)
		if err != nil {
			return nil, err
		}
		j.Checkpoints = checkpoints
		return j, nil
	}

	if _, ok := top.(map[string]interface{}); !ok {
		return nil, fmt.Errorf("%w: top-level value is %T", errs.ErrInvalidJourney, top)
	}

	for _, candidate := range checkpointPaths {
		found := gojsonq.New().FromString(doc).Find(candidate.path)
		list, ok := found.([]interface{})
		if !ok || len(list) == 0 {
			continue
		}

		if candidate.stepList {
			// A bare step list becomes a single synthetic checkpoint, the
			// same wrapping the extraction tool applies.
			steps := make([]Step, 0, len(list))
			for _, entry := range list {
				record, ok := entry.(map[string]interface{})
				if !ok {
					continue
				}
				steps = append(steps, NormalizeStep(record))
			}
			j.Checkpoints = []Checkpoint{{Title: "Execution Steps", Number: "1", Steps: steps}}
			return j, nil
		}

		checkpoints, err := decodeCheckpoints(list)
		if err != nil {
			return nil, err
		}
		j.Checkpoints = checkpoints
		return j, nil
	}

	return nil, fmt.Errorf("%w: no checkpoint or step data found", errs.ErrInvalidJourney)
}

func decodeCheckpoints(list []interface{}) ([]Checkpoint, error) {
	checkpoints := make([]Checkpoint, 0, len(list))
	for i, entry := range list {
		var raw rawCheckpoint
		if err := decodeWeak(entry, &raw); err != nil {
			return nil, fmt.Errorf("%w: checkpoint %d: %s", errs.ErrInvalidJourney, i, err.Error())
		}

		cp := Checkpoint{
			ID:    raw.ID,
			Title: firstNonEmpty(raw.Title, raw.Name),
			// Display numbers are verbatim source values; gaps are expected
			// and must survive.
			Number: firstNonEmpty(raw.Position, raw.CheckpointNumber, raw.ID),
			Steps:  make([]Step, 0, len(raw.Steps)),
		}
		for _, record := range raw.Steps {
			cp.Steps = append(cp.Steps, NormalizeStep(record))
		}
		checkpoints = append(checkpoints, cp)
	}
	if len(checkpoints) == 0 {
		return nil, fmt.Errorf("%w: empty checkpoint list", errs.ErrInvalidJourney)
	}
	return checkpoints, nil
}

// ParseEnvironments converts an already-fetched environments payload,
// preserving the id-keyed variable maps searched later by their inner name
// field.
func ParseEnvironments(data []byte) ([]Environment, error) {
	var top interface{}
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidEnvironments, err.Error())
	}

	list, ok := top.([]interface{})
	if !ok {
		doc := string(data)
		for _, path := range []string{"item.environments", "environments"} {
			if found, isList := gojsonq.New().FromString(doc).Find(path).([]interface{}); isList {
				list = found
				break
			}
		}
	}
	if list == nil {
		return nil, fmt.Errorf("%w: no environment list found", errs.ErrInvalidEnvironments)
	}

	envs := make([]Environment, 0, len(list))
	for i, entry := range list {
		var env Environment
		if err := decodeWeak(entry, &env); err != nil {
			return nil, fmt.Errorf("%w: environment %d: %s", errs.ErrInvalidEnvironments, i, err.Error())
		}
		envs = append(envs, env)
	}
	return envs, nil
}

// ParseDataAttributes converts an already-fetched data-attribute payload
// into the flat name-to-value table. Unlike environments, the keys here are
// variable names directly.
func ParseDataAttributes(data []byte) (map[string]string, error) {
	var top map[string]interface{}
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidAttributes, err.Error())
	}

	if wrapped, ok := top["item"].(map[string]interface{}); ok {
		top = wrapped
	}

	attrs := make(map[string]string, len(top))
	for name, value := range top {
		switch v := value.(type) {
		case string:
			attrs[name] = v
		case float64, bool, json.Number:
			attrs[name] = fmt.Sprintf("%v", v)
		case nil:
			attrs[name] = ""
		default:
			// Nested objects are not attribute values; skip them.
		}
	}
	return attrs, nil
}

func probeString(doc string, paths ...string) string {
	for _, path := range paths {
		found := gojsonq.New().FromString(doc).Find(path)
		switch v := found.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
