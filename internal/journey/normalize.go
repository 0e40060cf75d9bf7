package journey

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// rawStep mirrors the source step schema. Field types are deliberately loose
// because the upstream API mixes strings and numbers freely; decoding is
// weakly typed and the ",remain" capture keeps unknown fields from failing
// the decode.
type rawStep struct {
	Action   string                 `mapstructure:"action"`
	Variable string                 `mapstructure:"variable"`
	Value    string                 `mapstructure:"value"`
	Element  *rawElement            `mapstructure:"element"`
	Meta     *Meta                  `mapstructure:"meta"`
	Extra    map[string]interface{} `mapstructure:",remain"`
}

type rawElement struct {
	Target *rawTarget `mapstructure:"target"`
}

type rawTarget struct {
	Selectors []Selector    `mapstructure:"selectors"`
	Options   []interface{} `mapstructure:"options"`
}

// actionKinds maps source action codes to canonical kinds. Codes not listed
// here become ActionOther with the raw code preserved.
var actionKinds = map[string]ActionKind{
	"NAVIGATE": ActionNavigate,
	"WRITE":    ActionWrite,
	"TYPE":     ActionWrite,
	"CLICK":    ActionClick,
	"PICK":     ActionPick,
	"SELECT":   ActionSelect,
	"WAIT":     ActionWait,
	"ASSERT":   ActionAssert,
	"SCROLL":   ActionScroll,
}

// NormalizeStep converts one raw step record into the canonical shape. It
// never fails: malformed input yields a best-effort step with missing fields
// left empty, since the source data comes from an external API and is
// assumed imperfect.
func NormalizeStep(record map[string]interface{}) Step {
	var raw rawStep
	if err := decodeWeak(record, &raw); err != nil {
		// Salvage the action code so the composer can still render the
		// fallback template.
		code := ""
		if v, ok := record["action"].(string); ok {
			code = v
		}
		return canonicalStep(rawStep{Action: code})
	}
	return canonicalStep(raw)
}

func canonicalStep(raw rawStep) Step {
	step := Step{
		RawAction: strings.TrimSpace(raw.Action),
		Variable:  strings.TrimSpace(raw.Variable),
		Value:     raw.Value,
	}
	if raw.Meta != nil {
		step.Meta = *raw.Meta
	}
	step.Action = canonicalAction(step.RawAction, &step)

	if raw.Element != nil && raw.Element.Target != nil {
		target := &Target{
			Label:   ResolveSelectors(raw.Element.Target.Selectors),
			Options: coerceOptions(raw.Element.Target.Options),
		}
		step.Target = target
	}
	return step
}

// canonicalAction resolves the action code against the closed kind set.
// Compound codes such as ASSERT_EXISTS or WAIT_FOR_ELEMENT carry their
// qualifier into Meta.Type when the source did not supply one.
func canonicalAction(code string, step *Step) ActionKind {
	upper := strings.ToUpper(code)
	if kind, ok := actionKinds[upper]; ok {
		return kind
	}

	if base, qualifier, found := strings.Cut(upper, "_"); found {
		if kind, ok := actionKinds[base]; ok {
			if step.Meta.Type == "" {
				step.Meta.Type = strings.TrimPrefix(qualifier, "FOR_")
			}
			return kind
		}
	}
	return ActionOther
}

// coerceOptions flattens the dropdown option list, which the source encodes
// either as bare strings or as {name, value} objects.
func coerceOptions(raw []interface{}) []string {
	if len(raw) == 0 {
		return nil
	}
	options := make([]string, 0, len(raw))
	for _, entry := range raw {
		switch v := entry.(type) {
		case string:
			options = append(options, v)
		case map[string]interface{}:
			if value, ok := v["value"].(string); ok && value != "" {
				options = append(options, value)
			} else if name, ok := v["name"].(string); ok && name != "" {
				options = append(options, name)
			}
		default:
			options = append(options, fmt.Sprintf("%v", v))
		}
	}
	return options
}

// decodeWeak decodes a loosely typed map into a struct, coercing scalar
// types the way the upstream API mixes them.
func decodeWeak(input interface{}, result interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           result,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}
