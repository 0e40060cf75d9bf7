// Package nlp renders canonical journeys into the natural-language script
// the reference UI shows for the same journey. The grammar is fixed per
// action kind; output must match the UI phrasing byte for byte.
package nlp

import (
	"fmt"
	"strings"

	errs "github.com/deploymenttheory/go-journey-composer/internal/common/errors"
	"github.com/deploymenttheory/go-journey-composer/internal/journey"
)

// DefaultSigil prefixes variable tokens in rendered lines.
const DefaultSigil = "$"

// Composer renders steps into text lines. The zero value is not usable;
// construct with New.
type Composer struct {
	Sigil string
}

// renderFunc renders one canonical step into exactly one line.
type renderFunc func(c *Composer, step journey.Step) string

// renderers is the per-kind grammar registry. Kinds missing here fall back
// to the raw-action template.
var renderers = map[journey.ActionKind]renderFunc{
	journey.ActionNavigate: (*Composer).renderNavigate,
	journey.ActionWrite:    (*Composer).renderWrite,
	journey.ActionClick:    (*Composer).renderClick,
	journey.ActionPick:     (*Composer).renderPick,
	journey.ActionSelect:   (*Composer).renderPick,
	journey.ActionWait:     (*Composer).renderWait,
	journey.ActionAssert:   (*Composer).renderAssert,
	journey.ActionScroll:   (*Composer).renderScroll,
}

// New returns a Composer using the default variable sigil.
func New() *Composer {
	return &Composer{Sigil: DefaultSigil}
}

// ComposeJourney renders the journey with the default sigil.
func ComposeJourney(j *journey.Journey) ([]string, error) {
	return New().ComposeJourney(j)
}

// ComposeJourney renders every checkpoint as a heading followed by one line
// per step, with a blank line between checkpoints. The only failure is a
// structurally invalid journey; malformed steps render via fallbacks.
func (c *Composer) ComposeJourney(j *journey.Journey) ([]string, error) {
	if j == nil || len(j.Checkpoints) == 0 {
		return nil, fmt.Errorf("%w: nothing to compose", errs.ErrInvalidJourney)
	}

	var lines []string
	for i, cp := range j.Checkpoints {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, fmt.Sprintf("Checkpoint %s: %s", cp.Number, cp.Title))
		for _, step := range cp.Steps {
			lines = append(lines, c.RenderStep(step))
		}
	}
	return lines, nil
}

// RenderStep renders a single canonical step. It never fails; kinds without
// a grammar entry use the raw-action fallback.
func (c *Composer) RenderStep(step journey.Step) string {
	if render, ok := renderers[step.Action]; ok {
		return render(c, step)
	}
	return c.renderOther(step)
}

// token renders the step's variable reference or literal value. Variables
// carry the sigil and no quotes; literals are always quoted. Rendering a
// resolved value in place of a variable name (or the reverse) is the one
// unforgivable composer bug.
func (c *Composer) token(step journey.Step) string {
	if step.Variable != "" {
		return c.Sigil + step.Variable
	}
	return quote(step.Value)
}

func (c *Composer) renderNavigate(step journey.Step) string {
	return "Navigate to " + c.token(step)
}

func (c *Composer) renderWrite(step journey.Step) string {
	return fmt.Sprintf("Write %s in field %s", c.token(step), quote(targetLabel(step)))
}

func (c *Composer) renderClick(step journey.Step) string {
	return "Click on " + quote(targetLabel(step))
}

func (c *Composer) renderPick(step journey.Step) string {
	option := ""
	switch {
	case step.Variable != "":
		option = c.Sigil + step.Variable
	case step.Value != "":
		option = quote(step.Value)
	case step.Target != nil && len(step.Target.Options) > 0:
		option = quote(step.Target.Options[0])
	default:
		option = quote("")
	}
	return fmt.Sprintf("Pick %s from dropdown %s", option, quote(targetLabel(step)))
}

func (c *Composer) renderWait(step journey.Step) string {
	if label := targetLabel(step); label != "" {
		return "Wait for " + quote(label)
	}
	if step.Value != "" {
		return fmt.Sprintf("Wait %sms", step.Value)
	}
	return "Wait"
}

func (c *Composer) renderAssert(step journey.Step) string {
	return fmt.Sprintf("Assert %s %s", quote(targetLabel(step)), c.assertPhrase(step))
}

// assertPhrase derives the condition phrase from the step's metadata
// kind/type pair; unrecognized conditions default to an existence check.
func (c *Composer) assertPhrase(step journey.Step) string {
	switch strings.ToUpper(step.Meta.Type) {
	case "NOT_EXISTS":
		return "does not exist"
	case "EQUALS", "EQUAL":
		return "equals " + c.token(step)
	case "CONTAINS":
		return "contains " + c.token(step)
	default:
		return "exists"
	}
}

func (c *Composer) renderScroll(step journey.Step) string {
	if label := targetLabel(step); label != "" {
		return "Scroll to " + quote(label)
	}
	return "Scroll"
}

// renderOther is the safe fallback: the raw action code, then the quoted
// target when one exists.
func (c *Composer) renderOther(step journey.Step) string {
	code := step.RawAction
	if code == "" {
		code = "UNKNOWN"
	}
	if label := targetLabel(step); label != "" {
		return code + " " + quote(label)
	}
	return code
}

func targetLabel(step journey.Step) string {
	if step.Target == nil {
		return ""
	}
	return step.Target.Label
}

// quote wraps a value in plain double quotes without escaping; the
// reference UI does not escape embedded quotes either.
func quote(s string) string {
	return `"` + s + `"`
}
