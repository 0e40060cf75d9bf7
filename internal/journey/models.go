package journey

// ActionKind identifies the kind of UI action a step performs. The set is
// closed; action codes outside it map to ActionOther with the original code
// preserved in Step.RawAction.
type ActionKind string

const (
	ActionNavigate ActionKind = "NAVIGATE"
	ActionWrite    ActionKind = "WRITE"
	ActionClick    ActionKind = "CLICK"
	ActionPick     ActionKind = "PICK"
	ActionSelect   ActionKind = "SELECT"
	ActionWait     ActionKind = "WAIT"
	ActionAssert   ActionKind = "ASSERT"
	ActionScroll   ActionKind = "SCROLL"
	ActionOther    ActionKind = "OTHER"
)

// Journey is a single automated test definition composed of checkpoints.
// It is immutable once parsed; both output branches only read it.
type Journey struct {
	ID          string       `mapstructure:"id"`
	Title       string       `mapstructure:"title"`
	Checkpoints []Checkpoint `mapstructure:"checkpoints"`
}

// Checkpoint is a named, numbered grouping of steps. Number is the display
// number taken verbatim from the source; gaps (e.g. 2 then 35) are expected
// and must never be renumbered.
type Checkpoint struct {
	ID     string `mapstructure:"id"`
	Number string `mapstructure:"number"`
	Title  string `mapstructure:"title"`
	Steps  []Step `mapstructure:"steps"`
}

// Step is one canonical UI action. Optional fields are left empty rather
// than pointer-wrapped; Target is nil when the action has no element.
type Step struct {
	// Action is the canonical kind; RawAction keeps the source action code
	// for display when Action is ActionOther.
	Action    ActionKind
	RawAction string

	// Variable is a variable name without its sigil. A step carries either
	// a variable reference or a literal value, never meaningfully both.
	Variable string
	Value    string

	Target *Target
	Meta   Meta
}

// Target describes the element a step acts upon.
type Target struct {
	// Label is the resolved human-readable name of the element.
	Label string
	// Options holds dropdown option values for selection actions.
	Options []string
}

// Meta carries the source step's kind/type metadata pair, used to derive
// assertion condition phrasing.
type Meta struct {
	Kind string `mapstructure:"kind"`
	Type string `mapstructure:"type"`
}

// Selector is one raw element selector as supplied by the source.
type Selector struct {
	Type  string `mapstructure:"type"`
	Value string `mapstructure:"value"`
}

// Environment is a named configuration scope. Variables is keyed by opaque
// numeric identifiers, not variable names: resolving a variable requires a
// linear scan matching each entry's Name field. Treating the keys as
// variable names silently breaks environment resolution.
type Environment struct {
	ID        string                         `mapstructure:"id"`
	Name      string                         `mapstructure:"name"`
	Variables map[string]EnvironmentVariable `mapstructure:"variables"`
}

// EnvironmentVariable is a single id-keyed entry inside an environment.
type EnvironmentVariable struct {
	Name  string `mapstructure:"name" json:"name"`
	Value string `mapstructure:"value" json:"value"`
}
