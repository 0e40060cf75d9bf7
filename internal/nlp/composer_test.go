package nlp

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/deploymenttheory/go-journey-composer/internal/journey"
)

func TestComposeLoginCheckpoint(t *testing.T) {
	j := &journey.Journey{
		Title: "Demo Journey",
		Checkpoints: []journey.Checkpoint{
			{
				Number: "35",
				Title:  "Login Admin",
				Steps: []journey.Step{
					{Action: journey.ActionWrite, Variable: "username", Target: &journey.Target{Label: "Username"}},
					{Action: journey.ActionWrite, Variable: "password", Target: &journey.Target{Label: "Password"}},
					{Action: journey.ActionClick, Target: &journey.Target{Label: "Login"}},
				},
			},
		},
	}

	lines, err := ComposeJourney(j)
	if err != nil {
		t.Fatalf("ComposeJourney failed: %v", err)
	}

	want := []string{
		"Checkpoint 35: Login Admin",
		`Write $username in field "Username"`,
		`Write $password in field "Password"`,
		`Click on "Login"`,
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("composed lines mismatch (-want +got):\n%s", diff)
	}
}

func TestComposeBlankLineBetweenCheckpoints(t *testing.T) {
	j := &journey.Journey{
		Checkpoints: []journey.Checkpoint{
			{Number: "2", Title: "First", Steps: []journey.Step{
				{Action: journey.ActionNavigate, Value: "https://example.com"},
			}},
			{Number: "35", Title: "Second", Steps: []journey.Step{
				{Action: journey.ActionClick, Target: &journey.Target{Label: "Go"}},
			}},
		},
	}

	lines, err := ComposeJourney(j)
	if err != nil {
		t.Fatalf("ComposeJourney failed: %v", err)
	}

	want := []string{
		"Checkpoint 2: First",
		`Navigate to "https://example.com"`,
		"",
		"Checkpoint 35: Second",
		`Click on "Go"`,
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("composed lines mismatch (-want +got):\n%s", diff)
	}
}

func TestComposeCheckpointNumbersVerbatim(t *testing.T) {
	// Display numbers come from the source and must survive gaps untouched.
	j := &journey.Journey{
		Checkpoints: []journey.Checkpoint{
			{Number: "2", Title: "A"},
			{Number: "35", Title: "B"},
		},
	}
	// Checkpoints without steps still head their own block.
	j.Checkpoints[0].Steps = []journey.Step{{Action: journey.ActionWait, Value: "500"}}
	j.Checkpoints[1].Steps = []journey.Step{{Action: journey.ActionScroll}}

	lines, err := ComposeJourney(j)
	if err != nil {
		t.Fatalf("ComposeJourney failed: %v", err)
	}

	if lines[0] != "Checkpoint 2: A" {
		t.Errorf("first heading = %q, want verbatim number 2", lines[0])
	}
	if lines[3] != "Checkpoint 35: B" {
		t.Errorf("second heading = %q, want verbatim number 35", lines[3])
	}
}

func TestRenderStepTemplates(t *testing.T) {
	c := New()

	tests := []struct {
		name string
		step journey.Step
		want string
	}{
		{
			name: "navigate with variable",
			step: journey.Step{Action: journey.ActionNavigate, Variable: "url"},
			want: "Navigate to $url",
		},
		{
			name: "navigate with literal",
			step: journey.Step{Action: journey.ActionNavigate, Value: "https://app.example.com"},
			want: `Navigate to "https://app.example.com"`,
		},
		{
			name: "write literal",
			step: journey.Step{Action: journey.ActionWrite, Value: "hello", Target: &journey.Target{Label: "Comment"}},
			want: `Write "hello" in field "Comment"`,
		},
		{
			name: "pick literal option",
			step: journey.Step{Action: journey.ActionPick, Value: "Admin", Target: &journey.Target{Label: "Role"}},
			want: `Pick "Admin" from dropdown "Role"`,
		},
		{
			name: "select is pick",
			step: journey.Step{Action: journey.ActionSelect, Value: "Admin", Target: &journey.Target{Label: "Role"}},
			want: `Pick "Admin" from dropdown "Role"`,
		},
		{
			name: "pick first option when no value",
			step: journey.Step{Action: journey.ActionPick, Target: &journey.Target{Label: "Role", Options: []string{"User", "Admin"}}},
			want: `Pick "User" from dropdown "Role"`,
		},
		{
			name: "wait for element",
			step: journey.Step{Action: journey.ActionWait, Target: &journey.Target{Label: "Spinner"}},
			want: `Wait for "Spinner"`,
		},
		{
			name: "wait duration",
			step: journey.Step{Action: journey.ActionWait, Value: "2000"},
			want: "Wait 2000ms",
		},
		{
			name: "assert exists default",
			step: journey.Step{Action: journey.ActionAssert, Target: &journey.Target{Label: "Welcome"}},
			want: `Assert "Welcome" exists`,
		},
		{
			name: "assert not exists",
			step: journey.Step{Action: journey.ActionAssert, Meta: journey.Meta{Type: "NOT_EXISTS"}, Target: &journey.Target{Label: "Error"}},
			want: `Assert "Error" does not exist`,
		},
		{
			name: "assert equals variable",
			step: journey.Step{Action: journey.ActionAssert, Meta: journey.Meta{Type: "EQUALS"}, Variable: "total", Target: &journey.Target{Label: "Sum"}},
			want: `Assert "Sum" equals $total`,
		},
		{
			name: "scroll to target",
			step: journey.Step{Action: journey.ActionScroll, Target: &journey.Target{Label: "Footer"}},
			want: `Scroll to "Footer"`,
		},
		{
			name: "scroll without target",
			step: journey.Step{Action: journey.ActionScroll},
			want: "Scroll",
		},
		{
			name: "unknown action falls back to raw code",
			step: journey.Step{Action: journey.ActionOther, RawAction: "MOUSE_OVER", Target: &journey.Target{Label: "Menu"}},
			want: `MOUSE_OVER "Menu"`,
		},
		{
			name: "unknown action without target",
			step: journey.Step{Action: journey.ActionOther, RawAction: "REFRESH"},
			want: "REFRESH",
		},
		{
			name: "malformed step still renders",
			step: journey.Step{Action: journey.ActionOther},
			want: "UNKNOWN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.RenderStep(tt.step); got != tt.want {
				t.Errorf("RenderStep() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVariableNeverRenderedAsValue(t *testing.T) {
	// A step carrying both a variable and a literal must render the
	// variable token, never the literal.
	c := New()
	step := journey.Step{
		Action:   journey.ActionWrite,
		Variable: "password",
		Value:    "hunter2",
		Target:   &journey.Target{Label: "Password"},
	}

	line := c.RenderStep(step)
	if !strings.Contains(line, "$password") {
		t.Errorf("line %q does not contain the variable token", line)
	}
	if strings.Contains(line, "hunter2") {
		t.Errorf("line %q leaked the literal value", line)
	}
}

func TestComposeInvalidJourney(t *testing.T) {
	if _, err := ComposeJourney(nil); err == nil {
		t.Error("expected error for nil journey")
	}
	if _, err := ComposeJourney(&journey.Journey{}); err == nil {
		t.Error("expected error for journey without checkpoints")
	}
}

func TestCustomSigil(t *testing.T) {
	c := &Composer{Sigil: "%"}
	step := journey.Step{Action: journey.ActionNavigate, Variable: "url"}
	if got := c.RenderStep(step); got != "Navigate to %url" {
		t.Errorf("RenderStep() = %q", got)
	}
}
