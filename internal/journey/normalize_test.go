package journey

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeStepCanonicalKinds(t *testing.T) {
	tests := []struct {
		code string
		want ActionKind
	}{
		{"NAVIGATE", ActionNavigate},
		{"WRITE", ActionWrite},
		{"TYPE", ActionWrite},
		{"CLICK", ActionClick},
		{"PICK", ActionPick},
		{"SELECT", ActionSelect},
		{"WAIT", ActionWait},
		{"ASSERT", ActionAssert},
		{"SCROLL", ActionScroll},
		{"MOUSE_OVER", ActionOther},
		{"", ActionOther},
	}

	for _, tt := range tests {
		step := NormalizeStep(map[string]interface{}{"action": tt.code})
		if step.Action != tt.want {
			t.Errorf("NormalizeStep(%q).Action = %v, want %v", tt.code, step.Action, tt.want)
		}
		if step.RawAction != tt.code {
			t.Errorf("NormalizeStep(%q).RawAction = %q, raw code must be preserved", tt.code, step.RawAction)
		}
	}
}

func TestNormalizeStepCompoundCodes(t *testing.T) {
	step := NormalizeStep(map[string]interface{}{"action": "ASSERT_EXISTS"})
	if step.Action != ActionAssert {
		t.Fatalf("Action = %v, want ASSERT", step.Action)
	}
	if step.Meta.Type != "EXISTS" {
		t.Errorf("Meta.Type = %q, want qualifier carried over", step.Meta.Type)
	}

	step = NormalizeStep(map[string]interface{}{"action": "WAIT_FOR_ELEMENT"})
	if step.Action != ActionWait {
		t.Errorf("Action = %v, want WAIT", step.Action)
	}

	// An explicit meta type is never overwritten by the code qualifier.
	step = NormalizeStep(map[string]interface{}{
		"action": "ASSERT_EXISTS",
		"meta":   map[string]interface{}{"kind": "ASSERTION", "type": "NOT_EXISTS"},
	})
	if step.Meta.Type != "NOT_EXISTS" {
		t.Errorf("Meta.Type = %q, want explicit meta kept", step.Meta.Type)
	}
}

func TestNormalizeStepFull(t *testing.T) {
	record := map[string]interface{}{
		"action":   "WRITE",
		"variable": " username ",
		"value":    "ignored literal",
		"element": map[string]interface{}{
			"target": map[string]interface{}{
				"selectors": []interface{}{
					map[string]interface{}{"type": "GUESS", "value": `{"clue":"Username"}`},
					map[string]interface{}{"type": "XPATH", "value": "//input[1]"},
				},
			},
		},
	}

	step := NormalizeStep(record)
	want := Step{
		Action:    ActionWrite,
		RawAction: "WRITE",
		Variable:  "username",
		Value:     "ignored literal",
		Target:    &Target{Label: "Username"},
	}
	if diff := cmp.Diff(want, step); diff != "" {
		t.Errorf("NormalizeStep() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeStepNumericValue(t *testing.T) {
	// The API mixes strings and numbers; weak decoding coerces.
	step := NormalizeStep(map[string]interface{}{"action": "WAIT", "value": float64(2000)})
	if step.Value != "2000" {
		t.Errorf("Value = %q, want coerced %q", step.Value, "2000")
	}
}

func TestNormalizeStepOptions(t *testing.T) {
	record := map[string]interface{}{
		"action": "PICK",
		"element": map[string]interface{}{
			"target": map[string]interface{}{
				"options": []interface{}{
					"Plain",
					map[string]interface{}{"value": "FromValue"},
					map[string]interface{}{"name": "FromName"},
				},
			},
		},
	}

	step := NormalizeStep(record)
	want := []string{"Plain", "FromValue", "FromName"}
	if step.Target == nil {
		t.Fatal("Target missing")
	}
	if diff := cmp.Diff(want, step.Target.Options); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeStepMalformedNeverPanics(t *testing.T) {
	records := []map[string]interface{}{
		nil,
		{},
		{"action": 42},
		{"element": "not an object"},
		{"action": "CLICK", "element": map[string]interface{}{"target": nil}},
	}

	for i, record := range records {
		step := NormalizeStep(record)
		if step.Action == "" {
			t.Errorf("record %d: empty action kind, want at least OTHER", i)
		}
	}
}
