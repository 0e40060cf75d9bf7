package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/deploymenttheory/go-journey-composer/internal/journey"
	"github.com/deploymenttheory/go-journey-composer/internal/variables"
)

func sampleRecords() []variables.Record {
	return []variables.Record{
		{
			Name:       "username",
			Value:      "admin",
			Provenance: variables.ProvenanceDataAttribute,
			Source:     "dataAttributeValues",
			Usage: []variables.Usage{
				{Checkpoint: "Login Admin", Action: "WRITE", Field: "Username"},
			},
		},
		{
			Name:       "signaturebox",
			Value:      "/html/body/div[3]|canvas",
			Provenance: variables.ProvenanceEnvironment,
			Source:     "Environment variable",
			Usage: []variables.Usage{
				{Checkpoint: "Sign", Action: "CLICK", Field: ""},
			},
		},
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	j := &journey.Journey{
		ID:    "527218",
		Title: "Login Flow",
		Checkpoints: []journey.Checkpoint{
			{Number: "35", Title: "Login Admin", Steps: []journey.Step{
				{Action: journey.ActionWrite, Variable: "username", Target: &journey.Target{Label: "Username"}},
			}},
		},
	}
	lines := []string{"Checkpoint 35: Login Admin", `Write $username in field "Username"`}
	records := sampleRecords()

	artifacts, err := Write(dir, "login-flow", lines, records, BuildSummary(j, records))
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	script, err := os.ReadFile(artifacts.ScriptPath)
	if err != nil {
		t.Fatalf("reading script: %v", err)
	}
	want := "Checkpoint 35: Login Admin\nWrite $username in field \"Username\"\n"
	if string(script) != want {
		t.Errorf("script = %q, want %q", script, want)
	}

	catalog, err := os.ReadFile(artifacts.CatalogPath)
	if err != nil {
		t.Fatalf("reading catalog: %v", err)
	}
	var decoded []variables.Record
	if err := json.Unmarshal(catalog, &decoded); err != nil {
		t.Fatalf("catalog is not valid JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[0].Name != "username" {
		t.Errorf("decoded catalog = %+v", decoded)
	}

	var summary Summary
	data, err := os.ReadFile(artifacts.SummaryPath)
	if err != nil {
		t.Fatalf("reading summary: %v", err)
	}
	if err := json.Unmarshal(data, &summary); err != nil {
		t.Fatalf("summary is not valid JSON: %v", err)
	}
	if summary.Checkpoints != 1 || summary.Steps != 1 || summary.Variables != 2 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.ByProvenance["DATA_ATTRIBUTE"] != 1 || summary.ByProvenance["ENVIRONMENT"] != 1 {
		t.Errorf("byProvenance = %+v", summary.ByProvenance)
	}

	if filepath.Dir(artifacts.TablePath) != dir {
		t.Errorf("table written outside output dir: %s", artifacts.TablePath)
	}
}

func TestMarkdownTable(t *testing.T) {
	table := MarkdownTable(sampleRecords())

	if !strings.HasPrefix(table, "| Variable | Value | Source | Used in |\n|---|---|---|---|\n") {
		t.Errorf("missing header:\n%s", table)
	}
	if !strings.Contains(table, `| username | admin | dataAttributeValues | Login Admin (WRITE "Username") |`) {
		t.Errorf("missing username row:\n%s", table)
	}
	// Pipes inside values must not break the table.
	if !strings.Contains(table, `/html/body/div[3]\|canvas`) {
		t.Errorf("pipe not escaped:\n%s", table)
	}
}

func TestSafeName(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Login Flow", "login-flow"},
		{"  Order / Checkout #2 ", "order--checkout-2"},
		{"", "journey"},
		{"///", "journey"},
	}
	for _, tt := range tests {
		if got := SafeName(tt.title); got != tt.want {
			t.Errorf("SafeName(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
