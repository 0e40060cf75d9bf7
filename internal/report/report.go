// Package report serializes conversion results: the composed script, the
// variable catalog as JSON and as a markdown table, and a run summary.
package report

import (
	"fmt"
	"path/filepath"
	"strings"

	errs "github.com/deploymenttheory/go-journey-composer/internal/common/errors"
	"github.com/deploymenttheory/go-journey-composer/internal/common/fsutil"
	"github.com/deploymenttheory/go-journey-composer/internal/common/jsonutil"
	"github.com/deploymenttheory/go-journey-composer/internal/journey"
	"github.com/deploymenttheory/go-journey-composer/internal/logger"
	"github.com/deploymenttheory/go-journey-composer/internal/variables"
)

// Summary is the per-run conversion report.
type Summary struct {
	JourneyID    string         `json:"journeyId,omitempty"`
	JourneyTitle string         `json:"journeyTitle,omitempty"`
	Checkpoints  int            `json:"checkpoints"`
	Steps        int            `json:"steps"`
	Variables    int            `json:"variables"`
	ByProvenance map[string]int `json:"byProvenance"`
	Ambiguous    []string       `json:"ambiguous,omitempty"`
}

// Artifacts lists the files one conversion run produced.
type Artifacts struct {
	ScriptPath  string
	CatalogPath string
	TablePath   string
	SummaryPath string
}

// BuildSummary derives the run summary from the journey and its catalog.
func BuildSummary(j *journey.Journey, records []variables.Record) Summary {
	s := Summary{
		JourneyID:    j.ID,
		JourneyTitle: j.Title,
		Checkpoints:  len(j.Checkpoints),
		Variables:    len(records),
		ByProvenance: make(map[string]int),
	}
	for _, cp := range j.Checkpoints {
		s.Steps += len(cp.Steps)
	}
	for _, rec := range records {
		s.ByProvenance[string(rec.Provenance)]++
		if rec.Ambiguous {
			s.Ambiguous = append(s.Ambiguous, rec.Name)
		}
	}
	return s
}

// Write serializes all artifacts for one journey into dir under the given
// base name.
func Write(dir, name string, lines []string, records []variables.Record, summary Summary) (*Artifacts, error) {
	if err := fsutil.CreateDirIfNotExists(dir); err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrReportWriteFailed, err.Error())
	}

	a := &Artifacts{
		ScriptPath:  filepath.Join(dir, name+".txt"),
		CatalogPath: filepath.Join(dir, name+"-variables.json"),
		TablePath:   filepath.Join(dir, name+"-variables.md"),
		SummaryPath: filepath.Join(dir, name+"-summary.json"),
	}

	script := strings.Join(lines, "\n") + "\n"
	if err := fsutil.WriteFileString(a.ScriptPath, script, 0644); err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrReportWriteFailed, err.Error())
	}

	if err := jsonutil.WriteJSONFile(a.CatalogPath, records); err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrReportWriteFailed, err.Error())
	}

	if err := fsutil.WriteFileString(a.TablePath, MarkdownTable(records), 0644); err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrReportWriteFailed, err.Error())
	}

	if err := jsonutil.WriteJSONFile(a.SummaryPath, summary); err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrReportWriteFailed, err.Error())
	}

	logger.LogInfo("Conversion artifacts written", map[string]interface{}{
		"dir":         dir,
		"script":      a.ScriptPath,
		"checkpoints": summary.Checkpoints,
		"steps":       summary.Steps,
		"variables":   summary.Variables,
	})
	return a, nil
}

// MarkdownTable renders the variable catalog as a markdown table.
func MarkdownTable(records []variables.Record) string {
	var b strings.Builder
	b.WriteString("| Variable | Value | Source | Used in |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, rec := range records {
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			escapeCell(rec.Name),
			escapeCell(rec.Value),
			escapeCell(rec.Source),
			escapeCell(usageCell(rec.Usage)),
		))
	}
	return b.String()
}

func usageCell(uses []variables.Usage) string {
	parts := make([]string, 0, len(uses))
	for _, u := range uses {
		part := u.Checkpoint
		if u.Field != "" {
			part = fmt.Sprintf("%s (%s %q)", u.Checkpoint, u.Action, u.Field)
		} else if u.Action != "" {
			part = fmt.Sprintf("%s (%s)", u.Checkpoint, u.Action)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "; ")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

// SafeName turns a journey title into a usable file base name.
func SafeName(title string) string {
	if strings.TrimSpace(title) == "" {
		return "journey"
	}
	var b strings.Builder
	for _, r := range strings.TrimSpace(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "journey"
	}
	return strings.ToLower(b.String())
}
