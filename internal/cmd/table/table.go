// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"strings"

	"github.com/agentstation/gardener/internal/cmd/emoji"
	"github.com/agentstation/gardener/pkg/manifest"
	"github.com/agentstation/gardener/pkg/reconcile"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// ManifestToTableData converts the manifest into the pre-run plan table.
func ManifestToTableData(m *manifest.Manifest) Data {
	rows := make([][]string, 0, len(m.Repos))
	for _, repo := range m.Repos {
		rows = append(rows, []string{
			repo.Name,
			repo.Status.String(),
			repo.Category.String(),
			repo.Description,
		})
	}
	return Data{
		Headers: []string{"Repo", "Status", "Category", "Description"},
		Rows:    rows,
	}
}

// ResultToTableData converts a reconciliation result into the end-of-run
// summary table.
func ResultToTableData(result *reconcile.Result) Data {
	rows := make([][]string, 0, len(result.Repos))
	for _, repo := range result.Repos {
		detail := ""
		switch {
		case repo.Err != nil:
			detail = repo.Err.Error()
		case len(repo.Steps) > 0:
			detail = stepSummary(repo.Steps)
		}
		rows = append(rows, []string{
			outcomeSymbol(repo.Outcome),
			repo.Name,
			repo.Status.String(),
			string(repo.Outcome),
			detail,
		})
	}
	return Data{
		Headers:         []string{"", "Repo", "Status", "Outcome", "Details"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignCenter, AlignLeft, AlignLeft, AlignLeft, AlignLeft},
	}
}

// StepsToTableData converts one repository's plan into a dry-run detail
// table of old -> new values.
func StepsToTableData(steps []reconcile.Step) Data {
	rows := make([][]string, 0, len(steps))
	for _, step := range steps {
		rows = append(rows, []string{string(step.Kind), step.Old, step.New})
	}
	return Data{
		Headers: []string{"Step", "Current", "Desired"},
		Rows:    rows,
	}
}

// stepSummary renders a compact step-kind list, e.g. "unarchive, commit-readme, archive".
func stepSummary(steps []reconcile.Step) string {
	kinds := make([]string, 0, len(steps))
	for _, step := range steps {
		kinds = append(kinds, string(step.Kind))
	}
	return strings.Join(kinds, ", ")
}

// outcomeSymbol maps an outcome to its status symbol.
func outcomeSymbol(outcome reconcile.Outcome) string {
	switch outcome {
	case reconcile.OutcomeApplied:
		return emoji.Success
	case reconcile.OutcomeUnchanged:
		return emoji.Optional
	case reconcile.OutcomeSkipped:
		return emoji.Warning
	case reconcile.OutcomeFailed:
		return emoji.Error
	}
	return emoji.Unknown
}
