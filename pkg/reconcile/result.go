package reconcile

import (
	"fmt"
	"time"

	"github.com/agentstation/gardener/pkg/banner"
	"github.com/agentstation/gardener/pkg/manifest"
)

// Outcome classifies what happened to one repository.
type Outcome string

// Per-repository outcomes.
const (
	// OutcomeApplied means the plan's steps were executed (or, in dry-run,
	// would have been).
	OutcomeApplied Outcome = "applied"

	// OutcomeUnchanged means remote state already matched the spec.
	OutcomeUnchanged Outcome = "unchanged"

	// OutcomeSkipped means the entry was deliberately not touched
	// (status delete).
	OutcomeSkipped Outcome = "skipped"

	// OutcomeFailed means a platform call errored; the run continued with
	// the next repository.
	OutcomeFailed Outcome = "failed"
)

// RepoResult is the outcome of reconciling one repository.
type RepoResult struct {
	// Name is the repository name from the manifest.
	Name string `json:"name"`

	// Status is the desired status that drove the plan.
	Status manifest.Status `json:"status"`

	// Outcome classifies the result.
	Outcome Outcome `json:"outcome"`

	// Steps is the ordered plan that was (or would be) executed.
	Steps []Step `json:"steps,omitempty"`

	// DateSource reports which date-resolution branch fired; set only when
	// an archive banner was computed.
	DateSource banner.DateSource `json:"date_source,omitempty"`

	// Warnings are non-fatal issues, such as extra banner-shaped lines.
	Warnings []string `json:"warnings,omitempty"`

	// Err is the platform error that failed this repository, if any.
	Err error `json:"-"`
}

// Metadata describes the run as a whole.
type Metadata struct {
	// Owner the run operated on.
	Owner string `json:"owner"`

	// DryRun indicates no mutating calls were made.
	DryRun bool `json:"dry_run"`

	// StartTime when reconciliation started.
	StartTime time.Time `json:"start_time"`

	// EndTime when reconciliation completed.
	EndTime time.Time `json:"end_time"`

	// Duration of the reconciliation.
	Duration time.Duration `json:"duration"`
}

// Result is the outcome of reconciling a whole manifest.
type Result struct {
	Repos    []RepoResult `json:"repos"`
	Metadata Metadata     `json:"metadata"`
}

// Repo returns the result for the named repository.
func (r *Result) Repo(name string) (*RepoResult, bool) {
	for i := range r.Repos {
		if r.Repos[i].Name == name {
			return &r.Repos[i], true
		}
	}
	return nil, false
}

// Failed returns true if any repository failed. This drives the process exit
// code; skipped delete entries do not count as failures.
func (r *Result) Failed() bool {
	return r.Count(OutcomeFailed) > 0
}

// Count returns the number of repositories with the given outcome.
func (r *Result) Count(outcome Outcome) int {
	n := 0
	for i := range r.Repos {
		if r.Repos[i].Outcome == outcome {
			n++
		}
	}
	return n
}

// HasWarnings returns true if any repository surfaced a warning.
func (r *Result) HasWarnings() bool {
	for i := range r.Repos {
		if len(r.Repos[i].Warnings) > 0 {
			return true
		}
	}
	return false
}

// Summary returns a one-line human-readable summary of the run.
func (r *Result) Summary() string {
	s := fmt.Sprintf("%d applied, %d unchanged, %d skipped, %d failed",
		r.Count(OutcomeApplied), r.Count(OutcomeUnchanged),
		r.Count(OutcomeSkipped), r.Count(OutcomeFailed))
	if r.Metadata.DryRun {
		return s + " (dry run)"
	}
	return s
}
