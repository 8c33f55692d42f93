// Package reconcile brings remote repository state in line with the
// declarative manifest. Each repository is planned and applied independently,
// sequentially, in manifest order: a platform failure fails that one
// repository and the run continues with the next.
//
// Plans honor the platform's frozen-resource rule. A repository that must be
// edited while archived is unfrozen first, edited, and frozen again last; if
// anything fails in between, the repository is deliberately left unarchived
// so a re-run can repair it.
package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/gardener/pkg/banner"
	"github.com/agentstation/gardener/pkg/constants"
	"github.com/agentstation/gardener/pkg/errors"
	"github.com/agentstation/gardener/pkg/logging"
	"github.com/agentstation/gardener/pkg/manifest"
	"github.com/agentstation/gardener/pkg/platform"
)

// Reconciler drives per-repository status reconciliation against a platform
// client.
type Reconciler struct {
	client     platform.Client
	owner      string
	readmePath string
	dryRun     bool
	today      *utc.Time
}

// New creates a Reconciler for the given platform client.
func New(client platform.Client, opts ...Option) (*Reconciler, error) {
	if client == nil {
		return nil, errors.NewValidationError("client", nil, "platform client is required")
	}

	r := &Reconciler{
		client:     client,
		readmePath: constants.DefaultReadmePath,
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("applying option: %w", err)
		}
	}
	return r, nil
}

// Reconcile processes every manifest entry sequentially in manifest order and
// returns the per-repository outcomes. The returned error is reserved for
// run-level problems (owner resolution); individual repository failures are
// reported on their RepoResult and never abort the run.
func (r *Reconciler) Reconcile(ctx context.Context, m *manifest.Manifest) (*Result, error) {
	owner := r.owner
	if owner == "" {
		resolved, err := r.client.CurrentUser(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolving owner: %w", err)
		}
		owner = resolved
	}

	today := utc.Now()
	if r.today != nil {
		today = *r.today
	}

	result := &Result{
		Metadata: Metadata{
			Owner:     owner,
			DryRun:    r.dryRun,
			StartTime: time.Now(),
		},
	}

	for i := range m.Repos {
		result.Repos = append(result.Repos, r.reconcileRepo(ctx, owner, &m.Repos[i], today))
	}

	result.Metadata.EndTime = time.Now()
	result.Metadata.Duration = result.Metadata.EndTime.Sub(result.Metadata.StartTime)
	return result, nil
}

// reconcileRepo plans and applies a single repository. Entries with status
// delete are dispatched before any platform call is made, reads included.
func (r *Reconciler) reconcileRepo(ctx context.Context, owner string, spec *manifest.RepoSpec, today utc.Time) RepoResult {
	log := logging.FromContext(ctx).With().
		Str("repo", spec.Name).
		Str("status", spec.Status.String()).
		Logger()

	res := RepoResult{Name: spec.Name, Status: spec.Status}

	if spec.Status == manifest.StatusDelete {
		log.Info().Msg("Skipping delete entry, repository must be removed manually")
		res.Outcome = OutcomeSkipped
		return res
	}

	state, err := r.client.RepoState(ctx, owner, spec.Name)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read repository state")
		res.Outcome = OutcomeFailed
		res.Err = fmt.Errorf("reading state: %w", err)
		return res
	}

	body, found, err := r.client.FileContent(ctx, owner, spec.Name, r.readmePath)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read README")
		res.Outcome = OutcomeFailed
		res.Err = fmt.Errorf("reading %s: %w", r.readmePath, err)
		return res
	}

	plan := r.plan(spec, state, body, found, today, &res)

	if plan.Empty() {
		log.Debug().Msg("Repository already matches spec")
		res.Outcome = OutcomeUnchanged
		return res
	}
	res.Steps = plan

	if r.dryRun {
		log.Info().Int("steps", len(plan)).Msg("Dry run, not applying plan")
		res.Outcome = OutcomeApplied
		return res
	}

	for _, step := range plan {
		if err := r.apply(ctx, owner, spec.Name, step); err != nil {
			// Fail open: no re-archive after a failed edit. The repository
			// stays unarchived with partial changes and the next run repairs
			// it.
			log.Error().Err(err).Str("step", string(step.Kind)).Msg("Step failed")
			res.Outcome = OutcomeFailed
			res.Err = err
			return res
		}
		log.Debug().Str("step", string(step.Kind)).Msg("Step applied")
	}

	log.Info().Int("steps", len(plan)).Msg("Repository reconciled")
	res.Outcome = OutcomeApplied
	return res
}

// plan builds the ordered step sequence for one repository. Closed dispatch:
// each status has its own branch, and delete never reaches here.
func (r *Reconciler) plan(spec *manifest.RepoSpec, state *platform.RepoState, body string, found bool, today utc.Time, res *RepoResult) Plan {
	if found && banner.Occurrences(body) > 1 {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("%s contains multiple banner lines; keeping the first", r.readmePath))
	}

	switch spec.Status {
	case manifest.StatusActive:
		return r.planLive(spec, state, body, found, platform.VisibilityPublic)
	case manifest.StatusArchived:
		return r.planArchived(spec, state, body, found, today, res)
	case manifest.StatusPrivate:
		return r.planLive(spec, state, body, found, platform.VisibilityPrivate)
	case manifest.StatusDelete:
		// Unreachable: reconcileRepo dispatches delete before planning.
		return nil
	}
	return nil
}

// planLive covers the active and private statuses, which differ only in the
// target visibility: unfreeze, align visibility and description, and strip
// any leftover archive banner.
func (r *Reconciler) planLive(spec *manifest.RepoSpec, state *platform.RepoState, body string, found bool, visibility platform.Visibility) Plan {
	var plan Plan

	if state.Archived {
		plan = append(plan, unarchiveStep())
	}
	if state.Visibility != visibility {
		plan = append(plan, visibilityStep(state.Visibility, visibility))
	}
	if state.Description != spec.Description {
		plan = append(plan, descriptionStep(state.Description, spec.Description))
	}
	if found {
		if existing := banner.Extract(body); existing != nil {
			plan = append(plan, Step{
				Kind: StepCommitReadme,
				Old:  existing.Render(),
				body: banner.Merge(body, nil),
			})
		}
	}
	return plan
}

// planArchived builds the unarchive → edit → re-archive sequence. When the
// repository is already archived and no edit is needed, the plan is empty so
// repeat runs do not churn the archive flag.
func (r *Reconciler) planArchived(spec *manifest.RepoSpec, state *platform.RepoState, body string, found bool, today utc.Time, res *RepoResult) Plan {
	var observed *utc.Time
	oldLine := ""
	if found {
		if existing := banner.Extract(body); existing != nil {
			observed = &existing.Date
			oldLine = existing.Render()
		}
	}

	date, source := banner.ResolveDate(spec.ArchiveDate, observed, today)
	res.DateSource = source

	notice := &banner.Notice{Date: date, Successor: spec.Successor}
	newBody := banner.Merge(body, notice)

	var edits Plan
	if state.Description != spec.Description {
		edits = append(edits, descriptionStep(state.Description, spec.Description))
	}
	if !found || newBody != body {
		edits = append(edits, Step{
			Kind: StepCommitReadme,
			Old:  oldLine,
			New:  notice.Render(),
			body: newBody,
		})
	}
	if state.Visibility != platform.VisibilityPublic {
		edits = append(edits, visibilityStep(state.Visibility, platform.VisibilityPublic))
	}

	if state.Archived && len(edits) == 0 {
		return nil
	}

	var plan Plan
	if state.Archived {
		plan = append(plan, unarchiveStep())
	}
	plan = append(plan, edits...)
	plan = append(plan, Step{Kind: StepArchive, Old: "unarchived", New: "archived", archived: true})
	return plan
}

// apply executes one step against the platform.
func (r *Reconciler) apply(ctx context.Context, owner, repo string, step Step) error {
	switch step.Kind {
	case StepUnarchive, StepArchive:
		return r.client.SetArchived(ctx, owner, repo, step.archived)
	case StepSetVisibility:
		return r.client.SetVisibility(ctx, owner, repo, step.visibility)
	case StepSetDescription:
		return r.client.SetDescription(ctx, owner, repo, step.New)
	case StepCommitReadme:
		return r.client.CommitFile(ctx, owner, repo, r.readmePath, step.body, constants.BannerCommitMessage)
	}
	return errors.NewValidationError("step", string(step.Kind), "unknown step kind")
}

func unarchiveStep() Step {
	return Step{Kind: StepUnarchive, Old: "archived", New: "unarchived", archived: false}
}

func visibilityStep(from, to platform.Visibility) Step {
	return Step{Kind: StepSetVisibility, Old: from.String(), New: to.String(), visibility: to}
}

func descriptionStep(from, to string) Step {
	return Step{Kind: StepSetDescription, Old: from, New: to}
}
