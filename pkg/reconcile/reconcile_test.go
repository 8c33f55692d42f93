package reconcile_test

import (
	"context"
	"testing"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/gardener/pkg/banner"
	"github.com/agentstation/gardener/pkg/errors"
	"github.com/agentstation/gardener/pkg/manifest"
	"github.com/agentstation/gardener/pkg/platform"
	"github.com/agentstation/gardener/pkg/reconcile"
)

const owner = "octocat"

func date(t *testing.T, s string) utc.Time {
	t.Helper()
	d, err := utc.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

// fakeRepo is mutable remote state backing the platform mock, so repeat runs
// observe the effect of earlier ones.
type fakeRepo struct {
	state     platform.RepoState
	readme    string
	hasReadme bool
}

func newFakeClient(repos map[string]*fakeRepo) *platform.Mock {
	return &platform.Mock{
		CurrentUserFunc: func(ctx context.Context) (string, error) {
			return owner, nil
		},
		RepoStateFunc: func(ctx context.Context, _, repo string) (*platform.RepoState, error) {
			r, ok := repos[repo]
			if !ok {
				return nil, errors.NewNotFoundError("repository", repo)
			}
			state := r.state
			return &state, nil
		},
		FileContentFunc: func(ctx context.Context, _, repo, path string) (string, bool, error) {
			r, ok := repos[repo]
			if !ok {
				return "", false, errors.NewNotFoundError("repository", repo)
			}
			return r.readme, r.hasReadme, nil
		},
		SetArchivedFunc: func(ctx context.Context, _, repo string, archived bool) error {
			repos[repo].state.Archived = archived
			return nil
		},
		SetVisibilityFunc: func(ctx context.Context, _, repo string, v platform.Visibility) error {
			repos[repo].state.Visibility = v
			return nil
		},
		SetDescriptionFunc: func(ctx context.Context, _, repo, description string) error {
			repos[repo].state.Description = description
			return nil
		},
		CommitFileFunc: func(ctx context.Context, _, repo, path, content, message string) error {
			repos[repo].readme = content
			repos[repo].hasReadme = true
			return nil
		},
	}
}

func newReconciler(t *testing.T, client platform.Client, opts ...reconcile.Option) *reconcile.Reconciler {
	t.Helper()
	opts = append([]reconcile.Option{
		reconcile.WithOwner(owner),
		reconcile.WithToday(date(t, "2026-08-21")),
	}, opts...)
	r, err := reconcile.New(client, opts...)
	require.NoError(t, err)
	return r
}

func singleRepoManifest(spec manifest.RepoSpec) *manifest.Manifest {
	return &manifest.Manifest{Repos: []manifest.RepoSpec{spec}}
}

func TestNewRequiresClient(t *testing.T) {
	_, err := reconcile.New(nil)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestArchiveNewRepo(t *testing.T) {
	// An active repo becomes archived with a successor and no explicit date.
	repos := map[string]*fakeRepo{
		"old-tool": {
			state:     platform.RepoState{Visibility: platform.VisibilityPublic},
			readme:    "# old-tool\nSome text.\n",
			hasReadme: true,
		},
	}
	mock := newFakeClient(repos)
	r := newReconciler(t, mock)

	result, err := r.Reconcile(context.Background(), singleRepoManifest(manifest.RepoSpec{
		Name:        "old-tool",
		Status:      manifest.StatusArchived,
		Description: "Legacy CLI",
		Category:    manifest.CategoryExperiment,
		Successor:   "new-tool",
	}))
	require.NoError(t, err)

	res, ok := result.Repo("old-tool")
	require.True(t, ok)
	assert.Equal(t, reconcile.OutcomeApplied, res.Outcome)
	assert.Equal(t, banner.DateNew, res.DateSource)
	require.NoError(t, res.Err)

	want := "# old-tool\n\n> ⚠️ Archived 2026-08-21. No longer maintained. See new-tool instead.\n\nSome text.\n"
	assert.Equal(t, want, repos["old-tool"].readme)
	assert.Equal(t, "Legacy CLI", repos["old-tool"].state.Description)
	assert.True(t, repos["old-tool"].state.Archived)

	// Already unarchived, so no unarchive call; edits precede the archive.
	assert.Equal(t, []string{
		"RepoState", "FileContent", "SetDescription", "CommitFile", "SetArchived",
	}, mock.MethodsFor(owner+"/old-tool"))
}

func TestArchivedStepOrdering(t *testing.T) {
	// Currently archived with stale metadata: unarchive must come first and
	// re-archive last.
	repos := map[string]*fakeRepo{
		"old-tool": {
			state: platform.RepoState{
				Archived:    true,
				Visibility:  platform.VisibilityPublic,
				Description: "stale",
			},
			readme:    "# old-tool\n\nSome text.\n",
			hasReadme: true,
		},
	}
	mock := newFakeClient(repos)
	r := newReconciler(t, mock)

	result, err := r.Reconcile(context.Background(), singleRepoManifest(manifest.RepoSpec{
		Name:        "old-tool",
		Status:      manifest.StatusArchived,
		Description: "Legacy CLI",
	}))
	require.NoError(t, err)

	res, _ := result.Repo("old-tool")
	assert.Equal(t, reconcile.OutcomeApplied, res.Outcome)
	assert.Equal(t, []reconcile.StepKind{
		reconcile.StepUnarchive,
		reconcile.StepSetDescription,
		reconcile.StepCommitReadme,
		reconcile.StepArchive,
	}, reconcile.Plan(res.Steps).Kinds())

	methods := mock.MethodsFor(owner + "/old-tool")
	assert.Equal(t, []string{
		"RepoState", "FileContent", "SetArchived", "SetDescription", "CommitFile", "SetArchived",
	}, methods)
	assert.True(t, repos["old-tool"].state.Archived)
}

func TestIdempotence(t *testing.T) {
	repos := map[string]*fakeRepo{
		"old-tool": {
			state:     platform.RepoState{Visibility: platform.VisibilityPublic},
			readme:    "# old-tool\nSome text.\n",
			hasReadme: true,
		},
	}
	mock := newFakeClient(repos)
	r := newReconciler(t, mock)
	m := singleRepoManifest(manifest.RepoSpec{
		Name:      "old-tool",
		Status:    manifest.StatusArchived,
		Successor: "new-tool",
	})

	_, err := r.Reconcile(context.Background(), m)
	require.NoError(t, err)
	afterFirst := repos["old-tool"].readme

	mock.Reset()
	result, err := r.Reconcile(context.Background(), m)
	require.NoError(t, err)

	res, _ := result.Repo("old-tool")
	assert.Equal(t, reconcile.OutcomeUnchanged, res.Outcome)
	assert.Empty(t, res.Steps)
	assert.Empty(t, mock.MutatingCalls(), "second run must not touch the archive flag or content")
	assert.Equal(t, afterFirst, repos["old-tool"].readme)
}

func TestDateResolution(t *testing.T) {
	explicit := date(t, "2024-02-02")
	archivedBody := "# old-tool\n\n> ⚠️ Archived 2023-01-01. No longer maintained.\n\nText.\n"

	tests := []struct {
		name       string
		spec       manifest.RepoSpec
		readme     string
		wantDate   string
		wantSource banner.DateSource
	}{
		{
			name:       "existing date preserved",
			spec:       manifest.RepoSpec{Name: "old-tool", Status: manifest.StatusArchived},
			readme:     archivedBody,
			wantDate:   "2023-01-01",
			wantSource: banner.DatePreserved,
		},
		{
			name: "explicit date overrides observed",
			spec: manifest.RepoSpec{
				Name: "old-tool", Status: manifest.StatusArchived, ArchiveDate: &explicit,
			},
			readme:     archivedBody,
			wantDate:   "2024-02-02",
			wantSource: banner.DateOverridden,
		},
		{
			name:       "no banner stamps today",
			spec:       manifest.RepoSpec{Name: "old-tool", Status: manifest.StatusArchived},
			readme:     "# old-tool\n\nText.\n",
			wantDate:   "2026-08-21",
			wantSource: banner.DateNew,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := map[string]*fakeRepo{
				"old-tool": {
					state:     platform.RepoState{Visibility: platform.VisibilityPublic},
					readme:    tt.readme,
					hasReadme: true,
				},
			}
			r := newReconciler(t, newFakeClient(repos))

			result, err := r.Reconcile(context.Background(), singleRepoManifest(tt.spec))
			require.NoError(t, err)

			res, _ := result.Repo("old-tool")
			assert.Equal(t, tt.wantSource, res.DateSource)

			n := banner.Extract(repos["old-tool"].readme)
			require.NotNil(t, n)
			assert.Equal(t, tt.wantDate, n.Date.Format("2006-01-02"))
		})
	}
}

func TestDeleteSafety(t *testing.T) {
	// A delete entry must trigger zero platform calls, reads included, no
	// matter what the remote state looks like.
	repos := map[string]*fakeRepo{
		"junk": {
			state:     platform.RepoState{Archived: true, Visibility: platform.VisibilityPublic},
			readme:    "> ⚠️ Archived 2023-01-01. No longer maintained.\n",
			hasReadme: true,
		},
	}
	mock := newFakeClient(repos)
	r := newReconciler(t, mock)

	result, err := r.Reconcile(context.Background(), singleRepoManifest(manifest.RepoSpec{
		Name:   "junk",
		Status: manifest.StatusDelete,
	}))
	require.NoError(t, err)

	res, _ := result.Repo("junk")
	assert.Equal(t, reconcile.OutcomeSkipped, res.Outcome)
	assert.Empty(t, mock.CallsFor(owner+"/junk"))
	assert.False(t, result.Failed(), "skipped deletes are not failures")
}

func TestActiveStripsBanner(t *testing.T) {
	repos := map[string]*fakeRepo{
		"widget": {
			state: platform.RepoState{
				Archived:   true,
				Visibility: platform.VisibilityPrivate,
			},
			readme:    "# widget\n\n> ⚠️ Archived 2023-01-01. No longer maintained.\n\nText.\n",
			hasReadme: true,
		},
	}
	mock := newFakeClient(repos)
	r := newReconciler(t, mock)

	result, err := r.Reconcile(context.Background(), singleRepoManifest(manifest.RepoSpec{
		Name:        "widget",
		Status:      manifest.StatusActive,
		Description: "A tool",
	}))
	require.NoError(t, err)

	res, _ := result.Repo("widget")
	assert.Equal(t, reconcile.OutcomeApplied, res.Outcome)
	assert.Equal(t, []reconcile.StepKind{
		reconcile.StepUnarchive,
		reconcile.StepSetVisibility,
		reconcile.StepSetDescription,
		reconcile.StepCommitReadme,
	}, reconcile.Plan(res.Steps).Kinds())

	assert.Equal(t, "# widget\n\nText.\n", repos["widget"].readme)
	assert.False(t, repos["widget"].state.Archived)
	assert.Equal(t, platform.VisibilityPublic, repos["widget"].state.Visibility)
}

func TestPrivateRepo(t *testing.T) {
	repos := map[string]*fakeRepo{
		"secrets": {
			state: platform.RepoState{Visibility: platform.VisibilityPublic},
		},
	}
	mock := newFakeClient(repos)
	r := newReconciler(t, mock)

	result, err := r.Reconcile(context.Background(), singleRepoManifest(manifest.RepoSpec{
		Name:   "secrets",
		Status: manifest.StatusPrivate,
	}))
	require.NoError(t, err)

	res, _ := result.Repo("secrets")
	assert.Equal(t, reconcile.OutcomeApplied, res.Outcome)
	assert.Equal(t, platform.VisibilityPrivate, repos["secrets"].state.Visibility)

	// Already private: second run is a no-op.
	mock.Reset()
	result, err = r.Reconcile(context.Background(), singleRepoManifest(manifest.RepoSpec{
		Name:   "secrets",
		Status: manifest.StatusPrivate,
	}))
	require.NoError(t, err)
	res, _ = result.Repo("secrets")
	assert.Equal(t, reconcile.OutcomeUnchanged, res.Outcome)
	assert.Empty(t, mock.MutatingCalls())
}

func TestDryRunMakesNoMutatingCalls(t *testing.T) {
	repos := map[string]*fakeRepo{
		"old-tool": {
			state:     platform.RepoState{Visibility: platform.VisibilityPublic},
			readme:    "# old-tool\nSome text.\n",
			hasReadme: true,
		},
	}
	mock := newFakeClient(repos)
	r := newReconciler(t, mock, reconcile.WithDryRun(true))

	result, err := r.Reconcile(context.Background(), singleRepoManifest(manifest.RepoSpec{
		Name:      "old-tool",
		Status:    manifest.StatusArchived,
		Successor: "new-tool",
	}))
	require.NoError(t, err)

	res, _ := result.Repo("old-tool")
	assert.Equal(t, reconcile.OutcomeApplied, res.Outcome)
	assert.Equal(t, banner.DateNew, res.DateSource)
	assert.True(t, result.Metadata.DryRun)
	assert.Empty(t, mock.MutatingCalls())
	assert.Equal(t, "# old-tool\nSome text.\n", repos["old-tool"].readme)

	// The dry-run plan names the same decisions a real run would apply.
	kinds := reconcile.Plan(res.Steps).Kinds()
	assert.Equal(t, []reconcile.StepKind{reconcile.StepCommitReadme, reconcile.StepArchive}, kinds)
	assert.Contains(t, res.Steps[0].New, "Archived 2026-08-21")
}

func TestFailOpenOnCommitFailure(t *testing.T) {
	repos := map[string]*fakeRepo{
		"old-tool": {
			state:     platform.RepoState{Archived: true, Visibility: platform.VisibilityPublic},
			readme:    "# old-tool\n\nText.\n",
			hasReadme: true,
		},
		"widget": {
			state: platform.RepoState{Visibility: platform.VisibilityPublic, Description: "stale"},
		},
	}
	mock := newFakeClient(repos)
	mock.CommitFileFunc = func(ctx context.Context, _, repo, path, content, message string) error {
		return errors.NewPlatformError("commit file", owner+"/"+repo, 500, "boom")
	}
	r := newReconciler(t, mock)

	result, err := r.Reconcile(context.Background(), &manifest.Manifest{Repos: []manifest.RepoSpec{
		{Name: "old-tool", Status: manifest.StatusArchived},
		{Name: "widget", Status: manifest.StatusActive, Description: "fresh"},
	}})
	require.NoError(t, err)

	res, _ := result.Repo("old-tool")
	assert.Equal(t, reconcile.OutcomeFailed, res.Outcome)
	require.Error(t, res.Err)

	// Fail open: the repository must be left unarchived, never re-frozen
	// around partial edits.
	assert.False(t, repos["old-tool"].state.Archived)
	methods := mock.MethodsFor(owner + "/old-tool")
	assert.Equal(t, "SetArchived", methods[2])
	assert.NotContains(t, methods[3:], "SetArchived")

	// Partial-failure isolation: the next repository is still processed.
	widget, _ := result.Repo("widget")
	assert.Equal(t, reconcile.OutcomeApplied, widget.Outcome)
	assert.Equal(t, "fresh", repos["widget"].state.Description)

	assert.True(t, result.Failed())
	assert.Equal(t, "1 applied, 0 unchanged, 0 skipped, 1 failed", result.Summary())
}

func TestStateReadFailureFailsWithoutMutation(t *testing.T) {
	mock := &platform.Mock{
		RepoStateFunc: func(ctx context.Context, _, repo string) (*platform.RepoState, error) {
			return nil, errors.NewPlatformError("get state", owner+"/"+repo, 403, "rate limited")
		},
	}
	r := newReconciler(t, mock)

	result, err := r.Reconcile(context.Background(), singleRepoManifest(manifest.RepoSpec{
		Name:   "old-tool",
		Status: manifest.StatusArchived,
	}))
	require.NoError(t, err)

	res, _ := result.Repo("old-tool")
	assert.Equal(t, reconcile.OutcomeFailed, res.Outcome)
	assert.True(t, errors.IsRateLimited(res.Err))
	assert.Empty(t, mock.MutatingCalls())
}

func TestMultipleBannerWarning(t *testing.T) {
	repos := map[string]*fakeRepo{
		"old-tool": {
			state: platform.RepoState{Archived: true, Visibility: platform.VisibilityPublic},
			readme: "> ⚠️ Archived 2023-01-01. No longer maintained.\n\n" +
				"> ⚠️ Archived 2024-02-02. No longer maintained.\n",
			hasReadme: true,
		},
	}
	r := newReconciler(t, newFakeClient(repos), reconcile.WithDryRun(true))

	result, err := r.Reconcile(context.Background(), singleRepoManifest(manifest.RepoSpec{
		Name:   "old-tool",
		Status: manifest.StatusArchived,
	}))
	require.NoError(t, err)

	res, _ := result.Repo("old-tool")
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "multiple banner lines")
	assert.True(t, result.HasWarnings())

	// First banner is canonical, so its date is the one preserved.
	assert.Equal(t, banner.DatePreserved, res.DateSource)
}

func TestMissingReadmeIsCreated(t *testing.T) {
	repos := map[string]*fakeRepo{
		"old-tool": {
			state: platform.RepoState{Visibility: platform.VisibilityPublic},
		},
	}
	r := newReconciler(t, newFakeClient(repos))

	result, err := r.Reconcile(context.Background(), singleRepoManifest(manifest.RepoSpec{
		Name:   "old-tool",
		Status: manifest.StatusArchived,
	}))
	require.NoError(t, err)

	res, _ := result.Repo("old-tool")
	assert.Equal(t, reconcile.OutcomeApplied, res.Outcome)
	assert.True(t, repos["old-tool"].hasReadme)
	assert.Equal(t, "> ⚠️ Archived 2026-08-21. No longer maintained.\n", repos["old-tool"].readme)
}

func TestOwnerResolvedFromCurrentUser(t *testing.T) {
	mock := newFakeClient(map[string]*fakeRepo{
		"widget": {state: platform.RepoState{Visibility: platform.VisibilityPublic}},
	})
	r, err := reconcile.New(mock)
	require.NoError(t, err)

	result, err := r.Reconcile(context.Background(), singleRepoManifest(manifest.RepoSpec{
		Name:   "widget",
		Status: manifest.StatusActive,
	}))
	require.NoError(t, err)
	assert.Equal(t, owner, result.Metadata.Owner)
	assert.Equal(t, "CurrentUser", mock.Calls()[0].Method)
}
