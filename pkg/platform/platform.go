// Package platform defines the capability surface gardener needs from a
// repository hosting platform. Reconciliation code depends only on the Client
// interface; the production implementation shells out to the gh CLI, and the
// Mock in this package backs tests.
package platform

import (
	"context"
	"slices"
)

// Visibility is a repository's visibility on the hosting platform.
type Visibility string

// String returns the string representation of a visibility.
func (v Visibility) String() string {
	return string(v)
}

// Visibilities a repository may have.
const (
	// VisibilityPublic means anyone can see the repository.
	VisibilityPublic Visibility = "public"

	// VisibilityPrivate means only the owner and collaborators can see it.
	VisibilityPrivate Visibility = "private"

	// VisibilityInternal means organization members can see it.
	VisibilityInternal Visibility = "internal"
)

// Visibilities returns all visibility values the platform reports.
func Visibilities() []Visibility {
	return []Visibility{
		VisibilityPublic,
		VisibilityPrivate,
		VisibilityInternal,
	}
}

// IsValid returns true if the Visibility is one of the defined constants.
func (v Visibility) IsValid() bool {
	return slices.Contains(Visibilities(), v)
}

// RepoState is a repository's actual state on the platform, fetched fresh at
// the start of each per-repository reconciliation and never cached across
// runs.
type RepoState struct {
	Archived    bool       // Whether the repository is frozen
	Visibility  Visibility // Current visibility
	Description string     // Current description
}

// Client is the set of platform operations reconciliation needs. Everything
// from CurrentUser through FileContent is read-only; the rest mutate remote
// state and are the calls a dry run must never make.
type Client interface {
	// CurrentUser returns the login of the authenticated account.
	CurrentUser(ctx context.Context) (string, error)

	// RepoState fetches the repository's archive flag, visibility, and
	// description.
	RepoState(ctx context.Context, owner, repo string) (*RepoState, error)

	// FileContent fetches a file from the repository's default branch. A
	// missing file is a normal outcome reported as found=false with a nil
	// error.
	FileContent(ctx context.Context, owner, repo, path string) (content string, found bool, err error)

	// SetArchived freezes or unfreezes the repository. The platform rejects
	// every other mutation while a repository is frozen.
	SetArchived(ctx context.Context, owner, repo string, archived bool) error

	// SetVisibility changes the repository's visibility.
	SetVisibility(ctx context.Context, owner, repo string, visibility Visibility) error

	// SetDescription replaces the repository's description.
	SetDescription(ctx context.Context, owner, repo, description string) error

	// CommitFile writes content to path on the default branch as a single
	// commit, creating the file if it does not exist.
	CommitFile(ctx context.Context, owner, repo, path, content, message string) error
}
