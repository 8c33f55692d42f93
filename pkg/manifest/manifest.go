// Package manifest defines the declarative repository manifest that drives
// reconciliation. The manifest is the single source of truth for each
// repository's desired lifecycle state, description, and profile grouping;
// the hosting platform holds only actual state, fetched fresh every run.
package manifest

import (
	"fmt"
	"strings"

	"github.com/agentstation/utc"

	"github.com/agentstation/gardener/pkg/errors"
)

// Manifest is the parsed repository manifest.
type Manifest struct {
	Repos []RepoSpec `json:"repos" yaml:"repos"` // Repositories in declaration order
}

// RepoSpec declares the desired state of a single repository.
type RepoSpec struct {
	Name        string    `json:"name" yaml:"name"`                                       // Repository name, unique within the manifest
	Status      Status    `json:"status" yaml:"status"`                                   // Desired lifecycle state
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`     // Desired repository description
	Category    Category  `json:"category,omitempty" yaml:"category,omitempty"`           // Grouping hint for the profile document
	Successor   string    `json:"successor,omitempty" yaml:"successor,omitempty"`         // Name of the repository that supersedes this one
	ArchiveDate *utc.Time `json:"archive_date,omitempty" yaml:"archive_date,omitempty"`   // Explicit archive date override (YYYY-MM-DD); ignored unless archived
}

// Repo returns the spec with the given name.
func (m *Manifest) Repo(name string) (*RepoSpec, bool) {
	for i := range m.Repos {
		if m.Repos[i].Name == name {
			return &m.Repos[i], true
		}
	}
	return nil, false
}

// Validate checks the manifest for structural problems. It returns the first
// problem found as a ValidationError naming the offending entry, so a broken
// manifest aborts before any platform call is made.
func (m *Manifest) Validate() error {
	seen := make(map[string]int, len(m.Repos))
	for i, repo := range m.Repos {
		if repo.Name == "" {
			return errors.NewValidationError(
				fmt.Sprintf("repos[%d].name", i), repo.Name, "cannot be empty")
		}
		if prev, ok := seen[repo.Name]; ok {
			return errors.NewValidationError(
				fmt.Sprintf("repos[%d].name", i), repo.Name,
				fmt.Sprintf("duplicate of repos[%d]", prev))
		}
		seen[repo.Name] = i

		if !repo.Status.IsValid() {
			return errors.NewValidationError(
				fmt.Sprintf("repos[%d].status", i), string(repo.Status),
				fmt.Sprintf("repository %q has unknown status (valid: %s)",
					repo.Name, joinStatuses()))
		}
		if repo.Category != "" && !repo.Category.IsValid() {
			return errors.NewValidationError(
				fmt.Sprintf("repos[%d].category", i), string(repo.Category),
				fmt.Sprintf("repository %q has unknown category (valid: %s)",
					repo.Name, joinCategories()))
		}
		if repo.Successor == repo.Name {
			return errors.NewValidationError(
				fmt.Sprintf("repos[%d].successor", i), repo.Successor,
				fmt.Sprintf("repository %q cannot be its own successor", repo.Name))
		}
	}
	return nil
}

func joinStatuses() string {
	parts := make([]string, 0, len(Statuses()))
	for _, s := range Statuses() {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, ", ")
}

func joinCategories() string {
	parts := make([]string, 0, len(Categories()))
	for _, c := range Categories() {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, ", ")
}
