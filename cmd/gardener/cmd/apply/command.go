// Package apply provides the apply command implementation.
package apply

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/gardener/cmd/application"
)

// Flags holds the apply-specific command flags.
type Flags struct {
	DryRun   bool
	Manifest string
	Profile  string
	Owner    string
}

// NewCommand creates the apply command using app context.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "apply",
		GroupID: "core",
		Short:   "Reconcile repositories against the manifest",
		Long: `Apply brings every repository listed in the manifest in line with its
declared state:

• active repositories are unarchived, made public, and lose any archive banner
• archived repositories are frozen with a dated banner in their README
• private repositories are hidden and lose any archive banner
• delete entries are never touched; removal stays a manual act

Archived repositories that need edits are unarchived first, edited, then
re-archived, because the platform refuses edits on frozen repositories.
A failure on one repository is reported and the run continues with the next.

After reconciliation the profile document is regenerated from the manifest
and overwritten wholesale.`,
		Example: `  gardener apply                        # Reconcile all repositories
  gardener apply --dry-run              # Preview changes, mutate nothing
  gardener apply --manifest other.yaml  # Use an alternate manifest
  gardener apply --owner octocat        # Skip owner auto-detection`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ExecuteApply(cmd.Context(), app, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "show intended changes without applying them")
	cmd.Flags().StringVar(&flags.Manifest, "manifest", "", "manifest file (default is repos.yaml)")
	cmd.Flags().StringVar(&flags.Profile, "profile", "", "profile document path (default is PROFILE_README.md)")
	cmd.Flags().StringVar(&flags.Owner, "owner", "", "repository owner (default is the authenticated user)")

	return cmd
}
