// Package profile provides the profile command implementation.
package profile

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/gardener"
	"github.com/agentstation/gardener/cmd/application"
	"github.com/agentstation/gardener/internal/cmd/emoji"
	"github.com/agentstation/gardener/pkg/logging"
)

// NewCommand creates the profile command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var (
		manifestPath string
		outputPath   string
		owner        string
	)

	cmd := &cobra.Command{
		Use:     "profile",
		GroupID: "core",
		Short:   "Regenerate the profile document from the manifest",
		Long: `Profile derives the showcase document from the manifest alone, without
touching any repository. Sections appear in a fixed order and empty
sections are omitted; the target file is overwritten wholesale.`,
		Example: `  gardener profile                      # Write PROFILE_README.md
  gardener profile --output README.md   # Write an alternate path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := logging.WithLogger(cmd.Context(), app.Logger())

			var opts []gardener.Option
			if manifestPath != "" {
				opts = append(opts, gardener.WithManifestPath(manifestPath))
			}
			if owner != "" {
				opts = append(opts, gardener.WithOwner(owner))
			}
			g, err := app.Gardener(opts...)
			if err != nil {
				return fmt.Errorf("initializing gardener: %w", err)
			}

			path := outputPath
			if path == "" {
				path = app.ProfilePath()
			}
			if err := g.WriteProfile(ctx, path); err != nil {
				return fmt.Errorf("writing profile: %w", err)
			}

			fmt.Fprintf(os.Stderr, "%s Profile written to %s\n", emoji.Success, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "manifest file (default is repos.yaml)")
	cmd.Flags().StringVar(&outputPath, "output", "", "profile document path (default is PROFILE_README.md)")
	cmd.Flags().StringVar(&owner, "owner", "", "repository owner (default is the authenticated user)")

	return cmd
}
