// Package validate provides the validate command implementation.
package validate

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/gardener/cmd/application"
	"github.com/agentstation/gardener/internal/cmd/emoji"
	"github.com/agentstation/gardener/internal/cmd/output"
	"github.com/agentstation/gardener/internal/cmd/table"
	"github.com/agentstation/gardener/pkg/manifest"
)

// NewCommand creates the validate command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:     "validate",
		GroupID: "management",
		Short:   "Validate the manifest",
		Long: `Validate parses the manifest and checks every entry: names must be
non-empty and unique, statuses and categories must be known values, and
archive dates must be well-formed. The first offending entry is named.`,
		Example: `  gardener validate                       # Validate repos.yaml
  gardener validate --manifest other.yaml # Validate an alternate manifest`,
		RunE: func(_ *cobra.Command, _ []string) error {
			path := manifestPath
			if path == "" {
				path = app.ManifestPath()
			}
			m, err := manifest.Load(path)
			if err != nil {
				return fmt.Errorf("loading manifest: %w", err)
			}

			format := output.DetectFormat(app.OutputFormat())
			if format == output.FormatTable {
				formatter := output.NewFormatter(output.FormatTable)
				if err := formatter.Format(os.Stdout, table.ManifestToTableData(m)); err != nil {
					return fmt.Errorf("formatting manifest: %w", err)
				}
			}

			fmt.Fprintf(os.Stderr, "%s %s: %d repositories, all entries valid\n", emoji.Success, path, len(m.Repos))
			return nil
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "manifest file (default is repos.yaml)")

	return cmd
}
