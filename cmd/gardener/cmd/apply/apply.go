package apply

import (
	"context"
	"fmt"
	"os"

	"github.com/agentstation/gardener"
	"github.com/agentstation/gardener/cmd/application"
	"github.com/agentstation/gardener/internal/cmd/emoji"
	"github.com/agentstation/gardener/internal/cmd/output"
	"github.com/agentstation/gardener/internal/cmd/table"
	"github.com/agentstation/gardener/pkg/logging"
	"github.com/agentstation/gardener/pkg/reconcile"
)

// ExecuteApply performs the reconciliation run.
func ExecuteApply(ctx context.Context, app application.Application, flags *Flags) error {
	logger := app.Logger()
	ctx = logging.WithLogger(ctx, logger)

	opts := gardenerOptions(flags)
	g, err := app.Gardener(opts...)
	if err != nil {
		return fmt.Errorf("initializing gardener: %w", err)
	}

	format := output.DetectFormat(app.OutputFormat())
	structured := format == output.FormatJSON || format == output.FormatYAML

	if !structured {
		if flags.DryRun {
			fmt.Fprintf(os.Stderr, "🌱 Previewing reconciliation (dry run)...\n\n")
		} else {
			fmt.Fprintf(os.Stderr, "🌱 Reconciling repositories...\n\n")
		}
	}

	var result *reconcile.Result
	if flags.DryRun {
		result, err = g.Plan(ctx)
	} else {
		result, err = g.Apply(ctx)
	}
	if err != nil {
		return fmt.Errorf("reconciling repositories: %w", err)
	}

	if structured {
		formatter := output.NewFormatter(format)
		if err := formatter.Format(os.Stdout, result); err != nil {
			return fmt.Errorf("formatting output: %w", err)
		}
	} else {
		if err := displayResult(result, flags.DryRun); err != nil {
			return err
		}
	}

	if !flags.DryRun {
		path := flags.Profile
		if path == "" {
			path = app.ProfilePath()
		}
		if err := g.WriteProfile(ctx, path); err != nil {
			return fmt.Errorf("writing profile: %w", err)
		}
		if !structured {
			fmt.Fprintf(os.Stderr, "%s Profile written to %s\n", emoji.Success, path)
		}
	}

	if result.Failed() {
		return fmt.Errorf("%d of %d repositories failed", result.Count(reconcile.OutcomeFailed), len(result.Repos))
	}
	return nil
}

// gardenerOptions translates command flags into gardener options. Empty
// flags fall through to the app-level configuration.
func gardenerOptions(flags *Flags) []gardener.Option {
	var opts []gardener.Option
	if flags.Manifest != "" {
		opts = append(opts, gardener.WithManifestPath(flags.Manifest))
	}
	if flags.Owner != "" {
		opts = append(opts, gardener.WithOwner(flags.Owner))
	}
	return opts
}

// displayResult prints the per-repository summary table, then per-repository
// step detail and warnings.
func displayResult(result *reconcile.Result, dryRun bool) error {
	formatter := output.NewFormatter(output.FormatTable)
	if err := formatter.Format(os.Stdout, table.ResultToTableData(result)); err != nil {
		return fmt.Errorf("formatting result: %w", err)
	}
	fmt.Println()

	for _, repo := range result.Repos {
		for _, w := range repo.Warnings {
			fmt.Fprintf(os.Stderr, "%s %s: %s\n", emoji.Warning, repo.Name, w)
		}
		if repo.Err != nil {
			fmt.Fprintf(os.Stderr, "%s %s: %v\n", emoji.Error, repo.Name, repo.Err)
		}
	}

	if dryRun {
		for _, repo := range result.Repos {
			if len(repo.Steps) == 0 {
				continue
			}
			fmt.Printf("%s:\n", repo.Name)
			if repo.DateSource != "" {
				fmt.Printf("  banner date: %s\n", repo.DateSource)
			}
			if err := formatter.Format(os.Stdout, table.StepsToTableData(repo.Steps)); err != nil {
				return fmt.Errorf("formatting steps: %w", err)
			}
			fmt.Println()
		}
	}

	symbol := emoji.Success
	if result.Failed() {
		symbol = emoji.Error
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", symbol, result.Summary())
	return nil
}
