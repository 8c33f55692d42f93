package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/gardener/cmd/gardener/cmd/apply"
	"github.com/agentstation/gardener/cmd/gardener/cmd/profile"
	"github.com/agentstation/gardener/cmd/gardener/cmd/validate"
)

// registerCommands registers all subcommands with the root command.
// This is where we wire up all the command handlers.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(apply.NewCommand(a))
	rootCmd.AddCommand(profile.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(validate.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.newVersionCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("gardener %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
