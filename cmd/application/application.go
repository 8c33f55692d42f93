// Package application provides the application interface for gardener
// commands.
//
// The Application interface defines the contract between the application
// layer and command implementations, enabling dependency injection and
// testability.
//
// Design Principles:
//   - Accept interfaces, return structs (Go proverb)
//   - Define interfaces where they're used, not where they're implemented
//   - Keep interfaces small and focused
//
// Usage in Commands:
//
//	import (
//	    "github.com/agentstation/gardener/cmd/application"
//	)
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            g, err := app.Gardener()
//	            if err != nil {
//	                return err
//	            }
//	            // ... use g
//	            return nil
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    GardenerFunc: func(opts ...gardener.Option) (gardener.Gardener, error) {
//	        return testGardener, nil
//	    },
//	    LoggerFunc: func() *zerolog.Logger {
//	        logger := zerolog.Nop()
//	        return &logger
//	    },
//	}
//	cmd := NewCommand(mock)
//	// ... test command behavior
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/gardener"
	"github.com/agentstation/gardener/pkg/manifest"
)

// Application provides the application interface that commands need.
// The App struct from cmd/gardener/app implements this interface; commands
// accept the interface rather than the concrete App type, allowing for
// easier testing with mock implementations.
type Application interface {
	// Manifest loads and validates the configured manifest.
	Manifest() (*manifest.Manifest, error)

	// ManifestPath returns the configured manifest file path.
	ManifestPath() string

	// ProfilePath returns the configured profile document path.
	ProfilePath() string

	// Gardener returns a gardener built from the app configuration. Options
	// are applied on top, so commands can layer per-invocation settings such
	// as a pinned owner.
	Gardener(opts ...gardener.Option) (gardener.Gardener, error)

	// Logger returns the configured logger instance.
	// Commands should use this for all logging operations.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, etc).
	// Commands that support different output formats should use this.
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
