// Package app provides the application context and dependency management
// for the gardener CLI. It follows idiomatic Go patterns for CLI applications
// by centralizing configuration, dependency injection, and lifecycle
// management.
package app

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/gardener"
	"github.com/agentstation/gardener/cmd/application"
	"github.com/agentstation/gardener/pkg/errors"
	"github.com/agentstation/gardener/pkg/manifest"
)

// App represents the gardener application with all its dependencies.
// It provides a centralized place for configuration, logging, and gardener
// construction, following the dependency injection pattern.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger
}

// New creates a new App instance with the given version information.
// The app is initialized with configuration loaded from the environment,
// .env files, and the config file, which can be customized using functional
// options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("app", "loading configuration", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// ManifestPath returns the configured manifest file path.
func (a *App) ManifestPath() string {
	return a.config.ManifestPath
}

// ProfilePath returns the configured profile document path.
func (a *App) ProfilePath() string {
	return a.config.ProfilePath
}

// Manifest loads and validates the configured manifest.
func (a *App) Manifest() (*manifest.Manifest, error) {
	return manifest.Load(a.config.ManifestPath)
}

// Gardener returns a gardener built from the app configuration. Per-command
// options are applied on top of the configured defaults.
func (a *App) Gardener(opts ...gardener.Option) (gardener.Gardener, error) {
	base := []gardener.Option{
		gardener.WithManifestPath(a.config.ManifestPath),
	}
	if a.config.Owner != "" {
		base = append(base, gardener.WithOwner(a.config.Owner))
	}
	return gardener.New(append(base, opts...)...)
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// Ensure App implements the command-facing interface at compile time.
var _ application.Application = (*App)(nil)
