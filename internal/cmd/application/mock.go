// Package application provides a mock Application for command tests.
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/gardener"
	"github.com/agentstation/gardener/cmd/application"
	"github.com/agentstation/gardener/pkg/manifest"
)

// Mock provides a mock implementation of application.Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
//
// Example Usage:
//
//	mock := &application.Mock{
//	    ManifestFunc: func() (*manifest.Manifest, error) {
//	        return testManifest, nil
//	    },
//	    LoggerFunc: func() *zerolog.Logger {
//	        logger := zerolog.Nop()
//	        return &logger
//	    },
//	}
//	cmd := apply.NewCommand(mock)
//	// ... test command
type Mock struct {
	ManifestFunc     func() (*manifest.Manifest, error)
	ManifestPathFunc func() string
	ProfilePathFunc  func() string
	GardenerFunc     func(opts ...gardener.Option) (gardener.Gardener, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Manifest returns a manifest using the mock function or an empty manifest.
func (m *Mock) Manifest() (*manifest.Manifest, error) {
	if m.ManifestFunc != nil {
		return m.ManifestFunc()
	}
	return &manifest.Manifest{}, nil
}

// ManifestPath returns a path using the mock function or "repos.yaml".
func (m *Mock) ManifestPath() string {
	if m.ManifestPathFunc != nil {
		return m.ManifestPathFunc()
	}
	return "repos.yaml"
}

// ProfilePath returns a path using the mock function or "PROFILE_README.md".
func (m *Mock) ProfilePath() string {
	if m.ProfilePathFunc != nil {
		return m.ProfilePathFunc()
	}
	return "PROFILE_README.md"
}

// Gardener returns a gardener using the mock function or nil.
func (m *Mock) Gardener(opts ...gardener.Option) (gardener.Gardener, error) {
	if m.GardenerFunc != nil {
		return m.GardenerFunc(opts...)
	}
	return nil, nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ application.Application = (*Mock)(nil)
