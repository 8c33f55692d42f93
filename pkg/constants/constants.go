// Package constants provides shared constants used throughout the gardener codebase.
// This includes timeouts, file permissions, default paths, and other configuration
// values that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// PlatformCallTimeout is the timeout for a single platform API call
	PlatformCallTimeout = 2 * time.Minute

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for sensitive files like tokens (rw-------)
	SecureFilePermissions = 0600
)

// Limit constants define various limits and capacities
const (
	// MaxDescriptionLength is the maximum repository description length the
	// platform accepts
	MaxDescriptionLength = 350

	// OutputBufferSize is the maximum size of captured command output in bytes
	OutputBufferSize = 30000
)

// Path constants
const (
	// DefaultManifestFile is the default manifest path relative to the working directory
	DefaultManifestFile = "repos.yaml"

	// DefaultProfileFile is the default path for the generated profile document
	DefaultProfileFile = "PROFILE_README.md"

	// DefaultReadmePath is the in-repository path of the document carrying the
	// archive banner
	DefaultReadmePath = "README.md"

	// DefaultConfigPath is the default path for configuration files
	DefaultConfigPath = "~/.gardener.yaml"
)

// Format constants
const (
	// DateFormat is the calendar date format used in manifests and banners
	DateFormat = "2006-01-02"

	// TimeFormatLog is the format used in log files
	TimeFormatLog = "2006-01-02 15:04:05.000"
)

// External resource constants
const (
	// GitHubURL is the base URL for repository links
	GitHubURL = "https://github.com"

	// BannerCommitMessage is the commit message used when syncing the archive banner
	BannerCommitMessage = "docs: sync archive banner"
)

// Error messages
const (
	// ErrMsgRepoNotFound is the standard error message for missing repositories
	ErrMsgRepoNotFound = "repository not found"

	// ErrMsgTimeout is the standard error message for timeouts
	ErrMsgTimeout = "operation timed out"
)
