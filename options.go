package gardener

import (
	"github.com/agentstation/utc"

	"github.com/agentstation/gardener/pkg/manifest"
	"github.com/agentstation/gardener/pkg/platform"
)

// config holds the assembled Gardener configuration.
type config struct {
	manifest     *manifest.Manifest
	manifestPath string
	client       platform.Client
	owner        string
	readmePath   string
	today        *utc.Time
}

// Option is a function that configures a Gardener instance.
type Option func(*config) error

// WithManifest supplies an already-parsed manifest. It is validated by New.
func WithManifest(m *manifest.Manifest) Option {
	return func(c *config) error {
		c.manifest = m
		return nil
	}
}

// WithManifestPath loads the manifest from a YAML file.
func WithManifestPath(path string) Option {
	return func(c *config) error {
		c.manifestPath = path
		return nil
	}
}

// WithClient supplies the platform client. The default shells out to the gh
// CLI; tests pass a platform.Mock.
func WithClient(client platform.Client) Option {
	return func(c *config) error {
		c.client = client
		return nil
	}
}

// WithOwner pins the repository owner instead of resolving the authenticated
// user at run time.
func WithOwner(owner string) Option {
	return func(c *config) error {
		c.owner = owner
		return nil
	}
}

// WithReadmePath overrides the in-repository path of the document carrying
// the archive banner.
func WithReadmePath(path string) Option {
	return func(c *config) error {
		c.readmePath = path
		return nil
	}
}

// WithToday pins the date stamped on first-time archive banners.
func WithToday(today utc.Time) Option {
	return func(c *config) error {
		c.today = &today
		return nil
	}
}
