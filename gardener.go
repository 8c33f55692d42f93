// Package gardener reconciles a declarative manifest of repository metadata
// against the hosting platform and derives a profile document from it. The
// library ties the pieces together: the manifest model, the per-repository
// status reconciler, and the profile aggregator, all driven through an
// explicit platform capability rather than ambient state.
package gardener

import (
	"context"
	"fmt"

	"github.com/agentstation/gardener/internal/gh"
	"github.com/agentstation/gardener/pkg/constants"
	"github.com/agentstation/gardener/pkg/errors"
	"github.com/agentstation/gardener/pkg/manifest"
	"github.com/agentstation/gardener/pkg/platform"
	"github.com/agentstation/gardener/pkg/profile"
	"github.com/agentstation/gardener/pkg/reconcile"
)

// Gardener plans and applies repository reconciliation for one manifest.
type Gardener interface {
	// Manifest returns the loaded manifest.
	Manifest() *manifest.Manifest

	// Plan computes every repository's intended changes without mutating
	// anything. Reads against the platform still happen.
	Plan(ctx context.Context) (*reconcile.Result, error)

	// Apply reconciles every repository, sequentially in manifest order.
	Apply(ctx context.Context) (*reconcile.Result, error)

	// Profile groups the manifest into profile document sections.
	Profile() []profile.Section

	// WriteProfile renders the profile document and overwrites path
	// wholesale.
	WriteProfile(ctx context.Context, path string) error
}

// gardener is the internal implementation of the Gardener interface.
type gardener struct {
	config   *config
	manifest *manifest.Manifest
	client   platform.Client
}

// New creates a Gardener from the given options. A manifest must be supplied
// via WithManifest or WithManifestPath; the platform client defaults to the
// gh CLI.
func New(opts ...Option) (Gardener, error) {
	g := &gardener{config: defaultConfig()}

	for _, opt := range opts {
		if err := opt(g.config); err != nil {
			return nil, fmt.Errorf("applying option: %w", err)
		}
	}

	switch {
	case g.config.manifest != nil:
		g.manifest = g.config.manifest
		if err := g.manifest.Validate(); err != nil {
			return nil, err
		}
	case g.config.manifestPath != "":
		m, err := manifest.Load(g.config.manifestPath)
		if err != nil {
			return nil, err
		}
		g.manifest = m
	default:
		return nil, errors.NewConfigError("gardener", "no manifest configured", nil)
	}

	g.client = g.config.client
	if g.client == nil {
		g.client = gh.New()
	}

	return g, nil
}

// Manifest returns the loaded manifest.
func (g *gardener) Manifest() *manifest.Manifest {
	return g.manifest
}

// Plan runs a dry reconciliation: same reads, same decisions, no mutations.
func (g *gardener) Plan(ctx context.Context) (*reconcile.Result, error) {
	r, err := g.reconciler(true)
	if err != nil {
		return nil, err
	}
	return r.Reconcile(ctx, g.manifest)
}

// Apply reconciles the manifest against the platform.
func (g *gardener) Apply(ctx context.Context) (*reconcile.Result, error) {
	r, err := g.reconciler(false)
	if err != nil {
		return nil, err
	}
	return r.Reconcile(ctx, g.manifest)
}

// Profile groups the manifest into profile sections.
func (g *gardener) Profile() []profile.Section {
	return profile.Aggregate(g.manifest.Repos)
}

// WriteProfile renders the profile document to path, resolving the owner
// from the platform when none was configured.
func (g *gardener) WriteProfile(ctx context.Context, path string) error {
	owner := g.config.owner
	if owner == "" {
		resolved, err := g.client.CurrentUser(ctx)
		if err != nil {
			return fmt.Errorf("resolving owner: %w", err)
		}
		owner = resolved
	}
	return profile.WriteFile(path, owner, g.Profile())
}

// reconciler builds the status reconciler from the configured options.
func (g *gardener) reconciler(dryRun bool) (*reconcile.Reconciler, error) {
	opts := []reconcile.Option{reconcile.WithDryRun(dryRun)}
	if g.config.owner != "" {
		opts = append(opts, reconcile.WithOwner(g.config.owner))
	}
	if g.config.readmePath != "" {
		opts = append(opts, reconcile.WithReadmePath(g.config.readmePath))
	}
	if g.config.today != nil {
		opts = append(opts, reconcile.WithToday(*g.config.today))
	}
	return reconcile.New(g.client, opts...)
}

// defaultConfig returns the baseline configuration.
func defaultConfig() *config {
	return &config{
		readmePath: constants.DefaultReadmePath,
	}
}
