package profile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/gardener"
	appmock "github.com/agentstation/gardener/internal/cmd/application"
	"github.com/agentstation/gardener/pkg/manifest"
	"github.com/agentstation/gardener/pkg/platform"
)

func testApp() *appmock.Mock {
	m := &manifest.Manifest{
		Repos: []manifest.RepoSpec{
			{Name: "web-app", Status: manifest.StatusActive, Description: "Main web application"},
			{Name: "old-tool", Status: manifest.StatusArchived, Category: manifest.CategoryExperiment},
		},
	}
	client := &platform.Mock{
		CurrentUserFunc: func(_ context.Context) (string, error) { return "octocat", nil },
	}
	return &appmock.Mock{
		GardenerFunc: func(opts ...gardener.Option) (gardener.Gardener, error) {
			base := []gardener.Option{
				gardener.WithManifest(m),
				gardener.WithClient(client),
			}
			return gardener.New(append(base, opts...)...)
		},
	}
}

func TestProfileWritesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "PROFILE_README.md")
	cmd := NewCommand(testApp())
	require.NoError(t, cmd.Flags().Set("output", path))
	cmd.SetContext(context.Background())

	err := cmd.RunE(cmd, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "web-app")
	assert.Contains(t, string(data), "github.com/octocat/web-app")
}

func TestProfilePinnedOwnerSkipsLookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "PROFILE_README.md")
	cmd := NewCommand(testApp())
	require.NoError(t, cmd.Flags().Set("output", path))
	require.NoError(t, cmd.Flags().Set("owner", "orgbot"))
	cmd.SetContext(context.Background())

	err := cmd.RunE(cmd, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "github.com/orgbot/web-app")
}

func TestProfileDefaultsToAppPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "PROFILE_README.md")

	app := testApp()
	app.ProfilePathFunc = func() string { return path }
	cmd := NewCommand(app)
	cmd.SetContext(context.Background())

	err := cmd.RunE(cmd, nil)
	require.NoError(t, err)
	assert.FileExists(t, path)
}
