package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appmock "github.com/agentstation/gardener/internal/cmd/application"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "repos.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateGoodManifest(t *testing.T) {
	path := writeManifest(t, `repos:
  - name: web-app
    status: active
    category: work
  - name: old-tool
    status: archived
    successor: web-app
`)

	cmd := NewCommand(&appmock.Mock{OutputFormatFunc: func() string { return "json" }})
	require.NoError(t, cmd.Flags().Set("manifest", path))

	err := cmd.RunE(cmd, nil)
	assert.NoError(t, err)
}

func TestValidateNamesOffendingEntry(t *testing.T) {
	path := writeManifest(t, `repos:
  - name: web-app
    status: active
  - name: broken
    status: frozen
`)

	cmd := NewCommand(&appmock.Mock{})
	require.NoError(t, cmd.Flags().Set("manifest", path))

	err := cmd.RunE(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "repos[1]")
	assert.Contains(t, err.Error(), "status")
}

func TestValidateMissingFile(t *testing.T) {
	cmd := NewCommand(&appmock.Mock{})
	require.NoError(t, cmd.Flags().Set("manifest", filepath.Join(t.TempDir(), "missing.yaml")))

	err := cmd.RunE(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading manifest")
}

func TestValidateDefaultsToAppManifestPath(t *testing.T) {
	path := writeManifest(t, `repos:
  - name: web-app
    status: active
`)

	cmd := NewCommand(&appmock.Mock{
		ManifestPathFunc: func() string { return path },
		OutputFormatFunc: func() string { return "json" },
	})

	err := cmd.RunE(cmd, nil)
	assert.NoError(t, err)
}
