package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	app, err := New("1.0.0", "abc123", "2024-01-01", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if app.Version() != "1.0.0" {
		t.Errorf("Version() = %s, want 1.0.0", app.Version())
	}
	if app.Commit() != "abc123" {
		t.Errorf("Commit() = %s, want abc123", app.Commit())
	}
	if app.Date() != "2024-01-01" {
		t.Errorf("Date() = %s, want 2024-01-01", app.Date())
	}
	if app.BuiltBy() != "test" {
		t.Errorf("BuiltBy() = %s, want test", app.BuiltBy())
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}
	if app.Config() == nil {
		t.Error("Config() returned nil")
	}
}

// TestApp_Options verifies functional option application.
func TestApp_Options(t *testing.T) {
	logger := zerolog.Nop()
	config := &Config{
		ManifestPath: "custom.yaml",
		ProfilePath:  "custom.md",
		Format:       "yaml",
	}

	app, err := New("dev", "none", "unknown", "test",
		WithConfig(config),
		WithLogger(&logger),
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if app.ManifestPath() != "custom.yaml" {
		t.Errorf("ManifestPath() = %s, want custom.yaml", app.ManifestPath())
	}
	if app.ProfilePath() != "custom.md" {
		t.Errorf("ProfilePath() = %s, want custom.md", app.ProfilePath())
	}
	if app.OutputFormat() != "yaml" {
		t.Errorf("OutputFormat() = %s, want yaml", app.OutputFormat())
	}
	if app.Logger() != &logger {
		t.Error("Logger() did not return the injected logger")
	}
}

// TestApp_Manifest verifies manifest loading through the app context.
func TestApp_Manifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repos.yaml")
	content := `repos:
  - name: web-app
    status: active
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}

	app, err := New("dev", "none", "unknown", "test",
		WithConfig(&Config{ManifestPath: path}),
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	m, err := app.Manifest()
	if err != nil {
		t.Fatalf("Manifest() failed: %v", err)
	}
	if len(m.Repos) != 1 || m.Repos[0].Name != "web-app" {
		t.Errorf("Manifest() = %+v, want one repo named web-app", m.Repos)
	}
}

// TestApp_Gardener verifies gardener construction from app configuration.
func TestApp_Gardener(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repos.yaml")
	content := `repos:
  - name: web-app
    status: active
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}

	app, err := New("dev", "none", "unknown", "test",
		WithConfig(&Config{ManifestPath: path}),
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	g, err := app.Gardener()
	if err != nil {
		t.Fatalf("Gardener() failed: %v", err)
	}
	if g.Manifest() == nil || len(g.Manifest().Repos) != 1 {
		t.Error("Gardener() did not load the configured manifest")
	}
}

// TestApp_Gardener_MissingManifest verifies the error path.
func TestApp_Gardener_MissingManifest(t *testing.T) {
	app, err := New("dev", "none", "unknown", "test",
		WithConfig(&Config{ManifestPath: filepath.Join(t.TempDir(), "missing.yaml")}),
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if _, err := app.Gardener(); err == nil {
		t.Error("Gardener() succeeded with a missing manifest, want error")
	}
}
