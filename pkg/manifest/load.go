package manifest

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/gardener/pkg/errors"
)

// Load reads, parses, and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		if parseErr, ok := err.(*errors.ParseError); ok {
			parseErr.File = path
		}
		return nil, err
	}
	return m, nil
}

// Parse parses and validates manifest YAML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.WrapParse("yaml", "", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
