package main

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// LoadCatalog reads the catalog from path, or the embedded default when
// path is empty.
func LoadCatalog(path string) (*EvaluationConfigResponse, error) {
	data := defaultCatalogYAML
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file: %w", err)
		}
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a YAML catalog document.
func ParseCatalog(data []byte) (*EvaluationConfigResponse, error) {
	var catalog EvaluationConfigResponse
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := validate.Struct(&catalog); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	// keep empty sections as [] in JSON
	if catalog.Detectors == nil {
		catalog.Detectors = []DetectorOption{}
	}
	if catalog.JuryRoles == nil {
		catalog.JuryRoles = []JuryRoleOption{}
	}
	return &catalog, nil
}
