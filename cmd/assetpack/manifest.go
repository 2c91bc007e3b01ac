package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/meigma/assetpack"
)

// manifest is the optional YAML pack description. It mirrors the pack
// command's flags so a build can be committed alongside the sources it
// packages.
type manifest struct {
	// Archive is the destination path of the produced archive.
	Archive string `yaml:"archive"`
	// Assets lists the inputs to package.
	Assets []manifestAsset `yaml:"assets"`
	// Executables lists archive names to mark executable.
	Executables []string `yaml:"executables"`
}

type manifestAsset struct {
	Path     string `yaml:"path"`
	As       string `yaml:"as,omitempty"`
	Preserve bool   `yaml:"preserve,omitempty"`
}

// loadManifest reads and parses a pack manifest.
func loadManifest(path string) (*manifest, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m manifest
	if err := yaml.Unmarshal(contents, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}

// assets converts manifest entries to library inputs.
func (m *manifest) assets() []assetpack.Asset {
	out := make([]assetpack.Asset, 0, len(m.Assets))
	for _, a := range m.Assets {
		out = append(out, assetpack.Asset{
			Path:              a.Path,
			As:                a.As,
			PreserveStructure: a.Preserve,
		})
	}
	return out
}
