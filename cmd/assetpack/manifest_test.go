package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/assetpack"
)

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
archive: dist/worker.zip
assets:
  - path: ./lambdas/worker
    as: .
  - path: ./configs/config.yml
  - path: ./schemas
    as: schemas
    preserve: true
executables:
  - bin/deploy.sh
`), 0o644))

	m, err := loadManifest(path)
	require.NoError(t, err)

	assert.Equal(t, "dist/worker.zip", m.Archive)
	assert.Equal(t, []string{"bin/deploy.sh"}, m.Executables)
	assert.Equal(t, []assetpack.Asset{
		{Path: "./lambdas/worker", As: "."},
		{Path: "./configs/config.yml"},
		{Path: "./schemas", As: "schemas", PreserveStructure: true},
	}, m.assets())
}

func TestLoadManifest_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pack.yaml")
	require.NoError(t, os.WriteFile(path, []byte("assets: {not: [a, list"), 0o644))

	_, err := loadManifest(path)
	assert.Error(t, err)
}

func TestLoadManifest_Missing(t *testing.T) {
	_, err := loadManifest(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
