package assetpack

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files (with parents) under root from slash-relative
// paths to contents.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func entryNames(entries []Entry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}

func TestResolve_FlattensDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a_dir/y.txt":     "bye",
		"a_dir/x.txt":     "hi",
		"a_dir/sub/z.txt": "deep",
	})

	entries, err := Resolve([]Asset{{Path: filepath.Join(dir, "a_dir")}})
	require.NoError(t, err)

	assert.Equal(t, []string{"sub/z.txt", "x.txt", "y.txt"}, entryNames(entries))
	for _, e := range entries {
		assert.Equal(t, KindDir, e.Kind)
		assert.Equal(t, "a_dir", e.Asset)
		assert.NotEmpty(t, e.TreePath)
	}
}

func TestResolve_PreserveStructure(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a_dir/x.txt": "hi",
		"a_dir/y.txt": "bye",
	})

	entries, err := Resolve([]Asset{{Path: filepath.Join(dir, "a_dir"), PreserveStructure: true}})
	require.NoError(t, err)

	assert.Equal(t, []string{"a_dir/x.txt", "a_dir/y.txt"}, entryNames(entries))
}

func TestResolve_DirectoryMount(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"worker/handler.py":  "def handler(): pass",
		"worker/lib/util.py": "util",
	})

	tests := []struct {
		name  string
		as    string
		wants []string
	}{
		{"root mount", ".", []string{"handler.py", "lib/util.py"}},
		{"named mount", "vendor/worker", []string{"vendor/worker/handler.py", "vendor/worker/lib/util.py"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := Resolve([]Asset{{Path: filepath.Join(dir, "worker"), As: tt.as}})
			require.NoError(t, err)
			assert.Equal(t, tt.wants, entryNames(entries))
		})
	}
}

func TestResolve_FileNaming(t *testing.T) {
	t.Chdir(t.TempDir())
	writeTree(t, ".", map[string]string{"configs/config.yml": "env: prod"})

	tests := []struct {
		name  string
		asset Asset
		want  string
	}{
		{"flattened", Asset{Path: "./configs/config.yml"}, "config.yml"},
		{"preserved", Asset{Path: "./configs/config.yml", PreserveStructure: true}, "configs/config.yml"},
		{"explicit name", Asset{Path: "./configs/config.yml", As: "settings/app.yml"}, "settings/app.yml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := Resolve([]Asset{tt.asset})
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.want, entries[0].Name)
			assert.Equal(t, KindFile, entries[0].Kind)
		})
	}
}

func TestResolve_CanonicalOrder(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"tree/b.txt": "1",
		"tree/A.txt": "2",
		"tree/c.txt": "3",
	})

	entries, err := Resolve([]Asset{{Path: filepath.Join(dir, "tree")}})
	require.NoError(t, err)

	// Case-insensitive, so A sorts before b regardless of filesystem order.
	assert.Equal(t, []string{"A.txt", "b.txt", "c.txt"}, entryNames(entries))
}

func TestResolve_OrderInvariance(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"one.txt": "1",
		"two.txt": "2",
	})

	forward := []Asset{
		{Path: filepath.Join(dir, "one.txt")},
		{Path: filepath.Join(dir, "two.txt")},
	}
	backward := []Asset{forward[1], forward[0]}

	a, err := Resolve(forward)
	require.NoError(t, err)
	b, err := Resolve(backward)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestResolve_DuplicateName(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"left/app.py":  "a",
		"right/app.py": "b",
	})

	_, err := Resolve([]Asset{
		{Path: filepath.Join(dir, "left")},
		{Path: filepath.Join(dir, "right")},
	})
	require.ErrorIs(t, err, ErrDuplicateEntry)
	assert.Contains(t, err.Error(), "app.py")
}

func TestResolve_MissingInputsAggregated(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"present.txt": "ok"})

	_, err := Resolve([]Asset{
		{Path: filepath.Join(dir, "present.txt")},
		{Path: filepath.Join(dir, "gone.txt")},
		{Path: filepath.Join(dir, "also-gone")},
	})
	require.ErrorIs(t, err, ErrInputNotFound)
	// Strict policy: every missing input is reported, none skipped.
	assert.Contains(t, err.Error(), "gone.txt")
	assert.Contains(t, err.Error(), "also-gone")
}

func TestResolve_Executability(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "run.sh"), []byte("#!/bin/sh"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tool"), []byte("bin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.txt"), []byte("x"), 0o644))

	entries, err := Resolve([]Asset{{Path: dir}})
	require.NoError(t, err)

	byName := map[string]Entry{}
	for _, e := range entries {
		byName[e.Name] = e
	}

	assert.True(t, byName["run.sh"].Executable, "allow-listed extension")
	assert.False(t, byName["data.txt"].Executable)
	// Host execute bits are never consulted, so the result is the same on
	// filesystems without POSIX modes.
	assert.False(t, byName["tool"].Executable)

	entries, err = Resolve([]Asset{{Path: dir}}, ResolveWithExecutable("tool"))
	require.NoError(t, err)
	for _, e := range entries {
		if e.Name == "tool" {
			assert.True(t, e.Executable, "explicitly marked name")
		}
	}
}

func TestResolve_ExecutableExts(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"job.PY": "print()"})

	entries, err := Resolve([]Asset{{Path: dir}}, ResolveWithExecutableExts(".py"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Executable, "extensions match case-insensitively")
}
