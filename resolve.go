package assetpack

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/meigma/assetpack/internal/pathutil"
)

// defaultExecutableExts is the fixed allow-list of executable-style
// extensions. Executability is derived from the archive name only, never
// from live filesystem permission bits, so the result is identical on
// filesystems without POSIX modes.
var defaultExecutableExts = map[string]struct{}{
	".bash": {},
	".bat":  {},
	".cmd":  {},
	".exe":  {},
	".ps1":  {},
	".sh":   {},
}

// Resolve expands assets into the canonical ordered entry list consumed by
// Build.
//
// Assets are processed in byte-wise sorted order so the result does not
// depend on caller-supplied ordering. Directory assets are walked
// recursively; symbolic links and non-regular files are skipped. The
// returned entries are globally sorted case-insensitively by archive name,
// which is the authoritative write and hash order.
//
// Resolution is strict: every missing input and every duplicate archive
// name is collected, and the combined failure is returned as a single
// joined error wrapping ErrInputNotFound or ErrDuplicateEntry. No input is
// silently skipped.
func Resolve(assets []Asset, opts ...ResolveOption) ([]Entry, error) {
	cfg := resolveConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &resolver{cfg: cfg}

	sorted := slices.Clone(assets)
	slices.SortStableFunc(sorted, func(a, b Asset) int {
		if c := strings.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		return strings.Compare(a.As, b.As)
	})

	var (
		entries []Entry
		errs    []error
	)
	for _, a := range sorted {
		info, err := os.Stat(a.Path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			errs = append(errs, fmt.Errorf("%s: %w", a.Path, ErrInputNotFound))
			continue
		case err != nil:
			errs = append(errs, fmt.Errorf("stat %s: %w", a.Path, err))
			continue
		}

		if info.IsDir() {
			dirEntries, err := r.resolveDir(a)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			entries = append(entries, dirEntries...)
		} else {
			entries = append(entries, r.resolveFile(a))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	// Authoritative order for both archive writing and digest folding.
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return pathutil.Compare(a.Name, b.Name)
	})

	for i := 1; i < len(entries); i++ {
		if entries[i].Name == entries[i-1].Name {
			errs = append(errs, fmt.Errorf("%s: %w (%s, %s)",
				entries[i].Name, ErrDuplicateEntry, entries[i-1].Source, entries[i].Source))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	r.log().Debug("resolved assets", "asset_count", len(assets), "entry_count", len(entries))

	return entries, nil
}

// resolver holds state for one Resolve call.
type resolver struct {
	cfg resolveConfig
}

// log returns the logger, falling back to a discard logger if nil.
func (r *resolver) log() *slog.Logger {
	if r.cfg.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.cfg.logger
}

// resolveFile maps a standalone file asset to a single entry.
func (r *resolver) resolveFile(a Asset) Entry {
	var name string
	switch {
	case a.As != "":
		name = pathutil.Normalize(a.As)
	case a.PreserveStructure:
		name = pathutil.Normalize(a.Path)
	default:
		name = pathutil.Base(pathutil.Normalize(a.Path))
	}
	return Entry{
		Source:     a.Path,
		Name:       name,
		Asset:      name,
		Kind:       KindFile,
		Executable: r.isExecutable(name),
	}
}

// resolveDir walks a directory asset and maps every regular file to an entry.
func (r *resolver) resolveDir(a Asset) ([]Entry, error) {
	base := pathutil.Base(pathutil.Normalize(a.Path))

	// Mount prefix inside the archive: flattened mode mounts the tree at
	// the root, structure-preserving mode under the directory's own name,
	// and As overrides both.
	mount := ""
	if a.PreserveStructure {
		mount = base
	}
	group := base
	if a.As != "" {
		mount = pathutil.Normalize(a.As)
		if mount == "." {
			mount = ""
		}
		group = pathutil.Normalize(a.As)
	}

	root, err := os.OpenRoot(a.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", a.Path, err)
	}
	defer root.Close()

	var entries []Entry
	err = fs.WalkDir(root.FS(), ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			r.log().Debug("skipped non-regular file", "path", p, "asset", a.Path)
			return nil
		}
		name := pathutil.Join(mount, p)
		entries = append(entries, Entry{
			Source:     filepath.Join(a.Path, filepath.FromSlash(p)),
			Name:       name,
			Asset:      group,
			Kind:       KindDir,
			TreePath:   p,
			Executable: r.isExecutable(name),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", a.Path, err)
	}
	return entries, nil
}

// isExecutable reports whether an archive name selects the 0755 permission
// word, by explicit marking or by extension.
func (r *resolver) isExecutable(name string) bool {
	if _, ok := r.cfg.executables[name]; ok {
		return true
	}
	ext := strings.ToLower(pathExt(name))
	if _, ok := r.cfg.exts[ext]; ok {
		return true
	}
	_, ok := defaultExecutableExts[ext]
	return ok
}

// pathExt returns the extension of the final element of a slash path,
// including the leading dot.
func pathExt(name string) string {
	base := pathutil.Base(name)
	if i := strings.LastIndex(base, "."); i > 0 {
		return base[i:]
	}
	return ""
}
