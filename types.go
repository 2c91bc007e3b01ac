package assetpack

// Kind categorizes the input an entry came from. It is folded into the
// composite digest so that a directory tree and a set of standalone files
// with the same names cannot hash to the same value.
type Kind uint8

const (
	// KindFile marks an entry resolved from a standalone file input.
	KindFile Kind = iota
	// KindDir marks an entry resolved from a directory tree input.
	KindDir
)

// Asset is one caller-supplied input: a file or a directory tree.
type Asset struct {
	// Path is the filesystem location of the input, absolute or relative.
	Path string

	// As optionally mounts the input at an explicit archive name. For a
	// file input it becomes the entry name; for a directory input it
	// prefixes every entry from the tree ("." mounts the tree at the
	// archive root). When set it overrides PreserveStructure.
	As string

	// PreserveStructure keeps the input's full relative path in the
	// archive. When false a file is reduced to its base name and a
	// directory's entries are named relative to the directory itself.
	PreserveStructure bool
}

// Entry is one resolved archive member. Entries are created by Resolve and
// consumed read-only by Build.
type Entry struct {
	// Source is the filesystem location the entry's bytes are read from.
	Source string

	// Name is the slash-normalized archive name. Unique across one build.
	Name string

	// Asset is the logical name of the input this entry came from, used
	// as the grouping key when folding the composite digest.
	Asset string

	// Kind is the input category of the originating asset.
	Kind Kind

	// TreePath is the entry's slash path relative to its directory input.
	// Empty for KindFile entries.
	TreePath string

	// Executable selects the 0755 permission word instead of 0644.
	Executable bool
}
