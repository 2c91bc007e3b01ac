package assetpack

import (
	"crypto/sha256"
	"hash"
	"slices"
	"strings"

	"github.com/opencontainers/go-digest"
)

// Kind tags folded into the composite digest. Distinct tags keep a
// directory tree and a standalone file resolving to the same logical name
// from hashing to the same value.
const (
	tagFile = byte('f')
	tagDir  = byte('d')
)

type groupKey struct {
	name string
	kind Kind
}

// composite accumulates the hash-of-hashes change-detection digest while
// entries are written. A file group holds the file's own content hash; a
// directory group folds SHA-256(treePath || NUL || content) for every file
// under the tree, in canonical entry order, into one running hash.
type composite struct {
	groups map[groupKey]hash.Hash
}

func newComposite() *composite {
	return &composite{groups: make(map[groupKey]hash.Hash)}
}

// add folds one entry's content into its group accumulator. Entries must
// arrive in canonical order for directory sub-hashes to be stable.
func (c *composite) add(e Entry, content []byte) {
	key := groupKey{name: e.Asset, kind: e.Kind}
	g, ok := c.groups[key]
	if !ok {
		g = sha256.New()
		c.groups[key] = g
	}
	if e.Kind == KindFile {
		g.Write(content)
		return
	}
	fh := sha256.New()
	fh.Write([]byte(e.TreePath))
	fh.Write([]byte{0})
	fh.Write(content)
	g.Write(fh.Sum(nil))
}

// sum finalizes the composite digest, folding each group's tag, name, and
// sub-hash in byte-wise name order.
func (c *composite) sum() digest.Digest {
	keys := make([]groupKey, 0, len(c.groups))
	for k := range c.groups {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b groupKey) int {
		if cmp := strings.Compare(a.name, b.name); cmp != 0 {
			return cmp
		}
		return int(a.kind) - int(b.kind)
	})

	d := digest.Canonical.Digester()
	h := d.Hash()
	for _, k := range keys {
		tag := tagFile
		if k.kind == KindDir {
			tag = tagDir
		}
		h.Write([]byte{tag})
		h.Write([]byte(k.name))
		h.Write([]byte{0})
		h.Write(c.groups[k].Sum(nil))
	}
	return d.Digest()
}
