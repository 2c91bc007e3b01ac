package assetpack

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/opencontainers/go-digest"
	"golang.org/x/sync/errgroup"

	"github.com/meigma/assetpack/internal/fileio"
	"github.com/meigma/assetpack/internal/pathutil"
)

// DefaultMaxFiles is the default limit used when no MaxFiles option is set.
const DefaultMaxFiles = 200_000

// compressionLevel is the fixed deflate level applied to every entry.
const compressionLevel = flate.BestCompression

// zipEpoch is the fixed per-entry timestamp: the earliest date the ZIP
// format can represent. Host mtimes never reach the archive.
var zipEpoch = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

const (
	modeFile fs.FileMode = 0o644
	modeExec fs.FileMode = 0o755
)

// Build writes entries into a ZIP archive at dest and returns the composite
// content digest of the input set.
//
// Entries are written in canonical order with fully derived metadata: fixed
// timestamp, 0644 or 0755 permission word, deflate at a fixed level, and a
// writer-computed CRC-32. Two builds from logically identical content
// produce byte-identical archives and equal digests regardless of host OS,
// walk order, source timestamps, or non-executable permission bits.
//
// The archive is written to a temporary file in dest's directory and
// renamed into place; on any failure no output is left at dest and an error
// wrapping ErrFileUnreadable or ErrArchiveWrite is returned.
//
// The context can be used for cancellation of long-running builds.
func Build(ctx context.Context, entries []Entry, dest string, opts ...BuildOption) (digest.Digest, error) {
	cfg := buildConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	b := &builder{cfg: cfg}

	maxFiles := cfg.maxFiles
	if maxFiles == 0 {
		maxFiles = DefaultMaxFiles
	}
	if maxFiles > 0 && len(entries) > maxFiles {
		return "", ErrTooManyFiles
	}

	// Re-establish canonical order so Build is order-invariant even when
	// the caller has reordered the resolved list.
	ordered := slices.Clone(entries)
	slices.SortStableFunc(ordered, func(a, b Entry) int {
		return pathutil.Compare(a.Name, b.Name)
	})
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Name == ordered[i-1].Name {
			return "", fmt.Errorf("%s: %w", ordered[i].Name, ErrDuplicateEntry)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temporary archive for %s: %w: %w", dest, ErrArchiveWrite, err)
	}

	dgst, err := b.write(ctx, ordered, tmp)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close %s: %w: %w", dest, ErrArchiveWrite, err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("rename to %s: %w: %w", dest, ErrArchiveWrite, err)
	}

	b.log().Debug("archive written",
		"dest", dest, "entry_count", len(ordered), "digest", dgst.String())

	return dgst, nil
}

// builder holds state for one Build call.
type builder struct {
	cfg buildConfig
}

// log returns the logger, falling back to a discard logger if nil.
func (b *builder) log() *slog.Logger {
	if b.cfg.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.cfg.logger
}

// write streams every entry into the ZIP container while folding the
// composite digest in the same traversal.
func (b *builder) write(ctx context.Context, entries []Entry, w io.Writer) (digest.Digest, error) {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, compressionLevel)
	})

	comp := newComposite()
	reads := b.readAhead(ctx, entries)

	for _, e := range entries {
		p, ok := <-reads
		if !ok {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			return "", fmt.Errorf("%s: %w", e.Source, ErrFileUnreadable)
		}
		<-p.done
		if p.err != nil {
			return "", fmt.Errorf("%s: %w: %w", e.Source, ErrFileUnreadable, p.err)
		}

		hdr := &zip.FileHeader{
			Name:     e.Name,
			Method:   zip.Deflate,
			Modified: zipEpoch,
		}
		mode := modeFile
		if e.Executable {
			mode = modeExec
		}
		hdr.SetMode(mode)

		ew, err := zw.CreateHeader(hdr)
		if err != nil {
			return "", fmt.Errorf("add %s: %w: %w", e.Name, ErrArchiveWrite, err)
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if _, err := ew.Write(p.data); err != nil {
			return "", fmt.Errorf("write %s: %w: %w", e.Name, ErrArchiveWrite, err)
		}

		comp.add(e, p.data)
	}

	// Flushes the central directory, which carries the same fixed
	// timestamps and attributes as the local headers.
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("finalize archive: %w: %w", ErrArchiveWrite, err)
	}

	return comp.sum(), nil
}

// pendingRead is one read-ahead slot. done closes once data and err are set.
type pendingRead struct {
	data []byte
	err  error
	done chan struct{}
}

// readAhead streams file contents in entry order. Up to concurrency reads
// run ahead of the writer; the consumer applies results strictly in
// canonical order, so overlapping I/O never reorders the archive or the
// digest folding.
func (b *builder) readAhead(ctx context.Context, entries []Entry) <-chan *pendingRead {
	workers := b.cfg.concurrency
	if workers < 1 {
		workers = 1
	}

	out := make(chan *pendingRead, workers)
	g := new(errgroup.Group)
	g.SetLimit(workers)

	go func() {
		defer close(out)
		defer g.Wait() //nolint:errcheck // read errors travel with their pendingRead
		for _, e := range entries {
			p := &pendingRead{done: make(chan struct{})}
			source := e.Source
			g.Go(func() error {
				defer close(p.done)
				p.data, p.err = readSource(ctx, source)
				return nil
			})
			select {
			case out <- p:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// readSource reads a file fully into memory as raw bytes, with no
// text-mode or newline translation.
func readSource(ctx context.Context, path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	if info, err := f.Stat(); err == nil && info.Size() > 0 {
		buf.Grow(int(info.Size()))
	}
	if _, err := fileio.CopyWithContext(ctx, &buf, f, make([]byte, 32*1024)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
