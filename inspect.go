package assetpack

import (
	"archive/zip"
	"fmt"
	"io/fs"
	"time"
)

// ArchiveEntry describes one member of a produced archive.
type ArchiveEntry struct {
	// Name is the archive entry name.
	Name string
	// Size is the uncompressed byte length.
	Size uint64
	// CompressedSize is the stored byte length after deflate.
	CompressedSize uint64
	// CRC32 is the container's checksum of the uncompressed content.
	CRC32 uint32
	// Mode is the permission word recorded in the external attributes.
	Mode fs.FileMode
	// Modified is the recorded entry timestamp.
	Modified time.Time
}

// Inspect lists the entries of an archive at path in stored order.
func Inspect(path string) ([]ArchiveEntry, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer zr.Close()

	entries := make([]ArchiveEntry, 0, len(zr.File))
	for _, f := range zr.File {
		entries = append(entries, ArchiveEntry{
			Name:           f.Name,
			Size:           f.UncompressedSize64,
			CompressedSize: f.CompressedSize64,
			CRC32:          f.CRC32,
			Mode:           f.Mode(),
			Modified:       f.Modified,
		})
	}
	return entries, nil
}
