// Package assetpack builds reproducible deployment archives.
//
// Given a set of files and directory trees, assetpack produces a ZIP archive
// whose bytes are identical across operating systems, filesystems, clock
// states, and run invocations, together with a composite content digest that
// changes if and only if the logical content changes. The digest is intended
// as a change-detection key for downstream deployment systems.
//
// Reproducibility comes from deriving all per-entry metadata instead of
// copying it from the host filesystem: every entry carries a fixed
// 1980-01-01 timestamp, a 0644 or 0755 permission word, and deflate
// compression at a fixed level. Entries are written in a single canonical
// order (case-insensitive by archive name) regardless of caller-supplied
// input order or filesystem walk order.
//
// # Quick Start
//
// Package a directory and a standalone file:
//
//	dgst, err := assetpack.Pack(ctx, []assetpack.Asset{
//	    {Path: "./lambdas/worker"},
//	    {Path: "./configs/config.yml"},
//	}, "dist/worker.zip")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(dgst.Encoded())
//
// For finer control, use [Resolve] to obtain the canonical entry list and
// [Build] to produce the archive from it.
//
// # Determinism contract
//
// Two builds from logically identical input content produce an identical
// archive byte stream and an identical digest. Changing one byte of any
// input, renaming an entry, or toggling an entry's executability changes
// both; changing only a source file's timestamp or non-executable permission
// bits changes neither.
package assetpack
