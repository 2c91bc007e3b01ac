package assetpack

import "errors"

var (
	// ErrInputNotFound is returned when a declared input path does not exist.
	ErrInputNotFound = errors.New("assetpack: input path not found")

	// ErrDuplicateEntry is returned when two inputs resolve to the same archive name.
	ErrDuplicateEntry = errors.New("assetpack: duplicate archive entry name")

	// ErrFileUnreadable is returned when a resolved file cannot be read.
	ErrFileUnreadable = errors.New("assetpack: file unreadable")

	// ErrArchiveWrite is returned when the output container cannot be produced.
	ErrArchiveWrite = errors.New("assetpack: archive write failed")

	// ErrTooManyFiles is returned when the entry count exceeds the build limit.
	ErrTooManyFiles = errors.New("assetpack: too many files")
)
