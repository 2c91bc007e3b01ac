package assetpack

import "log/slog"

// buildConfig holds configuration for archive building.
type buildConfig struct {
	logger      *slog.Logger
	concurrency int
	maxFiles    int
}

// BuildOption configures archive building.
type BuildOption func(*buildConfig)

// BuildWithLogger sets the logger used during the build.
// A nil logger discards all output.
func BuildWithLogger(l *slog.Logger) BuildOption {
	return func(cfg *buildConfig) {
		cfg.logger = l
	}
}

// BuildWithConcurrency sets how many file reads may run ahead of the
// writer. Entry writing and digest folding stay strictly ordered; only the
// reads overlap. Values below one select sequential reading.
func BuildWithConcurrency(n int) BuildOption {
	return func(cfg *buildConfig) {
		cfg.concurrency = n
	}
}

// BuildWithMaxFiles limits the number of entries in the archive.
// Zero uses DefaultMaxFiles. Negative means no limit.
func BuildWithMaxFiles(n int) BuildOption {
	return func(cfg *buildConfig) {
		cfg.maxFiles = n
	}
}
