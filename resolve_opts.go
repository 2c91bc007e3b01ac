package assetpack

import "log/slog"

// resolveConfig holds configuration for path resolution.
type resolveConfig struct {
	logger      *slog.Logger
	executables map[string]struct{}
	exts        map[string]struct{}
}

// ResolveOption configures path resolution.
type ResolveOption func(*resolveConfig)

// ResolveWithLogger sets the logger used during resolution.
// A nil logger discards all output.
func ResolveWithLogger(l *slog.Logger) ResolveOption {
	return func(cfg *resolveConfig) {
		cfg.logger = l
	}
}

// ResolveWithExecutable marks archive names as executable regardless of
// extension. This is the explicit-manifest alternative to the extension
// allow-list; live filesystem permission bits are never consulted.
func ResolveWithExecutable(names ...string) ResolveOption {
	return func(cfg *resolveConfig) {
		if cfg.executables == nil {
			cfg.executables = make(map[string]struct{}, len(names))
		}
		for _, n := range names {
			cfg.executables[n] = struct{}{}
		}
	}
}

// ResolveWithExecutableExts extends the extension allow-list used for
// executability detection. Extensions must include the leading dot and are
// matched case-insensitively.
func ResolveWithExecutableExts(exts ...string) ResolveOption {
	return func(cfg *resolveConfig) {
		if cfg.exts == nil {
			cfg.exts = make(map[string]struct{}, len(exts))
		}
		for _, e := range exts {
			cfg.exts[e] = struct{}{}
		}
	}
}
