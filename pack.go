package assetpack

import (
	"context"

	"github.com/opencontainers/go-digest"
)

// packConfig holds configuration for the combined resolve-and-build call.
type packConfig struct {
	resolveOpts []ResolveOption
	buildOpts   []BuildOption
}

// PackOption configures Pack.
type PackOption func(*packConfig)

// PackWithResolveOptions forwards options to the resolution phase.
func PackWithResolveOptions(opts ...ResolveOption) PackOption {
	return func(cfg *packConfig) {
		cfg.resolveOpts = append(cfg.resolveOpts, opts...)
	}
}

// PackWithBuildOptions forwards options to the build phase.
func PackWithBuildOptions(opts ...BuildOption) PackOption {
	return func(cfg *packConfig) {
		cfg.buildOpts = append(cfg.buildOpts, opts...)
	}
}

// Pack resolves assets and builds the archive at dest in one call,
// returning the composite content digest.
func Pack(ctx context.Context, assets []Asset, dest string, opts ...PackOption) (digest.Digest, error) {
	cfg := packConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	entries, err := Resolve(assets, cfg.resolveOpts...)
	if err != nil {
		return "", err
	}
	return Build(ctx, entries, dest, cfg.buildOpts...)
}
