package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meigma/assetpack"
)

var packFlags struct {
	output       string
	manifestPath string
	preserve     bool
	executables  []string
	concurrency  int
}

var packCmd = &cobra.Command{
	Use:   "pack [paths...]",
	Short: "Package files and directories into a reproducible archive",
	Long: `Package the given files and directory trees into a ZIP archive at the
destination and print the composite content digest to stdout.

Inputs may come from positional paths, a YAML manifest, or both.`,
	Example: `  assetpack pack ./lambdas/worker ./configs/config.yml -o dist/worker.zip
  assetpack pack --manifest pack.yaml`,
	RunE: runPack,
}

func init() {
	rootCmd.AddCommand(packCmd)
	packCmd.Flags().StringVarP(&packFlags.output, "output", "o", "", "destination archive path")
	packCmd.Flags().StringVar(&packFlags.manifestPath, "manifest", "", "YAML pack manifest")
	packCmd.Flags().BoolVar(&packFlags.preserve, "preserve", false, "keep full relative paths instead of flattening")
	packCmd.Flags().StringSliceVar(&packFlags.executables, "exec", nil, "archive names to mark executable")
	packCmd.Flags().IntVar(&packFlags.concurrency, "concurrency", 1, "file reads allowed to run ahead of the writer")
}

func runPack(cmd *cobra.Command, args []string) error {
	var (
		assets []assetpack.Asset
		execs  []string
		dest   = packFlags.output
	)

	if packFlags.manifestPath != "" {
		m, err := loadManifest(packFlags.manifestPath)
		if err != nil {
			return err
		}
		assets = append(assets, m.assets()...)
		execs = append(execs, m.Executables...)
		if dest == "" {
			dest = m.Archive
		}
	}
	for _, p := range args {
		assets = append(assets, assetpack.Asset{Path: p, PreserveStructure: packFlags.preserve})
	}
	execs = append(execs, packFlags.executables...)

	if len(assets) == 0 {
		return errors.New("no inputs: supply paths or --manifest")
	}
	if dest == "" {
		return errors.New("no destination: supply --output or a manifest archive field")
	}

	logger := newLogger()
	dgst, err := assetpack.Pack(cmd.Context(), assets, dest,
		assetpack.PackWithResolveOptions(
			assetpack.ResolveWithLogger(logger),
			assetpack.ResolveWithExecutable(execs...),
		),
		assetpack.PackWithBuildOptions(
			assetpack.BuildWithLogger(logger),
			assetpack.BuildWithConcurrency(packFlags.concurrency),
		),
	)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), dgst.Encoded())

	return nil
}
