package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/meigma/assetpack"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <archive>",
	Short: "List the entries of a produced archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := assetpack.Inspect(args[0])
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSIZE\tCRC32\tMODE")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%d\t%08x\t%s\n", e.Name, e.Size, e.CRC32, e.Mode)
		}

		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
