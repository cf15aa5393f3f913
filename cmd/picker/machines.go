package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/aretw0/picker/pkg/machine"
	"github.com/spf13/cobra"
)

var machinesCmd = &cobra.Command{
	Use:   "machines",
	Short: "List the available selection machines",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KIND\tSELECTION\tSUMMARY")
		for _, d := range machine.Catalog() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", d.Kind, d.SelectionType, d.Summary)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(machinesCmd)
}
