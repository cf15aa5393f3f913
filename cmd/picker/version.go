package main

import (
	"fmt"

	"github.com/aretw0/picker"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of picker",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "picker version %s\n", picker.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
