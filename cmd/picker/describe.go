package main

import (
	"fmt"
	"os"

	"github.com/aretw0/picker/internal/presentation/tui"
	"github.com/aretw0/picker/pkg/machine"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var describeCmd = &cobra.Command{
	Use:   "describe <machine>",
	Short: "Show the transition table of a machine",
	Long: `Explores every state reachable from idle and prints the transitions as a
markdown table. The table is rendered when stdout is a terminal.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := machine.ParseKind(args[0])
		if err != nil {
			return err
		}
		desc, _ := machine.Describe(kind)
		edges, _ := machine.ExploreKind(kind)
		md := tui.DescribeMarkdown(desc, edges)

		plain, _ := cmd.Flags().GetBool("plain")
		if plain || !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}

		out, err := tui.NewRenderer()(md)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().Bool("plain", false, "Print raw markdown")
}
