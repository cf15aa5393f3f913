package main

import (
	"fmt"

	"github.com/aretw0/picker/internal/presentation/graph"
	"github.com/aretw0/picker/pkg/machine"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <machine>",
	Short: "Export the state diagram of a machine",
	Long:  `Explores the machine and outputs a Mermaid diagram (stateDiagram-v2) of its transitions.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := machine.ParseKind(args[0])
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if current, _ := cmd.Flags().GetString("current"); current != "" {
			overlay = &graph.GraphOverlay{CurrentState: current}
		}

		out, err := graph.GenerateMermaidForKind(kind, overlay)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("current", "", "Highlight this state")
}
