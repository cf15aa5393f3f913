package main

import (
	"fmt"

	"github.com/aretw0/picker/internal/cli"
	"github.com/aretw0/picker/internal/presentation/tui"
	"github.com/aretw0/picker/pkg/machine"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Try a machine on an interactive terminal canvas",
	Long: `Opens a full-screen canvas driven by the mouse and keyboard. Buffered points
are drawn as they change and completed selections are printed on exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, bindings, err := setup(cmd)
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("machine")
		kind, err := machine.ParseKind(name)
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		selections, err := cli.RunCanvas(ctx, cli.CanvasOptions{
			Machine: kind,
			Matcher: bindings,
			Logger:  logger,
		})
		if err != nil {
			return err
		}

		tw := tui.NewTraceWriter(cmd.OutOrStdout(), false)
		for _, sel := range selections {
			tw.WriteSelection(sel)
		}
		if len(selections) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no selection")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("machine", "m", string(machine.KindDragRect), "Machine kind")
}
