package main

import (
	"os"

	"github.com/aretw0/picker"
	"github.com/aretw0/picker/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var replayCmd = &cobra.Command{
	Use:   "replay <script>",
	Short: "Replay a recorded event script",
	Long: `Feeds every step of a YAML or JSON script to a fresh picker and prints the
commands, the resulting state and the completed selections.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, bindings, err := setup(cmd)
		if err != nil {
			return err
		}
		jsonMode, _ := cmd.Flags().GetBool("json")

		opts := []picker.Option{picker.WithLogger(logger)}
		// Bindings given on the command line win over the script's.
		if cmd.Flags().Changed("bindings") {
			opts = append(opts, picker.WithMatcher(bindings))
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		_, err = cli.RunReplay(ctx, cli.ReplayOptions{
			Path:          args[0],
			Out:           cmd.OutOrStdout(),
			JSON:          jsonMode,
			Plain:         !term.IsTerminal(int(os.Stdout.Fd())),
			PickerOptions: opts,
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().Bool("json", false, "Print the report as JSON")
}
