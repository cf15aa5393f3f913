package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/picker/internal/cli"
	"github.com/aretw0/picker/pkg/pattern"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "picker",
	Short: "picker turns pointer and key input into selection commands",
	Long: `picker runs the selection machines used by plot canvases: trackers,
point pickers, rectangle and polygon pickers. Inspect them, replay recorded
input, try them on a terminal canvas or serve them over HTTP and MCP.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error or off")
	rootCmd.PersistentFlags().String("bindings", "", "Role bindings file (yaml, toml or json)")
}

// setup reads the persistent flags shared by every command.
func setup(cmd *cobra.Command) (*slog.Logger, *pattern.EventPattern, error) {
	level, _ := cmd.Flags().GetString("log-level")
	logger, err := cli.CreateLogger(level)
	if err != nil {
		return nil, nil, err
	}

	path, _ := cmd.Flags().GetString("bindings")
	bindings, err := cli.LoadBindings(path)
	if err != nil {
		return nil, nil, err
	}
	return logger, bindings, nil
}
