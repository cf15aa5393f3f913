package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/picker/pkg/pattern"
	"github.com/aretw0/picker/pkg/script"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check bindings and script files",
	Long: `Parses each file and reports the first problem found. Files with a top-level
"steps" list are checked as scripts, everything else as role bindings.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		failed := false
		for _, path := range args {
			if err := runValidate(path); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: invalid: %v\n", path, err)
				failed = true
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
		}
		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// YAML also reads JSON; TOML files only ever hold bindings.
	var doc map[string]any
	if filepath.Ext(path) != ".toml" && yaml.Unmarshal(data, &doc) == nil {
		if _, ok := doc["steps"]; ok {
			_, err := script.Load(path)
			return err
		}
	}

	_, err = pattern.Load(path)
	return err
}
