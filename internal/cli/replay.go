package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/picker"
	"github.com/aretw0/picker/internal/presentation/tui"
	"github.com/aretw0/picker/pkg/script"
)

// ReplayOptions configures RunReplay.
type ReplayOptions struct {
	Path  string
	Out   io.Writer
	JSON  bool // emit the report as JSON
	Plain bool // disable colour
	// Picker options applied after the script's own bindings.
	PickerOptions []picker.Option
}

// RunReplay loads a script, replays it and prints the trace.
func RunReplay(ctx context.Context, opts ReplayOptions) (*script.Report, error) {
	s, err := script.Load(opts.Path)
	if err != nil {
		return nil, err
	}

	report, err := script.Run(ctx, s, opts.PickerOptions...)
	if err != nil {
		return report, fmt.Errorf("replay %s: %w", opts.Path, err)
	}

	if opts.JSON {
		enc := json.NewEncoder(opts.Out)
		enc.SetIndent("", "  ")
		return report, enc.Encode(report)
	}

	tw := tui.NewTraceWriter(opts.Out, opts.Plain)
	tw.WriteTrace(report.Trace)
	for _, sel := range report.Selections {
		tw.WriteSelection(sel)
	}
	return report, nil
}
