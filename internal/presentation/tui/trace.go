package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/picker/pkg/domain"
	"github.com/aretw0/picker/pkg/script"
	"github.com/muesli/termenv"
)

// TraceWriter prints replay traces, colouring commands when the output
// supports it.
type TraceWriter struct {
	out     io.Writer
	profile termenv.Profile
}

// NewTraceWriter creates a writer. Colour is disabled when plain is true.
func NewTraceWriter(out io.Writer, plain bool) *TraceWriter {
	profile := termenv.ColorProfile()
	if plain {
		profile = termenv.Ascii
	}
	return &TraceWriter{out: out, profile: profile}
}

var commandColors = map[domain.Command]string{
	domain.Begin:  "#22c55e",
	domain.Append: "#38bdf8",
	domain.Move:   "#a1a1aa",
	domain.Remove: "#f97316",
	domain.End:    "#e879f9",
}

// WriteTrace prints one line per step.
func (tw *TraceWriter) WriteTrace(trace []script.Trace) {
	for _, t := range trace {
		fmt.Fprintf(tw.out, "%3d  %-36s  %-24s  -> %s (%d)\n",
			t.Index, t.Event.String(), tw.commands(t.Commands), t.State, t.Points)
	}
}

// WriteSelection prints a completed selection.
func (tw *TraceWriter) WriteSelection(sel domain.Selection) {
	pts := make([]string, len(sel.Points))
	for i, p := range sel.Points {
		pts[i] = p.String()
	}
	label := tw.profile.String("selected " + sel.Type.String()).
		Bold().
		Foreground(tw.profile.Color(commandColors[domain.End]))
	fmt.Fprintf(tw.out, "%s %s\n", label, strings.Join(pts, " "))
}

func (tw *TraceWriter) commands(cmds domain.Commands) string {
	if cmds.Empty() {
		return "-"
	}
	parts := make([]string, 0, cmds.Len())
	for cmd := range cmds.All() {
		parts = append(parts, tw.profile.String(cmd.String()).Foreground(tw.profile.Color(commandColors[cmd])).String())
	}
	return strings.Join(parts, " ")
}
