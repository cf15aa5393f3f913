package script_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/picker/internal/testutils"
	"github.com/aretw0/picker/pkg/domain"
	"github.com/aretw0/picker/pkg/machine"
	"github.com/aretw0/picker/pkg/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dragRectYAML = `
machine: Drag_Rect
bindings:
  mouse:
    mouse-select1: {button: right}
steps:
  - {kind: press, button: left, pos: {x: 0, y: 0}}
  - {kind: press, button: right, pos: {x: 2, y: 3}}
  - {kind: move, pos: {x: 8, y: 9}}
  - {kind: release, button: right, pos: {x: 8, y: 9}}
`

func TestRun_YAMLWithBindings(t *testing.T) {
	s, err := script.Parse([]byte(dragRectYAML), "yaml")
	require.NoError(t, err)
	assert.Equal(t, machine.KindDragRect, s.Machine)
	require.Len(t, s.Steps, 4)

	report, err := script.Run(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, report.Trace, 4)

	// Left is unbound for this script.
	assert.True(t, report.Trace[0].Commands.Empty())
	assert.Equal(t, "[begin append append]", report.Trace[1].Commands.String())
	assert.Equal(t, "active", report.Trace[1].State)
	assert.Equal(t, "[end]", report.Trace[3].Commands.String())
	assert.Equal(t, "idle", report.Trace[3].State)

	require.Len(t, report.Selections, 1)
	rect, ok := report.Selections[0].Rect()
	require.True(t, ok)
	assert.Equal(t, domain.RectF{X: 2, Y: 3, Width: 6, Height: 6}, rect)
}

func TestRun_JSONPolygonWithKeys(t *testing.T) {
	data := `{
		"machine": "polygon",
		"steps": [
			{"kind": "key-press", "key": "enter", "pos": {"x": 1, "y": 1}},
			{"kind": "key-press", "key": "enter", "pos": {"x": 1, "y": 1}, "auto_repeat": true},
			{"kind": "move", "pos": {"x": 4, "y": 1}},
			{"kind": "key-press", "key": "enter", "pos": {"x": 4, "y": 1}},
			{"kind": "key-press", "key": "space", "pos": {"x": 4, "y": 1}}
		]
	}`
	s, err := script.Parse([]byte(data), "json")
	require.NoError(t, err)

	report, err := script.Run(context.Background(), s)
	require.NoError(t, err)

	assert.True(t, report.Trace[1].Commands.Empty(), "auto-repeat is ignored")
	assert.Equal(t, 3, report.Trace[3].Points)
	require.Len(t, report.Selections, 1)
	assert.Len(t, report.Selections[0].Points, 3)
}

func TestParse_Invalid(t *testing.T) {
	_, err := script.Parse([]byte("machine: lasso\n"), "yaml")
	assert.ErrorIs(t, err, domain.ErrUnknownMachine)

	_, err = script.Parse([]byte("machine: polygon\nsteps:\n  - {kind: press}\n"), "yaml")
	assert.ErrorIs(t, err, domain.ErrInvalidEvent)

	_, err = script.Parse([]byte("machine: polygon\nsteps:\n  - {kind: hover}\n"), "yaml")
	assert.Error(t, err)

	_, err = script.Parse([]byte("{"), "json")
	assert.Error(t, err)
}

func TestRun_Cancelled(t *testing.T) {
	s, err := script.Parse([]byte(dragRectYAML), "yaml")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := script.Run(ctx, s)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.Empty(t, report.Trace)
}

func TestLoad(t *testing.T) {
	path := testutils.WriteFile(t, "rect.yaml", dragRectYAML)

	s, err := script.Load(path)
	require.NoError(t, err)
	assert.Equal(t, machine.KindDragRect, s.Machine)

	_, err = script.Load(filepath.Join(filepath.Dir(path), "missing.yaml"))
	assert.Error(t, err)
}

func TestParse_RejectsUnknownBindingFields(t *testing.T) {
	for name, tc := range map[string]struct {
		data, format string
	}{
		"YAML": {`
machine: drag-rect
bindings:
  mouse:
    mouse-select1: {buton: right}
steps:
  - {kind: press, button: right, pos: {x: 0, y: 0}}
`, "yaml"},
		"JSON": {`{
			"machine": "drag-rect",
			"bindings": {"keys": {"key-select1": {"key": "enter", "modifers": ["shift"]}}},
			"steps": [{"kind": "move", "pos": {"x": 0, "y": 0}}]
		}`, "json"},
		"BadButton": {`
machine: drag-rect
bindings:
  mouse:
    mouse-select1: {button: thumb}
steps: []
`, "yaml"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := script.Parse([]byte(tc.data), tc.format)
			assert.ErrorIs(t, err, domain.ErrInvalidBinding)
		})
	}
}
