package tcell

import (
	"testing"

	"github.com/aretw0/picker/pkg/domain"
	backend "github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslator_ButtonDiff(t *testing.T) {
	tr := NewTranslator()

	out := tr.Translate(backend.NewEventMouse(3, 4, backend.ButtonNone, backend.ModNone))
	require.Len(t, out, 1)
	assert.Equal(t, domain.EventEnter, out[0].Kind)

	out = tr.Translate(backend.NewEventMouse(3, 4, backend.Button1, backend.ModShift))
	require.Len(t, out, 1)
	assert.Equal(t, domain.EventPress, out[0].Kind)
	assert.Equal(t, domain.ButtonLeft, out[0].Button)
	assert.Equal(t, domain.ModShift, out[0].Modifiers)

	// Dragging keeps the button held and only moves.
	out = tr.Translate(backend.NewEventMouse(5, 6, backend.Button1, backend.ModNone))
	require.Len(t, out, 1)
	assert.Equal(t, domain.EventMove, out[0].Kind)
	assert.Equal(t, domain.Point{X: 5, Y: 6}, out[0].Pos)

	out = tr.Translate(backend.NewEventMouse(5, 6, backend.ButtonNone, backend.ModNone))
	require.Len(t, out, 1)
	assert.Equal(t, domain.EventRelease, out[0].Kind)
	assert.Equal(t, domain.ButtonLeft, out[0].Button)
}

func TestTranslator_MoveThenPress(t *testing.T) {
	tr := NewTranslator()
	tr.Translate(backend.NewEventMouse(0, 0, backend.ButtonNone, backend.ModNone))

	out := tr.Translate(backend.NewEventMouse(2, 2, backend.Button2, backend.ModNone))
	require.Len(t, out, 2)
	assert.Equal(t, domain.EventMove, out[0].Kind)
	assert.Equal(t, domain.EventPress, out[1].Kind)
	assert.Equal(t, domain.ButtonRight, out[1].Button)
}

func TestTranslator_Wheel(t *testing.T) {
	tr := NewTranslator()
	tr.Translate(backend.NewEventMouse(1, 1, backend.ButtonNone, backend.ModNone))

	out := tr.Translate(backend.NewEventMouse(1, 1, backend.WheelDown, backend.ModNone))
	require.Len(t, out, 1)
	assert.Equal(t, domain.EventWheel, out[0].Kind)
	assert.Equal(t, -1, out[0].Delta)

	// The wheel bit never counts as a held button.
	out = tr.Translate(backend.NewEventMouse(1, 1, backend.ButtonNone, backend.ModNone))
	assert.Empty(t, out)
}

func TestTranslator_Keys(t *testing.T) {
	tr := NewTranslator()
	tr.Translate(backend.NewEventMouse(7, 8, backend.ButtonNone, backend.ModNone))

	out := tr.Translate(backend.NewEventKey(backend.KeyEnter, 0, backend.ModNone))
	require.Len(t, out, 1)
	assert.Equal(t, domain.EventKeyPress, out[0].Kind)
	assert.Equal(t, domain.KeyEnter, out[0].Key)
	assert.Equal(t, domain.Point{X: 7, Y: 8}, out[0].Pos)
	assert.False(t, out[0].AutoRepeat)

	out = tr.Translate(backend.NewEventKey(backend.KeyRune, ' ', backend.ModNone))
	require.Len(t, out, 1)
	assert.Equal(t, domain.KeySpace, out[0].Key)

	out = tr.Translate(backend.NewEventKey(backend.KeyRune, 'p', backend.ModAlt))
	require.Len(t, out, 1)
	assert.Equal(t, domain.Key("p"), out[0].Key)
	assert.Equal(t, domain.ModAlt, out[0].Modifiers)

	assert.Empty(t, tr.Translate(backend.NewEventKey(backend.KeyF1, 0, backend.ModNone)))
}

func TestTranslator_Focus(t *testing.T) {
	tr := NewTranslator()
	tr.Translate(backend.NewEventMouse(1, 1, backend.Button1, backend.ModNone))

	out := tr.Translate(backend.NewEventFocus(false))
	require.Len(t, out, 1)
	assert.Equal(t, domain.EventLeave, out[0].Kind)
	assert.Empty(t, tr.Translate(backend.NewEventFocus(false)))

	out = tr.Translate(backend.NewEventFocus(true))
	require.Len(t, out, 1)
	assert.Equal(t, domain.EventEnter, out[0].Kind)
	assert.Equal(t, domain.Point{X: 1, Y: 1}, out[0].Pos)

	// Buttons held before focus loss are forgotten.
	out = tr.Translate(backend.NewEventMouse(1, 1, backend.Button1, backend.ModNone))
	require.Len(t, out, 1)
	assert.Equal(t, domain.EventPress, out[0].Kind)
}
