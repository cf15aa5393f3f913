package gio

import (
	"testing"

	"gioui.org/f32"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"github.com/aretw0/picker/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslator_PressDragRelease(t *testing.T) {
	tr := NewTranslator()

	out := tr.Translate(pointer.Event{Type: pointer.Enter, Position: f32.Point{X: 1.4, Y: 2.6}})
	require.Len(t, out, 1)
	assert.Equal(t, domain.EventEnter, out[0].Kind)
	assert.Equal(t, domain.Point{X: 1, Y: 3}, out[0].Pos)

	out = tr.Translate(pointer.Event{
		Type:      pointer.Press,
		Buttons:   pointer.ButtonPrimary,
		Position:  f32.Point{X: 10, Y: 10},
		Modifiers: key.ModCtrl,
	})
	require.Len(t, out, 1)
	assert.Equal(t, domain.EventPress, out[0].Kind)
	assert.Equal(t, domain.ButtonLeft, out[0].Button)
	assert.Equal(t, domain.ModCtrl, out[0].Modifiers)

	// A second button joining the gesture.
	out = tr.Translate(pointer.Event{
		Type:     pointer.Press,
		Buttons:  pointer.ButtonPrimary | pointer.ButtonSecondary,
		Position: f32.Point{X: 10, Y: 10},
	})
	require.Len(t, out, 1)
	assert.Equal(t, domain.ButtonRight, out[0].Button)

	out = tr.Translate(pointer.Event{Type: pointer.Drag, Buttons: pointer.ButtonPrimary | pointer.ButtonSecondary, Position: f32.Point{X: 20, Y: 5}})
	require.Len(t, out, 1)
	assert.Equal(t, domain.EventMove, out[0].Kind)

	out = tr.Translate(pointer.Event{Type: pointer.Release, Buttons: pointer.ButtonSecondary, Position: f32.Point{X: 20, Y: 5}})
	require.Len(t, out, 1)
	assert.Equal(t, domain.EventRelease, out[0].Kind)
	assert.Equal(t, domain.ButtonLeft, out[0].Button)
	assert.Equal(t, domain.Point{X: 20, Y: 5}, out[0].Pos)
}

func TestTranslator_TouchIsPrimary(t *testing.T) {
	tr := NewTranslator()
	out := tr.Translate(pointer.Event{Type: pointer.Press, Source: pointer.Touch})
	require.Len(t, out, 1)
	assert.Equal(t, domain.ButtonLeft, out[0].Button)
}

func TestTranslator_ScrollAndCancel(t *testing.T) {
	tr := NewTranslator()

	out := tr.Translate(pointer.Event{Type: pointer.Scroll, Scroll: f32.Point{Y: -3}})
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].Delta)
	assert.Empty(t, tr.Translate(pointer.Event{Type: pointer.Scroll}))

	tr.Translate(pointer.Event{Type: pointer.Press, Buttons: pointer.ButtonPrimary})
	out = tr.Translate(pointer.Event{Type: pointer.Cancel})
	require.Len(t, out, 1)
	assert.Equal(t, domain.EventLeave, out[0].Kind)
	assert.Zero(t, tr.buttons)
}

func TestTranslator_Keys(t *testing.T) {
	tr := NewTranslator()
	tr.Translate(pointer.Event{Type: pointer.Move, Position: f32.Point{X: 4, Y: 4}})

	out := tr.Translate(key.Event{Name: key.NameReturn, State: key.Press})
	require.Len(t, out, 1)
	assert.Equal(t, domain.EventKeyPress, out[0].Kind)
	assert.Equal(t, domain.KeyEnter, out[0].Key)
	assert.Equal(t, domain.Point{X: 4, Y: 4}, out[0].Pos)

	out = tr.Translate(key.Event{Name: "Space", State: key.Release})
	require.Len(t, out, 1)
	assert.Equal(t, domain.EventKeyRelease, out[0].Kind)
	assert.Equal(t, domain.KeySpace, out[0].Key)

	out = tr.Translate(key.Event{Name: "A", Modifiers: key.ModShift, State: key.Press})
	require.Len(t, out, 1)
	assert.Equal(t, domain.Key("A"), out[0].Key)
	assert.Equal(t, domain.ModShift, out[0].Modifiers)

	assert.Empty(t, tr.Translate(key.Event{Name: "F1", State: key.Press}))
}
