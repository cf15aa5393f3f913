package cli

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/picker/pkg/domain"
	"github.com/aretw0/picker/pkg/machine"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCanvas_DragRect(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	type result struct {
		sels []domain.Selection
		err  error
	}
	done := make(chan result, 1)
	go func() {
		sels, err := RunCanvas(ctx, CanvasOptions{Machine: machine.KindDragRect, Screen: screen})
		done <- result{sels, err}
	}()

	// Injected events queue in order behind Init.
	time.Sleep(50 * time.Millisecond)
	screen.InjectMouse(2, 2, tcell.ButtonNone, tcell.ModNone)
	screen.InjectMouse(2, 2, tcell.Button1, tcell.ModNone)
	screen.InjectMouse(6, 4, tcell.Button1, tcell.ModNone)
	screen.InjectMouse(6, 4, tcell.ButtonNone, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	res := <-done
	require.NoError(t, res.err)
	require.Len(t, res.sels, 1)

	rect, ok := res.sels[0].Rect()
	require.True(t, ok)
	assert.Equal(t, domain.RectF{X: 2, Y: 2, Width: 4, Height: 2}, rect)
}

func TestRunCanvas_UnknownMachine(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	_, err := RunCanvas(context.Background(), CanvasOptions{Machine: "lasso", Screen: screen})
	assert.ErrorIs(t, err, domain.ErrUnknownMachine)
}
