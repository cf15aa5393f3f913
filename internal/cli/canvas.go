package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/picker"
	tcelladapter "github.com/aretw0/picker/pkg/adapters/tcell"
	"github.com/aretw0/picker/pkg/domain"
	"github.com/aretw0/picker/pkg/machine"
	"github.com/aretw0/picker/pkg/ports"
	"github.com/gdamore/tcell/v2"
)

// CanvasOptions configures RunCanvas.
type CanvasOptions struct {
	Machine machine.Kind
	Matcher ports.RoleMatcher
	Logger  *slog.Logger
	// Screen overrides the terminal, e.g. with a simulation screen.
	Screen tcell.Screen
	// Hooks are merged into the picker's lifecycle hooks.
	Hooks domain.LifecycleHooks
}

var (
	pointStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	lastStyle    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	cursorStyle  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	statusStyle  = tcell.StyleDefault.Reverse(true)
	historyStyle = tcell.StyleDefault.Foreground(tcell.ColorBlue)
)

const maxHistory = 5

type canvas struct {
	screen     tcell.Screen
	translator *tcelladapter.Translator
	picker     *picker.Picker
	history    []string
	selections []domain.Selection
}

// RunCanvas runs an interactive terminal canvas driving one picker. Every
// completed selection is returned once the user quits with q or Ctrl-C, or
// ctx is cancelled.
func RunCanvas(ctx context.Context, opts CanvasOptions) ([]domain.Selection, error) {
	screen := opts.Screen
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return nil, err
		}
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.EnableFocus()
	screen.HideCursor()

	c := &canvas{screen: screen, translator: tcelladapter.NewTranslator()}

	pickerOpts := []picker.Option{
		picker.WithLifecycleHooks(domain.LifecycleHooks{
			OnSelected: func(_ string, sel domain.Selection) {
				c.selections = append(c.selections, sel)
				c.remember(fmt.Sprintf("%s %v", sel.Type, sel.Points))
			},
			OnAbort: func(*domain.SelectionEvent) {
				c.remember("aborted")
			},
		}),
		picker.WithLifecycleHooks(opts.Hooks),
	}
	if opts.Matcher != nil {
		pickerOpts = append(pickerOpts, picker.WithMatcher(opts.Matcher))
	}
	if opts.Logger != nil {
		pickerOpts = append(pickerOpts, picker.WithLogger(opts.Logger))
	}
	p, err := picker.New(opts.Machine, pickerOpts...)
	if err != nil {
		return nil, err
	}
	c.picker = p

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	c.draw()
	for {
		select {
		case <-ctx.Done():
			return c.selections, nil
		case ev, ok := <-events:
			if !ok || c.quit(ev) {
				return c.selections, nil
			}
			if _, resized := ev.(*tcell.EventResize); resized {
				screen.Sync()
			}
			for _, dev := range c.translator.Translate(ev) {
				c.picker.Feed(dev)
			}
			c.draw()
		}
	}
}

func (c *canvas) quit(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	return key.Key() == tcell.KeyCtrlC || (key.Key() == tcell.KeyRune && key.Rune() == 'q')
}

func (c *canvas) remember(line string) {
	c.history = append(c.history, line)
	if len(c.history) > maxHistory {
		c.history = c.history[1:]
	}
}

func (c *canvas) draw() {
	c.screen.Clear()
	w, h := c.screen.Size()

	points := c.picker.Points()
	for i, pt := range points {
		style := pointStyle
		if i == len(points)-1 {
			style = lastStyle
		}
		c.screen.SetContent(pt.X, pt.Y, '●', nil, style)
	}

	cur := c.translator.Cursor()
	c.screen.SetContent(cur.X, cur.Y, '+', nil, cursorStyle)

	for i, line := range c.history {
		drawText(c.screen, 0, i, historyStyle, line)
	}

	m := c.picker.Machine()
	status := fmt.Sprintf(" %s | state %s | %d points | (%d,%d) | q to quit ",
		m.Kind(), m.StateName(m.State()), len(points), cur.X, cur.Y)
	for x := 0; x < w; x++ {
		c.screen.SetContent(x, h-1, ' ', nil, statusStyle)
	}
	drawText(c.screen, 0, h-1, statusStyle, status)

	c.screen.Show()
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
