// Package tcell adapts terminal input from tcell into picker events.
//
// Terminals report the full button mask on every mouse event, so presses and
// releases are derived from the difference with the previous mask. Terminals
// have no pointer-enter notion: the first mouse event synthesizes one, and
// focus changes map to enter and leave.
package tcell

import (
	"github.com/aretw0/picker/pkg/domain"
	backend "github.com/gdamore/tcell/v2"
)

var buttonOrder = []struct {
	mask   backend.ButtonMask
	button domain.Button
}{
	{backend.Button1, domain.ButtonLeft},
	{backend.Button2, domain.ButtonRight},
	{backend.Button3, domain.ButtonMiddle},
	{backend.Button4, domain.ButtonBack},
	{backend.Button5, domain.ButtonForward},
}

const wheelMask = backend.WheelUp | backend.WheelDown | backend.WheelLeft | backend.WheelRight

var keyNames = map[backend.Key]domain.Key{
	backend.KeyEnter:      domain.KeyEnter,
	backend.KeyEscape:     domain.KeyEscape,
	backend.KeyTab:        domain.KeyTab,
	backend.KeyBackspace:  domain.KeyBackspace,
	backend.KeyBackspace2: domain.KeyBackspace,
	backend.KeyDelete:     domain.KeyDelete,
	backend.KeyUp:         domain.KeyUp,
	backend.KeyDown:       domain.KeyDown,
	backend.KeyLeft:       domain.KeyLeft,
	backend.KeyRight:      domain.KeyRight,
}

// Translator converts tcell events into domain events. It is stateful and
// must see every event of one screen, in order.
type Translator struct {
	buttons backend.ButtonMask
	last    domain.Point
	inside  bool
}

// NewTranslator creates a translator with no buttons held.
func NewTranslator() *Translator {
	return &Translator{}
}

// Cursor returns the last known pointer cell.
func (t *Translator) Cursor() domain.Point {
	return t.last
}

// Translate returns the domain events ev stands for, possibly none.
func (t *Translator) Translate(ev backend.Event) []domain.Event {
	switch ev := ev.(type) {
	case *backend.EventMouse:
		return t.mouse(ev)
	case *backend.EventKey:
		return t.key(ev)
	case *backend.EventFocus:
		return t.focus(ev.Focused)
	}
	return nil
}

func (t *Translator) mouse(ev *backend.EventMouse) []domain.Event {
	x, y := ev.Position()
	pos := domain.Point{X: x, Y: y}
	mods := modifiers(ev.Modifiers())
	buttons := ev.Buttons()
	wheel := buttons & wheelMask
	buttons &^= wheelMask

	var out []domain.Event
	if !t.inside {
		t.inside = true
		out = append(out, domain.Enter(pos))
	} else if pos != t.last {
		out = append(out, domain.Event{Kind: domain.EventMove, Pos: pos, Modifiers: mods})
	}
	t.last = pos

	released := t.buttons &^ buttons
	pressed := buttons &^ t.buttons
	t.buttons = buttons

	for _, b := range buttonOrder {
		if released&b.mask != 0 {
			out = append(out, domain.Event{Kind: domain.EventRelease, Pos: pos, Button: b.button, Modifiers: mods})
		}
	}
	for _, b := range buttonOrder {
		if pressed&b.mask != 0 {
			out = append(out, domain.Event{Kind: domain.EventPress, Pos: pos, Button: b.button, Modifiers: mods})
		}
	}

	switch {
	case wheel&backend.WheelUp != 0:
		out = append(out, domain.Event{Kind: domain.EventWheel, Pos: pos, Delta: 1, Modifiers: mods})
	case wheel&backend.WheelDown != 0:
		out = append(out, domain.Event{Kind: domain.EventWheel, Pos: pos, Delta: -1, Modifiers: mods})
	}
	return out
}

func (t *Translator) key(ev *backend.EventKey) []domain.Event {
	k, ok := keyName(ev)
	if !ok {
		return nil
	}
	// Terminals do not distinguish held keys from repeated presses.
	return []domain.Event{{
		Kind:      domain.EventKeyPress,
		Pos:       t.last,
		Key:       k,
		Modifiers: modifiers(ev.Modifiers()),
	}}
}

func (t *Translator) focus(focused bool) []domain.Event {
	if focused == t.inside {
		return nil
	}
	t.inside = focused
	if !focused {
		t.buttons = 0
		return []domain.Event{domain.Leave()}
	}
	return []domain.Event{domain.Enter(t.last)}
}

func keyName(ev *backend.EventKey) (domain.Key, bool) {
	if ev.Key() == backend.KeyRune {
		r := ev.Rune()
		if r == ' ' {
			return domain.KeySpace, true
		}
		return domain.Key(string(r)), true
	}
	k, ok := keyNames[ev.Key()]
	return k, ok
}

func modifiers(m backend.ModMask) domain.Modifiers {
	var out domain.Modifiers
	if m&backend.ModShift != 0 {
		out |= domain.ModShift
	}
	if m&backend.ModCtrl != 0 {
		out |= domain.ModCtrl
	}
	if m&backend.ModAlt != 0 {
		out |= domain.ModAlt
	}
	if m&backend.ModMeta != 0 {
		out |= domain.ModMeta
	}
	return out
}
