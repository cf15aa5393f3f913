// Package gio adapts Gio pointer and key events into picker events.
package gio

import (
	"math"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"github.com/aretw0/picker/pkg/domain"
)

var buttonOrder = []struct {
	mask   pointer.Buttons
	button domain.Button
}{
	{pointer.ButtonPrimary, domain.ButtonLeft},
	{pointer.ButtonSecondary, domain.ButtonRight},
	{pointer.ButtonTertiary, domain.ButtonMiddle},
}

var keyNames = map[string]domain.Key{
	key.NameReturn:         domain.KeyEnter,
	key.NameEnter:          domain.KeyEnter,
	key.NameEscape:         domain.KeyEscape,
	key.NameTab:            domain.KeyTab,
	key.NameDeleteBackward: domain.KeyBackspace,
	key.NameDeleteForward:  domain.KeyDelete,
	key.NameUpArrow:        domain.KeyUp,
	key.NameDownArrow:      domain.KeyDown,
	key.NameLeftArrow:      domain.KeyLeft,
	key.NameRightArrow:     domain.KeyRight,
	"Space":                domain.KeySpace,
	" ":                    domain.KeySpace,
}

// Translator converts Gio events into domain events. Positions are rounded
// to whole pixels in the coordinate space of the receiving handler.
type Translator struct {
	buttons pointer.Buttons
	last    domain.Point
}

// NewTranslator creates a translator with no buttons held.
func NewTranslator() *Translator {
	return &Translator{}
}

// Translate returns the domain events ev stands for, possibly none.
func (t *Translator) Translate(ev event.Event) []domain.Event {
	switch ev := ev.(type) {
	case pointer.Event:
		return t.pointer(ev)
	case key.Event:
		return t.key(ev)
	}
	return nil
}

func (t *Translator) pointer(ev pointer.Event) []domain.Event {
	pos := domain.Point{
		X: int(math.Round(float64(ev.Position.X))),
		Y: int(math.Round(float64(ev.Position.Y))),
	}
	mods := modifiers(ev.Modifiers)
	t.last = pos

	var out []domain.Event
	switch ev.Type {
	case pointer.Press:
		for _, b := range t.changed(ev.Buttons &^ t.buttons) {
			out = append(out, domain.Event{Kind: domain.EventPress, Pos: pos, Button: b, Modifiers: mods})
		}
	case pointer.Release:
		for _, b := range t.changed(t.buttons &^ ev.Buttons) {
			out = append(out, domain.Event{Kind: domain.EventRelease, Pos: pos, Button: b, Modifiers: mods})
		}
	case pointer.Move, pointer.Drag:
		out = append(out, domain.Event{Kind: domain.EventMove, Pos: pos, Modifiers: mods})
	case pointer.Scroll:
		if d := wheelDelta(ev.Scroll.Y); d != 0 {
			out = append(out, domain.Event{Kind: domain.EventWheel, Pos: pos, Delta: d, Modifiers: mods})
		}
	case pointer.Enter:
		out = append(out, domain.Enter(pos))
	case pointer.Leave, pointer.Cancel:
		out = append(out, domain.Leave())
		t.buttons = 0
		return out
	}
	t.buttons = ev.Buttons
	return out
}

// changed lists the buttons in diff. Touch input carries no button set and
// counts as the primary button.
func (t *Translator) changed(diff pointer.Buttons) []domain.Button {
	if diff == 0 {
		return []domain.Button{domain.ButtonLeft}
	}
	var out []domain.Button
	for _, b := range buttonOrder {
		if diff.Contain(b.mask) {
			out = append(out, b.button)
		}
	}
	return out
}

func (t *Translator) key(ev key.Event) []domain.Event {
	k, ok := keyName(ev.Name)
	if !ok {
		return nil
	}
	kind := domain.EventKeyPress
	if ev.State == key.Release {
		kind = domain.EventKeyRelease
	}
	return []domain.Event{{Kind: kind, Pos: t.last, Key: k, Modifiers: modifiers(ev.Modifiers)}}
}

func keyName(name string) (domain.Key, bool) {
	if k, ok := keyNames[name]; ok {
		return k, true
	}
	if len([]rune(name)) == 1 {
		return domain.Key(name), true
	}
	return domain.KeyNone, false
}

// wheelDelta converts a scroll distance into notches. Gio reports scrolling
// towards the user as positive.
func wheelDelta(y float32) int {
	switch {
	case y < 0:
		return 1
	case y > 0:
		return -1
	}
	return 0
}

func modifiers(m key.Modifiers) domain.Modifiers {
	var out domain.Modifiers
	if m.Contain(key.ModShift) {
		out |= domain.ModShift
	}
	if m.Contain(key.ModCtrl) {
		out |= domain.ModCtrl
	}
	if m.Contain(key.ModAlt) {
		out |= domain.ModAlt
	}
	if m.Contain(key.ModSuper) || m.Contain(key.ModCommand) {
		out |= domain.ModMeta
	}
	return out
}
