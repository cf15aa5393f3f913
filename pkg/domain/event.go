package domain

import (
	"fmt"
	"strings"
)

// EventKind classifies an input event. It is all the automatons know about
// where an event came from.
type EventKind uint8

const (
	EventNone EventKind = iota
	EventPress
	EventRelease
	EventMove
	EventWheel
	EventEnter
	EventLeave
	EventKeyPress
	EventKeyRelease
)

var eventKindNames = [...]string{
	"none", "press", "release", "move", "wheel", "enter", "leave", "key-press", "key-release",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *EventKind) UnmarshalText(b []byte) error {
	want := strings.ToLower(strings.TrimSpace(string(b)))
	for i, name := range eventKindNames {
		if name == want {
			*k = EventKind(i)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown event kind %q", ErrInvalidEvent, string(b))
}

// Button identifies the mouse button involved in a press or release.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
	ButtonBack
	ButtonForward
)

var buttonNames = [...]string{"none", "left", "right", "middle", "back", "forward"}

func (b Button) String() string {
	if int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return fmt.Sprintf("Button(%d)", uint8(b))
}

// MarshalText implements encoding.TextMarshaler.
func (b Button) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Button) UnmarshalText(text []byte) error {
	parsed, err := ParseButton(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseButton resolves a button by name. "primary" and "secondary" are
// accepted as aliases for left and right.
func ParseButton(s string) (Button, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	switch want {
	case "", "none":
		return ButtonNone, nil
	case "primary":
		return ButtonLeft, nil
	case "secondary":
		return ButtonRight, nil
	case "tertiary":
		return ButtonMiddle, nil
	}
	for i, name := range buttonNames {
		if name == want {
			return Button(i), nil
		}
	}
	return ButtonNone, fmt.Errorf("%w: unknown button %q", ErrInvalidBinding, s)
}

// Modifiers is the set of keyboard modifiers active during an event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

var modifierNames = []struct {
	mod  Modifiers
	name string
}{
	{ModShift, "shift"},
	{ModCtrl, "ctrl"},
	{ModAlt, "alt"},
	{ModMeta, "meta"},
}

// Contain reports whether all modifiers in m2 are set in m.
func (m Modifiers) Contain(m2 Modifiers) bool {
	return m&m2 == m2
}

func (m Modifiers) String() string {
	var parts []string
	for _, mn := range modifierNames {
		if m&mn.mod != 0 {
			parts = append(parts, mn.name)
		}
	}
	return strings.Join(parts, "+")
}

// MarshalText implements encoding.TextMarshaler.
func (m Modifiers) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Modifiers) UnmarshalText(b []byte) error {
	parsed, err := ParseModifiers(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseModifiers parses a "+", "-" or "," separated list such as "ctrl+shift".
func ParseModifiers(s string) (Modifiers, error) {
	var m Modifiers
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '+' || r == '-' || r == ',' || r == ' '
	})
	for _, f := range fields {
		switch f {
		case "shift":
			m |= ModShift
		case "ctrl", "control":
			m |= ModCtrl
		case "alt", "option":
			m |= ModAlt
		case "meta", "super", "cmd", "command":
			m |= ModMeta
		default:
			return 0, fmt.Errorf("%w: unknown modifier %q", ErrInvalidBinding, f)
		}
	}
	return m, nil
}

// Key names a keyboard key. Named keys use the constants below; printable keys
// are the character itself.
type Key string

const (
	KeyNone      Key = ""
	KeyEnter     Key = "Enter"
	KeySpace     Key = "Space"
	KeyEscape    Key = "Esc"
	KeyTab       Key = "Tab"
	KeyBackspace Key = "Backspace"
	KeyDelete    Key = "Delete"
	KeyUp        Key = "Up"
	KeyDown      Key = "Down"
	KeyLeft      Key = "Left"
	KeyRight     Key = "Right"
)

var keyAliases = map[string]Key{
	"enter":     KeyEnter,
	"return":    KeyEnter,
	"space":     KeySpace,
	" ":         KeySpace,
	"esc":       KeyEscape,
	"escape":    KeyEscape,
	"tab":       KeyTab,
	"backspace": KeyBackspace,
	"delete":    KeyDelete,
	"del":       KeyDelete,
	"up":        KeyUp,
	"down":      KeyDown,
	"left":      KeyLeft,
	"right":     KeyRight,
}

// ParseKey normalizes a key name. Single characters are kept verbatim.
func ParseKey(s string) (Key, error) {
	if s == "" {
		return KeyNone, nil
	}
	if k, ok := keyAliases[strings.ToLower(s)]; ok {
		return k, nil
	}
	if len([]rune(s)) == 1 {
		return Key(s), nil
	}
	return KeyNone, fmt.Errorf("%w: unknown key %q", ErrInvalidBinding, s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Key) UnmarshalText(b []byte) error {
	parsed, err := ParseKey(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Event is a single classified input event.
type Event struct {
	Kind      EventKind `json:"kind" yaml:"kind"`
	Pos       Point     `json:"pos" yaml:"pos"`
	Button    Button    `json:"button,omitempty" yaml:"button,omitempty"`
	Modifiers Modifiers `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Key       Key       `json:"key,omitempty" yaml:"key,omitempty"`

	// AutoRepeat is set on key presses synthesized by a held key.
	AutoRepeat bool `json:"auto_repeat,omitempty" yaml:"auto_repeat,omitempty"`

	// Delta is the wheel rotation for EventWheel (positive: away from the user).
	Delta int `json:"delta,omitempty" yaml:"delta,omitempty"`
}

// IsMouse reports whether the event comes from the pointer.
func (e Event) IsMouse() bool {
	switch e.Kind {
	case EventPress, EventRelease, EventMove, EventWheel, EventEnter, EventLeave:
		return true
	}
	return false
}

// IsKey reports whether the event comes from the keyboard.
func (e Event) IsKey() bool {
	return e.Kind == EventKeyPress || e.Kind == EventKeyRelease
}

func (e Event) String() string {
	switch {
	case e.IsKey():
		s := fmt.Sprintf("%s %s", e.Kind, e.Key)
		if e.Modifiers != 0 {
			s += " " + e.Modifiers.String()
		}
		if e.AutoRepeat {
			s += " (repeat)"
		}
		return s
	case e.Kind == EventPress || e.Kind == EventRelease:
		s := fmt.Sprintf("%s %s %s", e.Kind, e.Button, e.Pos)
		if e.Modifiers != 0 {
			s += " " + e.Modifiers.String()
		}
		return s
	default:
		return fmt.Sprintf("%s %s", e.Kind, e.Pos)
	}
}

// Validate checks that the event carries what its kind needs.
func (e Event) Validate() error {
	switch e.Kind {
	case EventNone:
		return fmt.Errorf("%w: missing kind", ErrInvalidEvent)
	case EventKeyPress, EventKeyRelease:
		if e.Key == KeyNone {
			return fmt.Errorf("%w: %s without key", ErrInvalidEvent, e.Kind)
		}
	case EventPress, EventRelease:
		if e.Button == ButtonNone {
			return fmt.Errorf("%w: %s without button", ErrInvalidEvent, e.Kind)
		}
	}
	return nil
}

// Press builds a button press at pos.
func Press(b Button, pos Point) Event {
	return Event{Kind: EventPress, Button: b, Pos: pos}
}

// Release builds a button release at pos.
func Release(b Button, pos Point) Event {
	return Event{Kind: EventRelease, Button: b, Pos: pos}
}

// MoveTo builds a pointer motion to pos.
func MoveTo(pos Point) Event {
	return Event{Kind: EventMove, Pos: pos}
}

// Wheel builds a wheel rotation at pos.
func Wheel(delta int, pos Point) Event {
	return Event{Kind: EventWheel, Delta: delta, Pos: pos}
}

// Enter builds a pointer-enter at pos.
func Enter(pos Point) Event {
	return Event{Kind: EventEnter, Pos: pos}
}

// Leave builds a pointer-leave.
func Leave() Event {
	return Event{Kind: EventLeave}
}

// KeyPress builds a non-repeating key press at the current cursor position.
func KeyPress(k Key, pos Point) Event {
	return Event{Kind: EventKeyPress, Key: k, Pos: pos}
}

// KeyRepeat builds an auto-repeat key press.
func KeyRepeat(k Key, pos Point) Event {
	return Event{Kind: EventKeyPress, Key: k, Pos: pos, AutoRepeat: true}
}
