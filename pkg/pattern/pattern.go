package pattern

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/picker/pkg/domain"
	"github.com/aretw0/picker/pkg/ports"
)

// MouseBinding is the button and modifier combination bound to a mouse role.
type MouseBinding struct {
	Button    domain.Button    `json:"button" yaml:"button" mapstructure:"button"`
	Modifiers domain.Modifiers `json:"modifiers,omitempty" yaml:"modifiers,omitempty" mapstructure:"modifiers"`
}

func (b MouseBinding) String() string {
	if b.Modifiers == 0 {
		return b.Button.String()
	}
	return b.Modifiers.String() + "+" + b.Button.String()
}

// KeyBinding is the key and modifier combination bound to a key role.
type KeyBinding struct {
	Key       domain.Key       `json:"key" yaml:"key" mapstructure:"key"`
	Modifiers domain.Modifiers `json:"modifiers,omitempty" yaml:"modifiers,omitempty" mapstructure:"modifiers"`
}

func (b KeyBinding) String() string {
	if b.Modifiers == 0 {
		return string(b.Key)
	}
	return b.Modifiers.String() + "+" + string(b.Key)
}

// EventPattern maps roles to concrete input. It implements ports.RoleMatcher.
type EventPattern struct {
	mouse map[domain.Role]MouseBinding
	keys  map[domain.Role]KeyBinding
}

var _ ports.RoleMatcher = (*EventPattern)(nil)

// New returns a pattern with the default bindings:
// left/right button for MouseSelect1/2, Enter/Space for KeySelect1/2 and
// Esc for KeyAbort.
func New() *EventPattern {
	p := &EventPattern{
		mouse: make(map[domain.Role]MouseBinding),
		keys:  make(map[domain.Role]KeyBinding),
	}
	p.InitMousePattern()
	p.InitKeyPattern()
	return p
}

// InitMousePattern restores the default mouse bindings.
func (p *EventPattern) InitMousePattern() {
	p.mouse[domain.MouseSelect1] = MouseBinding{Button: domain.ButtonLeft}
	p.mouse[domain.MouseSelect2] = MouseBinding{Button: domain.ButtonRight}
}

// InitKeyPattern restores the default key bindings.
func (p *EventPattern) InitKeyPattern() {
	p.keys[domain.KeySelect1] = KeyBinding{Key: domain.KeyEnter}
	p.keys[domain.KeySelect2] = KeyBinding{Key: domain.KeySpace}
	p.keys[domain.KeyAbort] = KeyBinding{Key: domain.KeyEscape}
}

// SetMousePattern binds a mouse role.
func (p *EventPattern) SetMousePattern(role domain.Role, b MouseBinding) error {
	if !role.IsMouse() {
		return fmt.Errorf("%w: %s is not a mouse role", domain.ErrInvalidBinding, role)
	}
	if b.Button == domain.ButtonNone {
		return fmt.Errorf("%w: %s needs a button", domain.ErrInvalidBinding, role)
	}
	p.mouse[role] = b
	return nil
}

// SetKeyPattern binds a key role.
func (p *EventPattern) SetKeyPattern(role domain.Role, b KeyBinding) error {
	if role.IsMouse() {
		return fmt.Errorf("%w: %s is not a key role", domain.ErrInvalidBinding, role)
	}
	if b.Key == domain.KeyNone {
		return fmt.Errorf("%w: %s needs a key", domain.ErrInvalidBinding, role)
	}
	p.keys[role] = b
	return nil
}

// MousePattern returns the binding of a mouse role.
func (p *EventPattern) MousePattern(role domain.Role) (MouseBinding, bool) {
	b, ok := p.mouse[role]
	return b, ok
}

// KeyPattern returns the binding of a key role.
func (p *EventPattern) KeyPattern(role domain.Role) (KeyBinding, bool) {
	b, ok := p.keys[role]
	return b, ok
}

// MouseMatch implements ports.RoleMatcher. Button and modifiers must match
// exactly; releases match on the released button.
func (p *EventPattern) MouseMatch(role domain.Role, ev domain.Event) bool {
	if ev.Kind != domain.EventPress && ev.Kind != domain.EventRelease {
		return false
	}
	b, ok := p.mouse[role]
	if !ok {
		return false
	}
	return ev.Button == b.Button && ev.Modifiers == b.Modifiers
}

// KeyMatch implements ports.RoleMatcher. Single-character keys compare
// case-insensitively; modifiers must match exactly.
func (p *EventPattern) KeyMatch(role domain.Role, ev domain.Event) bool {
	if !ev.IsKey() {
		return false
	}
	b, ok := p.keys[role]
	if !ok {
		return false
	}
	return sameKey(ev.Key, b.Key) && ev.Modifiers == b.Modifiers
}

func sameKey(a, b domain.Key) bool {
	if len([]rune(string(a))) == 1 && len([]rune(string(b))) == 1 {
		return strings.EqualFold(string(a), string(b))
	}
	return a == b
}

// Bindings returns a readable binding for every bound role.
func (p *EventPattern) Bindings() map[domain.Role]string {
	out := make(map[domain.Role]string, len(p.mouse)+len(p.keys))
	for r, b := range p.mouse {
		out[r] = b.String()
	}
	for r, b := range p.keys {
		out[r] = b.String()
	}
	return out
}

// Roles returns the bound roles in ascending order.
func (p *EventPattern) Roles() []domain.Role {
	roles := make([]domain.Role, 0, len(p.mouse)+len(p.keys))
	for r := range p.mouse {
		roles = append(roles, r)
	}
	for r := range p.keys {
		roles = append(roles, r)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles
}
