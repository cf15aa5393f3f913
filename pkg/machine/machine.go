package machine

import (
	"fmt"

	"github.com/aretw0/picker/pkg/domain"
	"github.com/aretw0/picker/pkg/ports"
)

// State is the per-machine state. Zero is idle in every machine; the meaning
// of other values is defined by each machine's named constants.
type State uint8

// Idle is the initial state shared by all machines.
const Idle State = 0

// Machine is a selection automaton.
type Machine interface {
	// Kind returns the registry name of the machine.
	Kind() Kind
	// SelectionType returns the shape the machine builds toward.
	SelectionType() domain.SelectionType
	// State returns the current state.
	State() State
	// SetState overwrites the state without validation.
	SetState(State)
	// Reset forces the machine back to Idle without emitting commands.
	Reset()
	// StateName returns a readable name for s.
	StateName(s State) string
	// Transition consumes one event and returns the commands it produces.
	Transition(m ports.RoleMatcher, ev domain.Event) domain.Commands
}

// base carries the state and selection type shared by every machine.
type base struct {
	kind          Kind
	selectionType domain.SelectionType
	state         State
	names         []string
}

func newBase(kind Kind, t domain.SelectionType, names ...string) base {
	return base{kind: kind, selectionType: t, names: names}
}

func (b *base) Kind() Kind                          { return b.kind }
func (b *base) SelectionType() domain.SelectionType { return b.selectionType }
func (b *base) State() State                        { return b.state }
func (b *base) SetState(s State)                    { b.state = s }
func (b *base) Reset()                              { b.state = Idle }

func (b *base) StateName(s State) string {
	if int(s) < len(b.names) && b.names[s] != "" {
		return b.names[s]
	}
	return fmt.Sprintf("state-%d", s)
}

// active reports whether a gesture is in progress.
func (b *base) active() bool {
	return b.state != Idle
}

// emitEnd pushes End and returns the machine to Idle.
func (b *base) emitEnd(cmds *domain.Commands) {
	cmds.Push(domain.End)
	b.state = Idle
}

// keyPressed reports a fresh (non auto-repeat) key press matching role.
// Auto-repeat presses are dropped so a held key cannot spam selections.
func keyPressed(m ports.RoleMatcher, role domain.Role, ev domain.Event) bool {
	return ev.Kind == domain.EventKeyPress && !ev.AutoRepeat && m.KeyMatch(role, ev)
}

// mousePressed reports a button press matching role.
func mousePressed(m ports.RoleMatcher, role domain.Role, ev domain.Event) bool {
	return ev.Kind == domain.EventPress && m.MouseMatch(role, ev)
}
