package machine

import (
	"github.com/aretw0/picker/pkg/domain"
	"github.com/aretw0/picker/pkg/ports"
)

// Tracker states.
const (
	TrackerIdle State = iota
	Tracking
)

// Tracker follows the pointer without selecting anything. Begin/End are
// tied to the pointer entering and leaving the surface.
//
// A leave while idle emits nothing rather than Remove, End, so every
// non-empty sequence from idle starts with Begin.
type Tracker struct {
	base
}

// NewTracker creates a tracker machine.
func NewTracker() *Tracker {
	return &Tracker{base: newBase(KindTracker, domain.NoSelection, "idle", "tracking")}
}

// Transition implements Machine.
func (t *Tracker) Transition(_ ports.RoleMatcher, ev domain.Event) domain.Commands {
	var cmds domain.Commands

	switch ev.Kind {
	case domain.EventEnter, domain.EventMove:
		if t.state == TrackerIdle {
			cmds.Push(domain.Begin)
			cmds.Push(domain.Append)
			t.state = Tracking
		} else if ev.Kind == domain.EventMove {
			cmds.Push(domain.Move)
		}
	case domain.EventLeave:
		// Leaving while idle has nothing to remove.
		if t.active() {
			cmds.Push(domain.Remove)
			t.emitEnd(&cmds)
		}
	}

	return cmds
}
