package machine

import (
	"github.com/aretw0/picker/pkg/domain"
	"github.com/aretw0/picker/pkg/ports"
)

// DragPoint states.
const (
	DragPointIdle State = iota
	DragPointActive
)

// DragPoint selects one point that can be repositioned before it is
// committed. A press starts the selection and the release commits it; with
// the keyboard, a second key press commits.
type DragPoint struct {
	base
}

// NewDragPoint creates a drag-point machine.
func NewDragPoint() *DragPoint {
	return &DragPoint{base: newBase(KindDragPoint, domain.PointSelection, "idle", "active")}
}

// Transition implements Machine.
func (d *DragPoint) Transition(m ports.RoleMatcher, ev domain.Event) domain.Commands {
	var cmds domain.Commands

	switch ev.Kind {
	case domain.EventPress:
		if mousePressed(m, domain.MouseSelect1, ev) && d.state == DragPointIdle {
			cmds.Push(domain.Begin)
			cmds.Push(domain.Append)
			d.state = DragPointActive
		}
	case domain.EventMove, domain.EventWheel:
		if d.active() {
			cmds.Push(domain.Move)
		}
	case domain.EventRelease:
		if d.active() {
			d.emitEnd(&cmds)
		}
	case domain.EventKeyPress:
		if !keyPressed(m, domain.KeySelect1, ev) {
			break
		}
		if d.state == DragPointIdle {
			cmds.Push(domain.Begin)
			cmds.Push(domain.Append)
			d.state = DragPointActive
		} else {
			d.emitEnd(&cmds)
		}
	}

	return cmds
}
