package machine

import (
	"github.com/aretw0/picker/pkg/domain"
	"github.com/aretw0/picker/pkg/ports"
)

// DragRect states. Active is 2: both corner slots are open.
const (
	DragRectIdle   State = 0
	DragRectActive State = 2
)

// DragRect selects a rectangle with one press-drag-release. Both corners
// open at the press position and the second follows the pointer until the
// release. A key press toggles the same gesture.
type DragRect struct {
	base
}

// NewDragRect creates a drag-rect machine.
func NewDragRect() *DragRect {
	return &DragRect{base: newBase(KindDragRect, domain.RectSelection, "idle", "", "active")}
}

// Transition implements Machine.
func (d *DragRect) Transition(m ports.RoleMatcher, ev domain.Event) domain.Commands {
	var cmds domain.Commands

	switch ev.Kind {
	case domain.EventPress:
		if mousePressed(m, domain.MouseSelect1, ev) && d.state == DragRectIdle {
			d.open(&cmds)
		}
	case domain.EventMove, domain.EventWheel:
		if d.active() {
			cmds.Push(domain.Move)
		}
	case domain.EventRelease:
		if d.state == DragRectActive {
			d.emitEnd(&cmds)
		}
	case domain.EventKeyPress:
		if !keyPressed(m, domain.KeySelect1, ev) {
			break
		}
		switch d.state {
		case DragRectIdle:
			d.open(&cmds)
		case DragRectActive:
			d.emitEnd(&cmds)
		}
	}

	return cmds
}

func (d *DragRect) open(cmds *domain.Commands) {
	cmds.Push(domain.Begin)
	cmds.Push(domain.Append)
	cmds.Push(domain.Append)
	d.state = DragRectActive
}
