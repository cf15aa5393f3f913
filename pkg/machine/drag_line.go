package machine

import (
	"github.com/aretw0/picker/pkg/domain"
	"github.com/aretw0/picker/pkg/ports"
)

// DragLine states.
const (
	DragLineIdle State = iota
	DragLineActive
)

// DragLine selects exactly two points, the second following the pointer.
// A common use is distance measurement.
type DragLine struct {
	base
}

// NewDragLine creates a drag-line machine. Its result is a two-point polygon.
func NewDragLine() *DragLine {
	return &DragLine{base: newBase(KindDragLine, domain.PolygonSelection, "idle", "active")}
}

// Transition implements Machine.
func (d *DragLine) Transition(m ports.RoleMatcher, ev domain.Event) domain.Commands {
	var cmds domain.Commands

	switch ev.Kind {
	case domain.EventPress:
		if mousePressed(m, domain.MouseSelect1, ev) && d.state == DragLineIdle {
			d.open(&cmds)
		}
	case domain.EventKeyPress:
		if !keyPressed(m, domain.KeySelect1, ev) {
			break
		}
		if d.state == DragLineIdle {
			d.open(&cmds)
		} else {
			d.emitEnd(&cmds)
		}
	case domain.EventMove, domain.EventWheel:
		if d.active() {
			cmds.Push(domain.Move)
		}
	case domain.EventRelease:
		if d.active() {
			d.emitEnd(&cmds)
		}
	}

	return cmds
}

func (d *DragLine) open(cmds *domain.Commands) {
	cmds.Push(domain.Begin)
	cmds.Push(domain.Append)
	cmds.Push(domain.Append)
	d.state = DragLineActive
}
