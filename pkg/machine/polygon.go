package machine

import (
	"github.com/aretw0/picker/pkg/domain"
	"github.com/aretw0/picker/pkg/ports"
)

// Polygon states.
const (
	PolygonIdle State = iota
	PolygonCollecting
)

// Polygon collects vertices until closed. The primary gesture starts the
// selection or commits the trailing vertex and opens a new one; the secondary
// gesture closes the polygon. The trailing vertex follows the pointer.
type Polygon struct {
	base
}

// NewPolygon creates a polygon machine.
func NewPolygon() *Polygon {
	return &Polygon{base: newBase(KindPolygon, domain.PolygonSelection, "idle", "collecting")}
}

// Transition implements Machine.
func (p *Polygon) Transition(m ports.RoleMatcher, ev domain.Event) domain.Commands {
	var cmds domain.Commands

	switch ev.Kind {
	case domain.EventPress:
		if m.MouseMatch(domain.MouseSelect1, ev) {
			p.appendVertex(&cmds)
		} else if m.MouseMatch(domain.MouseSelect2, ev) && p.state == PolygonCollecting {
			p.emitEnd(&cmds)
		}
	case domain.EventMove, domain.EventWheel:
		if p.active() {
			cmds.Push(domain.Move)
		}
	case domain.EventKeyPress:
		if keyPressed(m, domain.KeySelect1, ev) {
			p.appendVertex(&cmds)
		} else if keyPressed(m, domain.KeySelect2, ev) && p.state == PolygonCollecting {
			p.emitEnd(&cmds)
		}
	}

	return cmds
}

func (p *Polygon) appendVertex(cmds *domain.Commands) {
	if p.state == PolygonIdle {
		cmds.Push(domain.Begin)
		cmds.Push(domain.Append)
		cmds.Push(domain.Append)
		p.state = PolygonCollecting
		return
	}
	cmds.Push(domain.Append)
}
