package machine

import (
	"github.com/aretw0/picker/pkg/domain"
	"github.com/aretw0/picker/pkg/ports"
)

// ClickPointIdle is the only state of ClickPoint.
const ClickPointIdle State = iota

// ClickPoint selects a point with a single click or key press. Every
// selection begins and ends within one event.
type ClickPoint struct {
	base
}

// NewClickPoint creates a click-point machine.
func NewClickPoint() *ClickPoint {
	return &ClickPoint{base: newBase(KindClickPoint, domain.PointSelection, "idle")}
}

// Transition implements Machine.
func (c *ClickPoint) Transition(m ports.RoleMatcher, ev domain.Event) domain.Commands {
	var cmds domain.Commands

	switch ev.Kind {
	case domain.EventPress:
		if mousePressed(m, domain.MouseSelect1, ev) {
			c.selectPoint(&cmds)
		}
	case domain.EventKeyPress:
		if keyPressed(m, domain.KeySelect1, ev) {
			c.selectPoint(&cmds)
		}
	}

	return cmds
}

func (c *ClickPoint) selectPoint(cmds *domain.Commands) {
	cmds.Push(domain.Begin)
	cmds.Push(domain.Append)
	c.emitEnd(cmds)
}
