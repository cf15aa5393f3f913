package machine

import (
	"github.com/aretw0/picker/pkg/domain"
	"github.com/aretw0/picker/pkg/ports"
)

// ClickRect states.
const (
	ClickRectIdle State = iota
	ClickRectFirstCorner
	ClickRectSecondCorner
)

// ClickRect selects a rectangle from two corners. With the mouse, the press
// opens the first corner and the release commits the second, which is then
// held open until the next press closes the selection. With the keyboard,
// three presses open, commit the second corner and close.
type ClickRect struct {
	base
}

// NewClickRect creates a click-rect machine.
func NewClickRect() *ClickRect {
	return &ClickRect{base: newBase(KindClickRect, domain.RectSelection,
		"idle", "first-corner", "second-corner")}
}

// Transition implements Machine.
func (c *ClickRect) Transition(m ports.RoleMatcher, ev domain.Event) domain.Commands {
	var cmds domain.Commands

	switch ev.Kind {
	case domain.EventPress:
		if !mousePressed(m, domain.MouseSelect1, ev) {
			break
		}
		switch c.state {
		case ClickRectIdle:
			cmds.Push(domain.Begin)
			cmds.Push(domain.Append)
			c.state = ClickRectFirstCorner
		case ClickRectFirstCorner:
			// A second press without a release in between means the release
			// was lost. It is ignored, not corrected.
		default:
			c.emitEnd(&cmds)
		}
	case domain.EventMove, domain.EventWheel:
		if c.active() {
			cmds.Push(domain.Move)
		}
	case domain.EventRelease:
		if m.MouseMatch(domain.MouseSelect1, ev) && c.state == ClickRectFirstCorner {
			cmds.Push(domain.Append)
			c.state = ClickRectSecondCorner
		}
	case domain.EventKeyPress:
		if !keyPressed(m, domain.KeySelect1, ev) {
			break
		}
		switch c.state {
		case ClickRectIdle:
			cmds.Push(domain.Begin)
			cmds.Push(domain.Append)
			c.state = ClickRectFirstCorner
		case ClickRectFirstCorner:
			cmds.Push(domain.Append)
			c.state = ClickRectSecondCorner
		case ClickRectSecondCorner:
			c.emitEnd(&cmds)
		}
	}

	return cmds
}
