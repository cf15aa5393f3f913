package picker

import (
	"log/slog"

	"github.com/aretw0/picker/internal/logging"
	"github.com/aretw0/picker/pkg/domain"
	"github.com/aretw0/picker/pkg/machine"
	"github.com/aretw0/picker/pkg/pattern"
	"github.com/aretw0/picker/pkg/ports"
)

// Picker feeds events into a selection machine and maintains the point
// buffer its commands describe.
type Picker struct {
	machine   machine.Machine
	matcher   ports.RoleMatcher
	transform ports.Transformer
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	abortKey  bool

	points []domain.Point
	active bool
	last   *domain.Selection
}

// Option defines a functional option for configuring the Picker.
type Option func(*Picker)

// WithMatcher sets the role matcher. Defaults to pattern.New().
func WithMatcher(m ports.RoleMatcher) Option {
	return func(p *Picker) {
		p.matcher = m
	}
}

// WithTransform sets the device to host coordinate mapping.
// Defaults to ports.IdentityTransform.
func WithTransform(t ports.Transformer) Option {
	return func(p *Picker) {
		p.transform = t
	}
}

// WithLifecycleHooks registers observability hooks. Repeated calls merge.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Picker) {
		p.hooks = p.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Picker) {
		p.logger = logger
	}
}

// WithAbortKey enables cancelling an active selection with the KeyAbort role.
// Enabled by default.
func WithAbortKey(enabled bool) Option {
	return func(p *Picker) {
		p.abortKey = enabled
	}
}

// New creates a Picker around a fresh machine of the given kind.
func New(kind machine.Kind, opts ...Option) (*Picker, error) {
	m, err := machine.New(kind)
	if err != nil {
		return nil, err
	}
	return NewWithMachine(m, opts...), nil
}

// NewWithMachine creates a Picker around an existing machine.
func NewWithMachine(m machine.Machine, opts ...Option) *Picker {
	p := &Picker{
		machine:  m,
		abortKey: true,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.matcher == nil {
		p.matcher = pattern.New()
	}
	if p.transform == nil {
		p.transform = ports.IdentityTransform
	}
	if p.logger == nil {
		p.logger = logging.NewNop()
	}
	p.logger = p.logger.With("machine", string(m.Kind()))

	return p
}

// Feed delivers one event and applies the resulting commands.
// It returns the commands the machine emitted.
func (p *Picker) Feed(ev domain.Event) domain.Commands {
	if p.abortKey && p.active && ev.Kind == domain.EventKeyPress && p.matcher.KeyMatch(domain.KeyAbort, ev) {
		p.abort()
		return domain.Commands{}
	}

	cmds := p.machine.Transition(p.matcher, ev)
	if cmds.Empty() {
		return cmds
	}

	p.logger.Debug("transition",
		"event", ev.String(),
		"commands", cmds.String(),
		"state", p.machine.StateName(p.machine.State()),
	)
	if p.hooks.OnCommands != nil {
		p.hooks.OnCommands(p.kind(), ev, cmds)
	}

	for cmd := range cmds.All() {
		p.apply(cmd, ev.Pos)
	}
	return cmds
}

func (p *Picker) apply(cmd domain.Command, pos domain.Point) {
	switch cmd {
	case domain.Begin:
		p.points = p.points[:0]
		p.active = true
		p.notify(p.hooks.OnBegin, domain.PointF{})
	case domain.Append:
		p.points = append(p.points, pos)
		p.notify(p.hooks.OnAppend, p.transform.Invert(pos))
	case domain.Move:
		if len(p.points) == 0 {
			return
		}
		p.points[len(p.points)-1] = pos
		p.notify(p.hooks.OnMove, p.transform.Invert(pos))
	case domain.Remove:
		if len(p.points) == 0 {
			return
		}
		p.points = p.points[:len(p.points)-1]
		p.notify(p.hooks.OnRemove, domain.PointF{})
	case domain.End:
		p.end()
	}
}

// end closes the selection and reports it when the buffer holds a result for
// the machine's selection type.
func (p *Picker) end() {
	p.active = false
	if len(p.points) == 0 {
		return
	}

	sel, ok := p.selection()
	if !ok {
		p.logger.Debug("selection discarded", "points", len(p.points))
		return
	}

	p.last = &sel
	p.logger.Info("selection completed",
		"type", sel.Type.String(),
		"points", len(sel.Points),
	)
	if p.hooks.OnSelected != nil {
		p.hooks.OnSelected(p.kind(), sel)
	}
}

func (p *Picker) selection() (domain.Selection, bool) {
	t := p.machine.SelectionType()
	sel := domain.Selection{Type: t}

	switch t {
	case domain.PointSelection:
		sel.Points = []domain.PointF{p.transform.Invert(p.points[0])}
	case domain.RectSelection:
		if len(p.points) < 2 {
			return sel, false
		}
		sel.Points = []domain.PointF{
			p.transform.Invert(p.points[0]),
			p.transform.Invert(p.points[len(p.points)-1]),
		}
	case domain.PolygonSelection:
		sel.Points = make([]domain.PointF, len(p.points))
		for i, pt := range p.points {
			sel.Points[i] = p.transform.Invert(pt)
		}
	default:
		return sel, false
	}
	return sel, true
}

func (p *Picker) abort() {
	p.logger.Debug("selection aborted", "points", len(p.points))
	p.machine.Reset()
	p.points = p.points[:0]
	p.active = false
	p.notify(p.hooks.OnAbort, domain.PointF{})
}

func (p *Picker) notify(fn func(*domain.SelectionEvent), pos domain.PointF) {
	if fn == nil {
		return
	}
	fn(&domain.SelectionEvent{
		Machine: p.kind(),
		Pos:     pos,
		Points:  len(p.points),
	})
}

func (p *Picker) kind() string {
	return string(p.machine.Kind())
}

// Reset cancels any in-progress gesture: the machine returns to idle and the
// buffer is discarded. No hooks fire.
func (p *Picker) Reset() {
	p.machine.Reset()
	p.points = p.points[:0]
	p.active = false
}

// Active reports whether a selection is in progress.
func (p *Picker) Active() bool {
	return p.active
}

// Points returns a copy of the buffered device positions.
func (p *Picker) Points() []domain.Point {
	out := make([]domain.Point, len(p.points))
	copy(out, p.points)
	return out
}

// Machine returns the underlying automaton.
func (p *Picker) Machine() machine.Machine {
	return p.machine
}

// State returns the automaton's current state.
func (p *Picker) State() machine.State {
	return p.machine.State()
}

// Last returns the most recent completed selection.
func (p *Picker) Last() (domain.Selection, bool) {
	if p.last == nil {
		return domain.Selection{}, false
	}
	return *p.last, true
}
