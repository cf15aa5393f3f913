package machine

import (
	"fmt"
	"strings"

	"github.com/aretw0/picker/pkg/domain"
)

// Kind is the registry name of a machine.
type Kind string

const (
	KindTracker    Kind = "tracker"
	KindClickPoint Kind = "click-point"
	KindDragPoint  Kind = "drag-point"
	KindClickRect  Kind = "click-rect"
	KindDragRect   Kind = "drag-rect"
	KindPolygon    Kind = "polygon"
	KindDragLine   Kind = "drag-line"
)

// Description is a short summary of what a machine kind selects.
type Description struct {
	Kind          Kind                 `json:"kind"`
	SelectionType domain.SelectionType `json:"selection_type"`
	Summary       string               `json:"summary"`
}

type entry struct {
	summary string
	build   func() Machine
}

var registry = map[Kind]entry{
	KindTracker:    {"Tracks the pointer between enter and leave; selects nothing.", func() Machine { return NewTracker() }},
	KindClickPoint: {"Selects a point with a single click or key press.", func() Machine { return NewClickPoint() }},
	KindDragPoint:  {"Selects a point that follows the pointer until release.", func() Machine { return NewDragPoint() }},
	KindClickRect:  {"Selects a rectangle from a press, a release and a closing press.", func() Machine { return NewClickRect() }},
	KindDragRect:   {"Selects a rectangle with one press-drag-release.", func() Machine { return NewDragRect() }},
	KindPolygon:    {"Collects polygon vertices until the secondary gesture closes it.", func() Machine { return NewPolygon() }},
	KindDragLine:   {"Selects a two-point line with one press-drag-release.", func() Machine { return NewDragLine() }},
}

var order = []Kind{
	KindTracker, KindClickPoint, KindDragPoint, KindClickRect, KindDragRect, KindPolygon, KindDragLine,
}

// Kinds returns every registered kind in a stable order.
func Kinds() []Kind {
	out := make([]Kind, len(order))
	copy(out, order)
	return out
}

// ParseKind resolves a kind by name. Underscores are accepted in place of dashes.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	if _, ok := registry[k]; !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownMachine, s)
	}
	return k, nil
}

// New creates a fresh machine of the given kind in its idle state.
func New(kind Kind) (Machine, error) {
	e, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownMachine, string(kind))
	}
	return e.build(), nil
}

// MustNew is like New but panics on an unknown kind.
func MustNew(kind Kind) Machine {
	m, err := New(kind)
	if err != nil {
		panic(err)
	}
	return m
}

// Describe returns the summary of a kind.
func Describe(kind Kind) (Description, error) {
	m, err := New(kind)
	if err != nil {
		return Description{}, err
	}
	return Description{
		Kind:          kind,
		SelectionType: m.SelectionType(),
		Summary:       registry[kind].summary,
	}, nil
}

// Catalog describes every registered kind.
func Catalog() []Description {
	out := make([]Description, 0, len(order))
	for _, k := range order {
		d, _ := Describe(k)
		out = append(out, d)
	}
	return out
}
