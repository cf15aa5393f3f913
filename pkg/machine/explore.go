package machine

import (
	"slices"

	"github.com/aretw0/picker/pkg/domain"
)

// Probe is a canonical input used to explore a machine's transition table.
// Roles lists the roles the probe matcher reports as satisfied.
type Probe struct {
	Name  string        `json:"name"`
	Event domain.Event  `json:"event"`
	Roles []domain.Role `json:"roles,omitempty"`
}

// Edge is one observed transition.
type Edge struct {
	From     State           `json:"from"`
	FromName string          `json:"from_name"`
	Probe    string          `json:"probe"`
	Commands domain.Commands `json:"commands"`
	To       State           `json:"to"`
	ToName   string          `json:"to_name"`
}

// Probes is the canonical event set: every event category, with and without
// the roles the machines test.
var Probes = []Probe{
	{Name: "press select1", Event: domain.Press(domain.ButtonLeft, domain.Point{}), Roles: []domain.Role{domain.MouseSelect1}},
	{Name: "press select2", Event: domain.Press(domain.ButtonRight, domain.Point{}), Roles: []domain.Role{domain.MouseSelect2}},
	{Name: "release select1", Event: domain.Release(domain.ButtonLeft, domain.Point{}), Roles: []domain.Role{domain.MouseSelect1}},
	{Name: "release other", Event: domain.Release(domain.ButtonMiddle, domain.Point{})},
	{Name: "move", Event: domain.MoveTo(domain.Point{})},
	{Name: "wheel", Event: domain.Wheel(1, domain.Point{})},
	{Name: "enter", Event: domain.Enter(domain.Point{})},
	{Name: "leave", Event: domain.Leave()},
	{Name: "key select1", Event: domain.KeyPress(domain.KeyEnter, domain.Point{}), Roles: []domain.Role{domain.KeySelect1}},
	{Name: "key select2", Event: domain.KeyPress(domain.KeySpace, domain.Point{}), Roles: []domain.Role{domain.KeySelect2}},
	{Name: "key select1 repeat", Event: domain.KeyRepeat(domain.KeyEnter, domain.Point{}), Roles: []domain.Role{domain.KeySelect1}},
}

type probeMatcher struct {
	roles []domain.Role
}

func (p probeMatcher) MouseMatch(role domain.Role, ev domain.Event) bool {
	return ev.IsMouse() && slices.Contains(p.roles, role)
}

func (p probeMatcher) KeyMatch(role domain.Role, ev domain.Event) bool {
	return ev.IsKey() && slices.Contains(p.roles, role)
}

// Explore walks the states reachable from Idle and records every probe that
// emits commands or changes state. The machine's state is restored afterwards.
func Explore(m Machine) []Edge {
	saved := m.State()
	defer m.SetState(saved)

	var edges []Edge
	seen := map[State]bool{Idle: true}
	queue := []State{Idle}

	for len(queue) > 0 {
		from := queue[0]
		queue = queue[1:]

		for _, probe := range Probes {
			m.SetState(from)
			cmds := m.Transition(probeMatcher{roles: probe.Roles}, probe.Event)
			to := m.State()
			if cmds.Empty() && to == from {
				continue
			}
			edges = append(edges, Edge{
				From:     from,
				FromName: m.StateName(from),
				Probe:    probe.Name,
				Commands: cmds,
				To:       to,
				ToName:   m.StateName(to),
			})
			if !seen[to] {
				seen[to] = true
				queue = append(queue, to)
			}
		}
	}

	return edges
}

// ExploreKind creates a machine of kind and explores it.
func ExploreKind(kind Kind) ([]Edge, error) {
	m, err := New(kind)
	if err != nil {
		return nil, err
	}
	return Explore(m), nil
}
