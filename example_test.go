package picker_test

import (
	"fmt"
	"log"

	"github.com/aretw0/picker"
	"github.com/aretw0/picker/pkg/domain"
	"github.com/aretw0/picker/pkg/machine"
	"github.com/aretw0/picker/pkg/pattern"
)

// ExampleNew_dragRect drives a rubber-band selection and reads the
// rectangle back from the OnSelected hook.
func ExampleNew_dragRect() {
	hooks := domain.LifecycleHooks{
		OnSelected: func(kind string, sel domain.Selection) {
			rect, _ := sel.Rect()
			fmt.Printf("%s selected %+v\n", kind, rect)
		},
	}

	p, err := picker.New(machine.KindDragRect, picker.WithLifecycleHooks(hooks))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(p.Feed(domain.Press(domain.ButtonLeft, domain.Point{X: 10, Y: 40})))
	fmt.Println(p.Feed(domain.MoveTo(domain.Point{X: 2, Y: 8})))
	fmt.Println(p.Feed(domain.Release(domain.ButtonLeft, domain.Point{X: 2, Y: 8})))

	// Output:
	// [begin append append]
	// [move]
	// drag-rect selected {X:2 Y:8 Width:8 Height:32}
	// [end]
}

// Example_machine uses a bare automaton without a point buffer.
func Example_machine() {
	m := machine.MustNew(machine.KindClickPoint)
	matcher := pattern.New()

	cmds := m.Transition(matcher, domain.Press(domain.ButtonLeft, domain.Point{X: 3, Y: 4}))
	fmt.Println(cmds, m.StateName(m.State()))

	// Right clicks are not bound to the primary role.
	cmds = m.Transition(matcher, domain.Press(domain.ButtonRight, domain.Point{X: 3, Y: 4}))
	fmt.Println(cmds.Empty())

	// Output:
	// [begin append end] idle
	// true
}
