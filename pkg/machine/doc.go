/*
Package machine implements the picker automatons: small deterministic state
machines that translate a stream of input events into selection commands.

Each automaton holds a tiny State, fixed SelectionType, and consumes one
domain.Event per Transition call. Events are classified through an injected
ports.RoleMatcher, so the automatons never see raw button or key codes.

	m := machine.NewDragRect()
	cmds := m.Transition(matcher, domain.Press(domain.ButtonLeft, pos))
	// cmds == [begin append append], m.State() == machine.DragRectActive

Transition never fails. Events a machine does not care about in its current
state yield an empty Commands and leave the state untouched. Whenever End is
emitted it is the last command and the machine is back in its idle state.

Machines are not safe for concurrent use; events must be delivered in arrival
order by a single consumer.
*/
package machine
