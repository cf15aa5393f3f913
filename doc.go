/*
Package picker turns raw pointer and keyboard input on a plotting canvas into
point, rectangle and polygon selections.

It pairs a selection automaton (package machine) with a consumer that applies
the emitted commands to a point buffer and reports completed selections. The
automatons never see buttons, keys or coordinate systems: gestures are resolved
through an injected role matcher (package pattern provides the default) and
device positions are mapped to host coordinates by an injected Transformer.

# Concept

The host classifies each platform event into a domain.Event and feeds it to a
Picker. The Picker runs the automaton's transition and applies each command:

  - Begin clears the buffer and marks the selection active.
  - Append pushes the event position.
  - Move overwrites the last buffered position.
  - Remove pops the last buffered position.
  - End marks the selection inactive and, if points were collected, reports a
    Selection (first point, normalized rectangle, or polygon) in host
    coordinates.

# Usage

	p, err := picker.New(machine.KindDragRect,
		picker.WithTransform(canvasToData),
		picker.WithLifecycleHooks(domain.LifecycleHooks{
			OnSelected: func(kind string, sel domain.Selection) {
				rect, _ := sel.Rect()
				zoomTo(rect)
			},
		}),
	)
	if err != nil {
		log.Fatal(err)
	}

	for ev := range events {
		p.Feed(ev)
	}

A Picker is not safe for concurrent use. Events must be delivered in arrival
order; package session serializes access for concurrent hosts.
*/
package picker
