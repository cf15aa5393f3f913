/*
Package domain contains the vocabulary shared by the picker automatons and
their consumers.

It defines what flows in and out of a selection state machine: the input
Event a host delivers, the symbolic Role a host binds gestures to, and the
Command values an automaton emits. This package is kept pure and free of
external dependencies like I/O or rendering, following Hexagonal Architecture
principles.

# Key Entities

  - Event: A classified pointer or keyboard input (press, release, move, wheel,
    enter, leave, key-press) carrying an opaque device position.
  - Command: An instruction for the consumer's point buffer (Begin, Append,
    Move, Remove, End).
  - Commands: The bounded, ordered output of a single transition.
  - SelectionType: The geometric shape an automaton builds toward.
  - Selection: A completed point, rectangle or polygon in host coordinates.
*/
package domain
