/*
Package ports defines the driven ports (interfaces) the picker core and its
consumers depend on.

These interfaces decouple the automatons from concrete input systems and
coordinate systems, allowing the same state machines to run behind a terminal,
a GUI toolkit, or a remote client.

# Key Interfaces

  - RoleMatcher: Answers whether an event satisfies a symbolic gesture role.
  - Transformer: Maps device positions into host (data) coordinates.
*/
package ports
