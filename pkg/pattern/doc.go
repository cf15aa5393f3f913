// Package pattern provides the default role matcher: a table binding each
// gesture role to one mouse button or key plus an exact modifier set.
//
// Bindings can be loaded from YAML, TOML or JSON files:
//
//	mouse:
//	  mouse-select1: {button: left}
//	  mouse-select2: {button: right}
//	keys:
//	  key-select1: {key: Enter}
//	  key-select2: {key: Space, modifiers: shift}
//	  key-abort: {key: Esc}
package pattern
