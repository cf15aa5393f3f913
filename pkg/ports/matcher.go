package ports

import "github.com/aretw0/picker/pkg/domain"

// RoleMatcher decides whether an input event satisfies a symbolic role.
// Automatons never inspect raw buttons or keys; a host remaps gestures by
// supplying a different matcher.
type RoleMatcher interface {
	// MouseMatch reports whether a pointer event matches a mouse role.
	MouseMatch(role domain.Role, ev domain.Event) bool
	// KeyMatch reports whether a key event matches a key role.
	KeyMatch(role domain.Role, ev domain.Event) bool
}

// MatcherFunc adapts a single function to RoleMatcher.
type MatcherFunc func(role domain.Role, ev domain.Event) bool

// MouseMatch implements RoleMatcher.
func (f MatcherFunc) MouseMatch(role domain.Role, ev domain.Event) bool {
	return ev.IsMouse() && f(role, ev)
}

// KeyMatch implements RoleMatcher.
func (f MatcherFunc) KeyMatch(role domain.Role, ev domain.Event) bool {
	return ev.IsKey() && f(role, ev)
}
