package domain

import (
	"fmt"
	"strings"
)

// Role is a symbolic gesture meaning ("primary select via mouse") that a
// RoleMatcher maps onto concrete buttons and keys.
type Role uint8

const (
	// MouseSelect1 is the primary mouse selection gesture.
	MouseSelect1 Role = iota
	// MouseSelect2 is the secondary mouse selection gesture.
	MouseSelect2
	// KeySelect1 is the primary keyboard selection gesture.
	KeySelect1
	// KeySelect2 is the secondary keyboard selection gesture.
	KeySelect2
	// KeyAbort cancels an active selection. Only consumers test it.
	KeyAbort
)

var roleNames = [...]string{"mouse-select1", "mouse-select2", "key-select1", "key-select2", "key-abort"}

// MouseRoles lists the roles bound to mouse buttons.
var MouseRoles = []Role{MouseSelect1, MouseSelect2}

// KeyRoles lists the roles bound to keys.
var KeyRoles = []Role{KeySelect1, KeySelect2, KeyAbort}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}

// IsMouse reports whether the role is matched against mouse events.
func (r Role) IsMouse() bool {
	return r == MouseSelect1 || r == MouseSelect2
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseRole resolves a role by name. Underscores and dashes are equivalent.
func ParseRole(s string) (Role, error) {
	want := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for i, name := range roleNames {
		if name == want {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}
