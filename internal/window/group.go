package window

import (
	"fmt"
	"strings"
)

// Group is a set of related input channels enabled together.
type Group string

// Listener groups.
const (
	GroupMouse      Group = "mouse"
	GroupWheel      Group = "wheel"
	GroupKeyboard   Group = "keyboard"
	GroupFocus      Group = "focus"
	GroupResize     Group = "resize"
	GroupVisibility Group = "visibility"
)

// AllGroups lists every group in attach order.
var AllGroups = []Group{
	GroupMouse,
	GroupWheel,
	GroupKeyboard,
	GroupFocus,
	GroupResize,
	GroupVisibility,
}

// ParseGroups converts group names. Names are case-insensitive.
func ParseGroups(names []string) ([]Group, error) {
	groups := make([]Group, 0, len(names))
	for _, name := range names {
		g := Group(strings.ToLower(strings.TrimSpace(name)))
		if !g.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, name)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// Valid reports whether g is a known group.
func (g Group) Valid() bool {
	for _, known := range AllGroups {
		if g == known {
			return true
		}
	}
	return false
}
