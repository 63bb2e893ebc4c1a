package html5

// TargetRef identifies an event source for the registration entry points.
// It is either a Selector or one of the sentinel targets TargetWindow,
// TargetDocument and TargetScreen.
type TargetRef interface {
	targetName() string
}

// Selector names an arbitrary element, usually a CSS selector such as
// "#canvas".
type Selector string

func (s Selector) targetName() string { return string(s) }

// special is a well-known global target. Sentinels are compared by pointer
// identity; the name is only used for diagnostics.
type special struct {
	name string
}

func (s *special) targetName() string { return s.name }

// Sentinel targets. A Selector("window") is a named element, not the window.
var (
	TargetWindow   TargetRef = &special{name: "window"}
	TargetDocument TargetRef = &special{name: "document"}
	TargetScreen   TargetRef = &special{name: "screen"}
)

// IsSentinel reports whether ref is one of the sentinel targets.
func IsSentinel(ref TargetRef) bool {
	switch ref {
	case TargetWindow, TargetDocument, TargetScreen:
		return true
	default:
		return false
	}
}

// TargetName returns the diagnostic name of ref ("" for nil).
func TargetName(ref TargetRef) string {
	if ref == nil {
		return ""
	}
	return ref.targetName()
}

// targetKey is the comparable identity of a target inside the runtime.
type targetKey struct {
	special *special
	name    Selector
}

func keyOf(ref TargetRef) targetKey {
	switch t := ref.(type) {
	case *special:
		return targetKey{special: t}
	case Selector:
		return targetKey{name: t}
	default:
		return targetKey{}
	}
}
