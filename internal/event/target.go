package event

import "github.com/dshills/evbridge/internal/html5"

// Target is the event source of a listener: a sentinel or a named element.
// Exactly one of the two is active.
type Target struct {
	special html5.TargetRef
	name    string
}

// Classify turns a target reference into a Target. The sentinels are
// recognised by identity; anything else is kept as a named target.
func Classify(ref html5.TargetRef) Target {
	switch ref {
	case html5.TargetWindow:
		return Target{special: ref, name: "window"}
	case html5.TargetDocument:
		return Target{special: ref, name: "document"}
	case html5.TargetScreen:
		return Target{special: ref, name: "screen"}
	default:
		return Target{name: html5.TargetName(ref)}
	}
}

// IsSpecial reports whether the target is a sentinel.
func (t Target) IsSpecial() bool {
	return t.special != nil
}

// Name returns the readable name: "window", "document", "screen" or the
// selector.
func (t Target) Name() string {
	return t.name
}

// Ref returns the effective target handed to the runtime.
func (t Target) Ref() html5.TargetRef {
	if t.special != nil {
		return t.special
	}
	return html5.Selector(t.name)
}

func (t Target) String() string {
	return t.name
}
