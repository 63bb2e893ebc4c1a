// Package backend turns terminal input into DOM-style events dispatched on
// an html5 runtime.
//
// Keys arrive on the document, mouse input on the canvas element, and
// resize and focus changes on the window. A terminal reports no key
// releases, so every key press is followed by a synthetic keyup.
package backend

import (
	"context"

	"github.com/dshills/evbridge/internal/html5"
)

// Dispatcher delivers one event to the listeners of a target.
// *html5.Runtime implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, target html5.TargetRef, eventType html5.EventType, payload any) bool
}

// Event is one translated event.
type Event struct {
	Target  html5.TargetRef
	Type    html5.EventType
	Payload any
}

// Observer is told about every dispatched event and whether a listener
// handled it.
type Observer func(ev Event, handled bool)
