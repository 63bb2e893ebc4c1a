// Package html5 is the low-level event subscription runtime.
//
// It exposes a narrow, type-erased registration surface: an entry point
// registers a bare Callback for one event type on a target, keyed by an
// opaque UserData value, and returns a Result status code. Callbacks are
// handed back exactly the UserData they were registered with. Removal matches
// registrations by target, event type, callback and user data.
//
// Delivery happens on the thread recorded at registration: CallingThread
// callbacks run inside Dispatch, any other token gets its own single worker
// goroutine.
package html5

import (
	"strconv"

	"github.com/google/uuid"
)

// EventType identifies a DOM event type.
type EventType int

const (
	EventKeyPress         EventType = 1
	EventKeyDown          EventType = 2
	EventKeyUp            EventType = 3
	EventClick            EventType = 4
	EventMouseDown        EventType = 5
	EventMouseUp          EventType = 6
	EventDblClick         EventType = 7
	EventMouseMove        EventType = 8
	EventWheel            EventType = 9
	EventResize           EventType = 10
	EventScroll           EventType = 11
	EventBlur             EventType = 12
	EventFocus            EventType = 13
	EventFocusIn          EventType = 14
	EventFocusOut         EventType = 15
	EventVisibilityChange EventType = 21
	EventMouseEnter       EventType = 33
	EventMouseLeave       EventType = 34
)

var eventTypeNames = map[EventType]string{
	EventKeyPress:         "keypress",
	EventKeyDown:          "keydown",
	EventKeyUp:            "keyup",
	EventClick:            "click",
	EventMouseDown:        "mousedown",
	EventMouseUp:          "mouseup",
	EventDblClick:         "dblclick",
	EventMouseMove:        "mousemove",
	EventWheel:            "wheel",
	EventResize:           "resize",
	EventScroll:           "scroll",
	EventBlur:             "blur",
	EventFocus:            "focus",
	EventFocusIn:          "focusin",
	EventFocusOut:         "focusout",
	EventVisibilityChange: "visibilitychange",
	EventMouseEnter:       "mouseenter",
	EventMouseLeave:       "mouseleave",
}

// String returns the DOM name of the event type.
func (t EventType) String() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return "event(" + strconv.Itoa(int(t)) + ")"
}

// ParseEventType returns the event type with the given DOM name.
func ParseEventType(name string) (EventType, bool) {
	for t, n := range eventTypeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// Thread is the thread-affinity token recorded with each registration.
type Thread int

const (
	// MainThread delivers on the runtime's main worker.
	MainThread Thread = 1

	// CallingThread delivers synchronously inside Dispatch. It is the default.
	CallingThread Thread = 2
)

// String returns a human-readable thread name.
func (t Thread) String() string {
	switch t {
	case MainThread:
		return "main"
	case CallingThread:
		return "calling"
	default:
		return "thread(" + strconv.Itoa(int(t)) + ")"
	}
}

// UserData is the opaque value a callback receives back unchanged.
type UserData = uuid.UUID

// Callback is the bare callback shape invoked by the runtime.
type Callback[E any] func(eventType EventType, event *E, userData UserData) bool

// RegisterFunc is an explicit-target registration entry point.
type RegisterFunc[E any] func(target TargetRef, userData UserData, useCapture bool, cb Callback[E], thread Thread) Result

// ImplicitRegisterFunc is a registration entry point for sources that have
// exactly one implicit target.
type ImplicitRegisterFunc[E any] func(userData UserData, useCapture bool, cb Callback[E], thread Thread) Result

// Remover is the removal entry point.
type Remover interface {
	RemoveEventListener(target TargetRef, userData UserData, eventType EventType, cb any) Result
}

// RemoverFunc adapts a plain function to Remover.
type RemoverFunc func(target TargetRef, userData UserData, eventType EventType, cb any) Result

// RemoveEventListener implements Remover.
func (f RemoverFunc) RemoveEventListener(target TargetRef, userData UserData, eventType EventType, cb any) Result {
	return f(target, userData, eventType, cb)
}
