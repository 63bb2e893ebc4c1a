// Package event attaches strongly-typed listeners to the html5 runtime.
//
// The runtime only understands bare callbacks keyed by an opaque user data
// value. This package bridges that surface to typed listeners:
//
//	┌──────────────────────┐  Add / AddImplicit   ┌────────────────────┐
//	│     Listener[E]      │ ───────────────────▶ │   html5 entry      │
//	│  target, callback    │   Callback[E],       │   point (Set*...)  │
//	│  Base bookkeeping    │   handle as userData │                    │
//	└──────────────────────┘                      └────────────────────┘
//	          ▲                                             │
//	          │ Invoke                                      │ dispatch
//	┌──────────────────────┐   handle lookup     ┌────────────────────┐
//	│     Callback[E]      │ ◀────────────────── │      runtime       │
//	└──────────────────────┘                     └────────────────────┘
//
// Each listener owns a handle in a process-wide registry. The handle is the
// user data given to the runtime, and the trampoline recovers the listener by
// looking the handle up and checking its type. A handle stays valid until the
// listener is closed, so a callback can never reach a listener that no longer
// exists.
//
// # Registration
//
// A listener holds at most one runtime registration. Add always removes the
// previous registration first, then registers the new one. Registration and
// removal failures are reported through a report.Reporter with
// report.PlatformError and never returned as errors: Add returns false, and
// Remove always leaves the listener unregistered.
//
// # Targets
//
// Targets are either one of the sentinels html5.TargetWindow,
// html5.TargetDocument and html5.TargetScreen, recognised by identity, or a
// named element selector.
//
// # Usage
//
//	l := event.NewListener[html5.MouseEvent](rt).
//	    Target(html5.Selector("#canvas")).
//	    Listener(func(t html5.EventType, e *html5.MouseEvent) bool {
//	        fmt.Println(e.TargetX, e.TargetY)
//	        return true
//	    })
//	defer l.Close()
//
//	if !l.Add(html5.EventMouseMove, rt.SetMouseMoveCallback) {
//	    // no mouse input; carry on without it
//	}
//
// Implicit-target sources take the other call shape:
//
//	v := event.NewListener[html5.VisibilityChangeEvent](rt).Target(html5.TargetDocument)
//	v.AddImplicit(html5.EventVisibilityChange, rt.SetVisibilityChangeCallback)
//
// # Thread Safety
//
// A listener is owned by one subsystem and must not be configured, added or
// removed concurrently. Callbacks run on the thread recorded at registration.
package event
