package event

import (
	"runtime/debug"

	"github.com/dshills/evbridge/internal/html5"
	"github.com/dshills/evbridge/internal/report"
)

// Func is a typed listener callback. It returns true if it handled the
// event.
type Func[E any] func(eventType html5.EventType, event *E) bool

// Listener is a listener for events carrying payload E.
type Listener[E any] struct {
	Base
	fn Func[E]
	cb html5.Callback[E]
}

// NewListener creates a listener removing its registrations through remover.
// The listener starts unregistered, without a target or callback. Every
// registration and removal passes the same callback value so the runtime can
// match them.
func NewListener[E any](remover html5.Remover, opts ...Option) *Listener[E] {
	l := &Listener[E]{}
	l.init(remover, opts)
	l.cb = Callback[E]
	l.trampoline = l.cb
	l.handle = handles.acquire(l)
	return l
}

// Target sets the event target.
func (l *Listener[E]) Target(ref html5.TargetRef) *Listener[E] {
	l.SetTarget(ref)
	return l
}

// Listener sets the callback. A nil fn leaves events unhandled.
func (l *Listener[E]) Listener(fn Func[E]) *Listener[E] {
	l.fn = fn
	return l
}

// Add registers for eventType on the configured target through fn, removing
// any previous registration first. Failures are reported and return false.
func (l *Listener[E]) Add(eventType html5.EventType, fn html5.RegisterFunc[E]) bool {
	return l.addCallback(eventType, func() html5.Result {
		if fn == nil {
			return html5.ResultInvalidParam
		}
		return fn(l.target.Ref(), l.handle, false, l.cb, l.thread)
	})
}

// AddImplicit registers through an entry point whose target is implied by
// the entry point itself. The configured target is only used for removal
// and diagnostics, so it should name the implied target.
func (l *Listener[E]) AddImplicit(eventType html5.EventType, fn html5.ImplicitRegisterFunc[E]) bool {
	return l.addCallback(eventType, func() html5.Result {
		if fn == nil {
			return html5.ResultInvalidParam
		}
		return fn(l.handle, false, l.cb, l.thread)
	})
}

// Invoke calls the callback and returns its result, or false without one.
// A panicking callback is reported and counts as unhandled.
func (l *Listener[E]) Invoke(eventType html5.EventType, e *E) (handled bool) {
	fn := l.fn
	if fn == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			handled = false
			l.reporter.Report(report.PlatformError, "Listener for [%s] panicked on %s: %v\n%s", l.target.Name(), eventType, r, debug.Stack())
		}
	}()
	return fn(eventType, e)
}

// Callback is the bare callback registered with the runtime for payload E.
// It resolves userData to its listener and forwards the event. An unknown
// handle or a listener of another payload type yields false.
func Callback[E any](eventType html5.EventType, e *E, userData html5.UserData) bool {
	v, ok := handles.lookup(userData)
	if !ok {
		return false
	}
	l, ok := v.(*Listener[E])
	if !ok {
		return false
	}
	return l.Invoke(eventType, e)
}
