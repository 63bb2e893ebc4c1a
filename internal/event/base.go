package event

import (
	"github.com/google/uuid"

	"github.com/dshills/evbridge/internal/html5"
	"github.com/dshills/evbridge/internal/report"
)

// Base is the registration bookkeeping shared by every typed listener,
// independent of the event payload type.
type Base struct {
	target     Target
	bound      Target
	eventType  html5.EventType
	thread     html5.Thread
	registered bool
	closed     bool

	handle     uuid.UUID
	remover    html5.Remover
	reporter   report.Reporter
	trampoline any
}

// Option configures a listener.
type Option func(*Base)

// WithReporter sets the sink for registration and removal failures.
// The default is report.Default().
func WithReporter(r report.Reporter) Option {
	return func(b *Base) {
		if r != nil {
			b.reporter = r
		}
	}
}

// WithThread sets the thread token callbacks are delivered on.
func WithThread(t html5.Thread) Option {
	return func(b *Base) {
		b.thread = t
	}
}

func (b *Base) init(remover html5.Remover, opts []Option) {
	b.remover = remover
	b.thread = html5.CallingThread
	for _, opt := range opts {
		opt(b)
	}
	if b.reporter == nil {
		b.reporter = report.Default()
	}
}

// SetTarget classifies ref and stores it as the listener's target. It does
// not touch an active registration; the new target applies from the next
// Add.
func (b *Base) SetTarget(ref html5.TargetRef) {
	b.target = Classify(ref)
}

// SetThread sets the thread token used by the next registration.
func (b *Base) SetThread(t html5.Thread) {
	b.thread = t
}

// Remove withdraws the active registration, if any, using the target it was
// made on. A failure is reported and the listener is considered unregistered
// regardless. Calling Remove on an unregistered listener does nothing.
func (b *Base) Remove() {
	if !b.registered {
		return
	}
	b.registered = false

	res := html5.ResultInvalidParam
	if b.remover != nil {
		res = b.remover.RemoveEventListener(b.bound.Ref(), b.handle, b.eventType, b.genericCallback())
	}
	if !res.OK() {
		b.reporter.Report(report.PlatformError, "Error [%d] while removing listener for [%s]", int(res), b.bound.Name())
	}
}

// addCallback replaces the active registration with the one made by thunk.
func (b *Base) addCallback(eventType html5.EventType, thunk func() html5.Result) bool {
	b.Remove()
	b.eventType = eventType

	if b.closed {
		b.reporter.Report(report.InvalidValue, "Listener for [%s] is closed", b.target.Name())
		return false
	}

	res := thunk()
	if !res.OK() {
		b.reporter.Report(report.PlatformError, "Error [%d] while registering listener for [%s]", int(res), b.target.Name())
		return false
	}
	b.bound = b.target
	b.registered = true
	return true
}

// genericCallback is the callback identity registered with the runtime.
func (b *Base) genericCallback() any {
	return b.trampoline
}

// Close removes the registration and releases the listener's handle. The
// listener cannot be added again afterwards. Close always returns nil;
// removal failures go to the reporter.
func (b *Base) Close() error {
	b.Remove()
	if !b.closed {
		b.closed = true
		handles.release(b.handle)
	}
	return nil
}

// IsRegistered reports whether the listener holds a runtime registration.
func (b *Base) IsRegistered() bool {
	return b.registered
}

// EventType returns the event type of the last Add.
func (b *Base) EventType() html5.EventType {
	return b.eventType
}

// Thread returns the thread token supplied on registration.
func (b *Base) Thread() html5.Thread {
	return b.thread
}

// Handle returns the user data the listener registers with.
func (b *Base) Handle() html5.UserData {
	return b.handle
}

// CurrentTarget returns the classified target.
func (b *Base) CurrentTarget() Target {
	return b.target
}
