package html5

import (
	"context"
	"errors"
	"reflect"
	"sync"

	"github.com/dshills/evbridge/internal/event/dispatch"
)

// ErrRuntimeClosed is returned by Close on an already closed runtime.
var ErrRuntimeClosed = errors.New("html5 runtime is closed")

// registration is one active low-level subscription.
type registration struct {
	target     targetKey
	ref        TargetRef
	eventType  EventType
	userData   UserData
	cbPtr      uintptr
	useCapture bool
	thread     Thread

	// bind returns the task delivering payload to the callback, or false if
	// payload is not of the registered type. async tasks get a private copy.
	bind func(payload any, async bool) (dispatch.Task, bool)
}

func (r *registration) matches(k targetKey, eventType EventType, userData UserData, cbPtr uintptr) bool {
	return r.target == k && r.eventType == eventType && r.userData == userData && r.cbPtr == cbPtr
}

// Runtime is an in-process event subscription runtime.
// It is safe for concurrent use; callbacks run without any runtime lock held,
// so they may register and remove listeners themselves.
type Runtime struct {
	mu      sync.RWMutex
	regs    []*registration
	defined map[Selector]bool
	threads map[Thread]*dispatch.AsyncDispatcher
	closed  bool

	sync         *dispatch.SyncDispatcher
	panicHandler dispatch.PanicHandler
	queueSize    int
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithSelectors declares named elements that exist from the start.
func WithSelectors(selectors ...Selector) Option {
	return func(rt *Runtime) {
		for _, s := range selectors {
			if s != "" {
				rt.defined[s] = true
			}
		}
	}
}

// WithPanicHandler sets the handler called when a callback panics.
func WithPanicHandler(h dispatch.PanicHandler) Option {
	return func(rt *Runtime) {
		rt.panicHandler = h
	}
}

// WithQueueSize sets the queue size of each delivery thread.
func WithQueueSize(size int) Option {
	return func(rt *Runtime) {
		if size > 0 {
			rt.queueSize = size
		}
	}
}

// New creates a runtime.
func New(opts ...Option) *Runtime {
	rt := &Runtime{
		defined:   make(map[Selector]bool),
		threads:   make(map[Thread]*dispatch.AsyncDispatcher),
		queueSize: 1024,
	}
	for _, opt := range opts {
		opt(rt)
	}
	rt.sync = dispatch.NewSyncDispatcher(dispatch.WithPanicHandler(rt.panicHandler))
	return rt
}

// Define declares a named element so listeners can be registered on it.
func (rt *Runtime) Define(sel Selector) {
	if sel == "" {
		return
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.defined[sel] = true
}

// Undefine removes a named element together with every listener on it.
func (rt *Runtime) Undefine(sel Selector) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	delete(rt.defined, sel)
	k := targetKey{name: sel}
	kept := rt.regs[:0]
	for _, r := range rt.regs {
		if r.target != k {
			kept = append(kept, r)
		}
	}
	clear(rt.regs[len(kept):])
	rt.regs = kept
}

// checkTarget validates ref. Caller must hold rt.mu.
func (rt *Runtime) checkTarget(ref TargetRef) Result {
	switch t := ref.(type) {
	case nil:
		return ResultInvalidTarget
	case *special:
		if !IsSentinel(t) {
			return ResultInvalidTarget
		}
		return ResultSuccess
	case Selector:
		if t == "" {
			return ResultInvalidTarget
		}
		if !rt.defined[t] {
			return ResultUnknownTarget
		}
		return ResultSuccess
	default:
		return ResultInvalidTarget
	}
}

// register adds or replaces the registration keyed by (target, eventType,
// cb, userData).
func register[E any](rt *Runtime, ref TargetRef, eventType EventType, userData UserData, useCapture bool, cb Callback[E], thread Thread) Result {
	if cb == nil {
		return ResultInvalidParam
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.closed {
		return ResultFailed
	}
	if res := rt.checkTarget(ref); !res.OK() {
		return res
	}

	reg := &registration{
		target:     keyOf(ref),
		ref:        ref,
		eventType:  eventType,
		userData:   userData,
		cbPtr:      reflect.ValueOf(cb).Pointer(),
		useCapture: useCapture,
		thread:     thread,
		bind: func(payload any, async bool) (dispatch.Task, bool) {
			e, ok := payload.(*E)
			if !ok || e == nil {
				return nil, false
			}
			if async {
				c := *e
				e = &c
			}
			return func() bool { return cb(eventType, e, userData) }, true
		},
	}

	for i, r := range rt.regs {
		if r.matches(reg.target, eventType, userData, reg.cbPtr) {
			rt.regs[i] = reg
			return ResultSuccess
		}
	}
	rt.regs = append(rt.regs, reg)
	return ResultSuccess
}

// RemoveEventListener removes the registration matching target, user data,
// event type and callback. It implements Remover.
func (rt *Runtime) RemoveEventListener(target TargetRef, userData UserData, eventType EventType, cb any) Result {
	fn := reflect.ValueOf(cb)
	if cb == nil || fn.Kind() != reflect.Func || fn.IsNil() {
		return ResultInvalidParam
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	if res := rt.checkTarget(target); !res.OK() {
		return res
	}

	k := keyOf(target)
	ptr := fn.Pointer()
	for i, r := range rt.regs {
		if r.matches(k, eventType, userData, ptr) {
			rt.regs = append(rt.regs[:i], rt.regs[i+1:]...)
			return ResultSuccess
		}
	}
	return ResultInvalidParam
}

// Dispatch delivers payload to every listener registered for eventType on
// target, in registration order. payload must be a pointer to the payload
// struct of the event type. It returns true if any synchronously delivered
// callback reported the event handled; callbacks bound to another thread are
// queued and count as unhandled.
func (rt *Runtime) Dispatch(ctx context.Context, target TargetRef, eventType EventType, payload any) bool {
	k := keyOf(target)

	rt.mu.RLock()
	if rt.closed {
		rt.mu.RUnlock()
		return false
	}
	var matched []*registration
	for _, r := range rt.regs {
		if r.target == k && r.eventType == eventType {
			matched = append(matched, r)
		}
	}
	rt.mu.RUnlock()

	handled := false
	for _, r := range matched {
		async := r.thread != CallingThread
		task, ok := r.bind(payload, async)
		if !ok {
			continue
		}
		if !async {
			if rt.sync.Dispatch(ctx, task).Handled {
				handled = true
			}
			continue
		}
		if d := rt.thread(r.thread); d != nil {
			_ = d.Enqueue(ctx, task) // dropped when the thread queue is full
		}
	}
	return handled
}

// thread returns the running dispatcher for t, starting it on first use.
func (rt *Runtime) thread(t Thread) *dispatch.AsyncDispatcher {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.closed {
		return nil
	}
	if d, ok := rt.threads[t]; ok {
		return d
	}
	d := dispatch.NewAsyncDispatcher(
		dispatch.WithQueueSize(rt.queueSize),
		dispatch.WithWorkerCount(1),
		dispatch.WithAsyncPanicHandler(rt.panicHandler),
	)
	if err := d.Start(); err != nil {
		return nil
	}
	rt.threads[t] = d
	return d
}

// Count returns the number of active registrations.
func (rt *Runtime) Count() int {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return len(rt.regs)
}

// CountFor returns the number of registrations for eventType on target.
func (rt *Runtime) CountFor(target TargetRef, eventType EventType) int {
	k := keyOf(target)

	rt.mu.RLock()
	defer rt.mu.RUnlock()

	n := 0
	for _, r := range rt.regs {
		if r.target == k && r.eventType == eventType {
			n++
		}
	}
	return n
}

// Stats returns delivery statistics summed over the calling thread and
// every delivery thread started so far. AvgDuration is not filled in.
func (rt *Runtime) Stats() dispatch.Stats {
	stats := rt.sync.Stats()

	rt.mu.RLock()
	threads := make([]*dispatch.AsyncDispatcher, 0, len(rt.threads))
	for _, d := range rt.threads {
		threads = append(threads, d)
	}
	rt.mu.RUnlock()

	for _, d := range threads {
		s := d.Stats()
		stats.Dispatched += s.Dispatched
		stats.Handled += s.Handled
		stats.Panicked += s.Panicked
		stats.Skipped += s.Skipped
		stats.Dropped += s.Dropped
		stats.QueueDepth += s.QueueDepth
		stats.TotalDuration += s.TotalDuration
	}
	stats.AvgDuration = 0
	return stats
}

// Close drops every registration and stops all delivery threads, waiting for
// queued callbacks until ctx ends.
func (rt *Runtime) Close(ctx context.Context) error {
	rt.mu.Lock()
	if rt.closed {
		rt.mu.Unlock()
		return ErrRuntimeClosed
	}
	rt.closed = true
	rt.regs = nil
	threads := rt.threads
	rt.threads = make(map[Thread]*dispatch.AsyncDispatcher)
	rt.mu.Unlock()

	var errs []error
	for _, d := range threads {
		if err := d.Stop(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
