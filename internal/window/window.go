// Package window is a GLFW-style window input layer built on event
// listeners. A Window owns one listener per input channel, keeps a little
// derived state and forwards events to user callbacks.
package window

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dshills/evbridge/internal/event"
	"github.com/dshills/evbridge/internal/html5"
	"github.com/dshills/evbridge/internal/log"
)

// State is the input state derived from delivered events.
type State struct {
	CursorX, CursorY float64
	Width, Height    int
	Focused          bool
	Hovered          bool
	Hidden           bool
}

// binding is one input channel: a listener and the way to register it.
type binding struct {
	name   string
	group  Group
	canvas bool
	base   *event.Base
	add    func() bool
}

// Window routes the input of one canvas element.
type Window struct {
	opMu     sync.Mutex
	canvas   html5.Selector
	groups   map[Group]bool
	lopts    []event.Option
	logger   *log.Log
	rt       *html5.Runtime
	bindings []*binding

	mu    sync.Mutex
	cb    callbacks
	state State
}

// Option configures a Window.
type Option func(*Window)

// WithGroups restricts the window to the given listener groups.
func WithGroups(groups ...Group) Option {
	return func(w *Window) {
		w.groups = make(map[Group]bool, len(groups))
		for _, g := range groups {
			w.groups[g] = true
		}
	}
}

// WithListenerOptions passes options to every listener the window creates.
func WithListenerOptions(opts ...event.Option) Option {
	return func(w *Window) {
		w.lopts = append(w.lopts, opts...)
	}
}

// WithLogger sets the logger used for channel diagnostics.
func WithLogger(l *log.Log) Option {
	return func(w *Window) {
		w.logger = l
	}
}

// New creates a detached window for the canvas selector.
func New(canvas html5.Selector, opts ...Option) *Window {
	w := &Window{canvas: canvas}
	WithGroups(AllGroups...)(w)
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Canvas returns the current canvas selector.
func (w *Window) Canvas() html5.Selector {
	w.opMu.Lock()
	defer w.opMu.Unlock()
	return w.canvas
}

// State returns a snapshot of the derived input state.
func (w *Window) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Attach registers every enabled channel with rt. A channel that cannot be
// registered is listed in the returned ErrChannels error; the others stay
// active.
func (w *Window) Attach(rt *html5.Runtime) error {
	w.opMu.Lock()
	defer w.opMu.Unlock()

	if w.rt != nil {
		return ErrAttached
	}
	w.rt = rt
	w.bindings = w.newBindings(rt)

	var failed []string
	for _, b := range w.bindings {
		if !w.groups[b.group] {
			continue
		}
		if !b.add() {
			failed = append(failed, b.name)
		}
	}
	return w.failure(failed)
}

// Retarget moves the canvas channels to sel. Each active channel is removed
// from the old canvas and registered on the new one.
func (w *Window) Retarget(sel html5.Selector) error {
	w.opMu.Lock()
	defer w.opMu.Unlock()

	if w.rt == nil {
		return ErrNotAttached
	}
	if sel == w.canvas {
		return nil
	}
	w.canvas = sel

	var failed []string
	for _, b := range w.bindings {
		if !b.canvas {
			continue
		}
		b.base.SetTarget(sel)
		if !w.groups[b.group] {
			continue
		}
		if !b.add() {
			failed = append(failed, b.name)
		}
	}
	return w.failure(failed)
}

// Registered returns the names of the channels currently registered.
func (w *Window) Registered() []string {
	w.opMu.Lock()
	defer w.opMu.Unlock()

	var names []string
	for _, b := range w.bindings {
		if b.base.IsRegistered() {
			names = append(names, b.name)
		}
	}
	return names
}

// Close removes every channel and detaches the window.
func (w *Window) Close() error {
	w.opMu.Lock()
	defer w.opMu.Unlock()

	for _, b := range w.bindings {
		b.base.Close()
	}
	w.bindings = nil
	w.rt = nil
	return nil
}

func (w *Window) failure(failed []string) error {
	if len(failed) == 0 {
		return nil
	}
	if w.logger != nil {
		w.logger.Warning("running without %s", strings.Join(failed, ", "))
	}
	return fmt.Errorf("%w: %s", ErrChannels, strings.Join(failed, ", "))
}

func (w *Window) newBindings(rt *html5.Runtime) []*binding {
	canvas := html5.TargetRef(w.canvas)

	mouse := func(et html5.EventType, set html5.RegisterFunc[html5.MouseEvent]) *binding {
		l := event.NewListener[html5.MouseEvent](rt, w.lopts...).Target(canvas).Listener(w.handleMouse)
		return &binding{
			name:   et.String(),
			group:  GroupMouse,
			canvas: true,
			base:   &l.Base,
			add:    func() bool { return l.Add(et, set) },
		}
	}
	keyboard := func(et html5.EventType, set html5.RegisterFunc[html5.KeyboardEvent]) *binding {
		l := event.NewListener[html5.KeyboardEvent](rt, w.lopts...).Target(html5.TargetDocument).Listener(w.handleKey)
		return &binding{
			name:  et.String(),
			group: GroupKeyboard,
			base:  &l.Base,
			add:   func() bool { return l.Add(et, set) },
		}
	}
	focus := func(et html5.EventType, set html5.RegisterFunc[html5.FocusEvent]) *binding {
		l := event.NewListener[html5.FocusEvent](rt, w.lopts...).Target(html5.TargetWindow).Listener(w.handleFocus)
		return &binding{
			name:  et.String(),
			group: GroupFocus,
			base:  &l.Base,
			add:   func() bool { return l.Add(et, set) },
		}
	}

	wheel := event.NewListener[html5.WheelEvent](rt, w.lopts...).Target(canvas).Listener(w.handleWheel)
	resize := event.NewListener[html5.UIEvent](rt, w.lopts...).Target(html5.TargetWindow).Listener(w.handleResize)
	visibility := event.NewListener[html5.VisibilityChangeEvent](rt, w.lopts...).Target(html5.TargetDocument).Listener(w.handleVisibility)

	return []*binding{
		mouse(html5.EventMouseMove, rt.SetMouseMoveCallback),
		mouse(html5.EventMouseDown, rt.SetMouseDownCallback),
		mouse(html5.EventMouseUp, rt.SetMouseUpCallback),
		mouse(html5.EventMouseEnter, rt.SetMouseEnterCallback),
		mouse(html5.EventMouseLeave, rt.SetMouseLeaveCallback),
		{
			name:   html5.EventWheel.String(),
			group:  GroupWheel,
			canvas: true,
			base:   &wheel.Base,
			add:    func() bool { return wheel.Add(html5.EventWheel, rt.SetWheelCallback) },
		},
		keyboard(html5.EventKeyDown, rt.SetKeyDownCallback),
		keyboard(html5.EventKeyUp, rt.SetKeyUpCallback),
		keyboard(html5.EventKeyPress, rt.SetKeyPressCallback),
		focus(html5.EventFocus, rt.SetFocusCallback),
		focus(html5.EventBlur, rt.SetBlurCallback),
		{
			name:  html5.EventResize.String(),
			group: GroupResize,
			base:  &resize.Base,
			add:   func() bool { return resize.Add(html5.EventResize, rt.SetResizeCallback) },
		},
		{
			name:  html5.EventVisibilityChange.String(),
			group: GroupVisibility,
			base:  &visibility.Base,
			add: func() bool {
				return visibility.AddImplicit(html5.EventVisibilityChange, rt.SetVisibilityChangeCallback)
			},
		},
	}
}
