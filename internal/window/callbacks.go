package window

import "github.com/dshills/evbridge/internal/html5"

// Action is the state change of a key or mouse button.
type Action int

// Actions.
const (
	Release Action = iota
	Press
	Repeat
)

func (a Action) String() string {
	switch a {
	case Release:
		return "release"
	case Press:
		return "press"
	case Repeat:
		return "repeat"
	default:
		return "unknown"
	}
}

// Callback types.
type (
	// CursorPosFunc receives the cursor position relative to the canvas.
	CursorPosFunc func(x, y float64)

	// MouseButtonFunc receives button presses and releases.
	MouseButtonFunc func(button html5.MouseButton, action Action, mods html5.Modifiers)

	// ScrollFunc receives wheel offsets.
	ScrollFunc func(dx, dy float64)

	// KeyFunc receives key presses, repeats and releases.
	KeyFunc func(key, code string, action Action, mods html5.Modifiers)

	// CharFunc receives text input.
	CharFunc func(r rune)

	// FocusFunc receives focus changes.
	FocusFunc func(focused bool)

	// SizeFunc receives the new window size.
	SizeFunc func(width, height int)

	// CursorEnterFunc receives cursor enter and leave.
	CursorEnterFunc func(entered bool)

	// VisibilityFunc receives page visibility changes.
	VisibilityFunc func(hidden bool)
)

type callbacks struct {
	cursorPos   CursorPosFunc
	mouseButton MouseButtonFunc
	scroll      ScrollFunc
	key         KeyFunc
	char        CharFunc
	focus       FocusFunc
	size        SizeFunc
	cursorEnter CursorEnterFunc
	visibility  VisibilityFunc
}

// OnCursorPos sets the cursor position callback and returns the previous one.
func (w *Window) OnCursorPos(fn CursorPosFunc) CursorPosFunc {
	w.mu.Lock()
	defer w.mu.Unlock()
	prev := w.cb.cursorPos
	w.cb.cursorPos = fn
	return prev
}

// OnMouseButton sets the mouse button callback and returns the previous one.
func (w *Window) OnMouseButton(fn MouseButtonFunc) MouseButtonFunc {
	w.mu.Lock()
	defer w.mu.Unlock()
	prev := w.cb.mouseButton
	w.cb.mouseButton = fn
	return prev
}

// OnScroll sets the scroll callback and returns the previous one.
func (w *Window) OnScroll(fn ScrollFunc) ScrollFunc {
	w.mu.Lock()
	defer w.mu.Unlock()
	prev := w.cb.scroll
	w.cb.scroll = fn
	return prev
}

// OnKey sets the key callback and returns the previous one.
func (w *Window) OnKey(fn KeyFunc) KeyFunc {
	w.mu.Lock()
	defer w.mu.Unlock()
	prev := w.cb.key
	w.cb.key = fn
	return prev
}

// OnChar sets the character callback and returns the previous one.
func (w *Window) OnChar(fn CharFunc) CharFunc {
	w.mu.Lock()
	defer w.mu.Unlock()
	prev := w.cb.char
	w.cb.char = fn
	return prev
}

// OnFocus sets the focus callback and returns the previous one.
func (w *Window) OnFocus(fn FocusFunc) FocusFunc {
	w.mu.Lock()
	defer w.mu.Unlock()
	prev := w.cb.focus
	w.cb.focus = fn
	return prev
}

// OnSize sets the size callback and returns the previous one.
func (w *Window) OnSize(fn SizeFunc) SizeFunc {
	w.mu.Lock()
	defer w.mu.Unlock()
	prev := w.cb.size
	w.cb.size = fn
	return prev
}

// OnCursorEnter sets the cursor enter callback and returns the previous one.
func (w *Window) OnCursorEnter(fn CursorEnterFunc) CursorEnterFunc {
	w.mu.Lock()
	defer w.mu.Unlock()
	prev := w.cb.cursorEnter
	w.cb.cursorEnter = fn
	return prev
}

// OnVisibility sets the visibility callback and returns the previous one.
func (w *Window) OnVisibility(fn VisibilityFunc) VisibilityFunc {
	w.mu.Lock()
	defer w.mu.Unlock()
	prev := w.cb.visibility
	w.cb.visibility = fn
	return prev
}
