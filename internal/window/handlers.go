package window

import (
	"unicode/utf8"

	"github.com/dshills/evbridge/internal/html5"
)

func (w *Window) handleMouse(et html5.EventType, e *html5.MouseEvent) bool {
	w.mu.Lock()
	cb := w.cb
	switch et {
	case html5.EventMouseMove:
		w.state.CursorX, w.state.CursorY = float64(e.TargetX), float64(e.TargetY)
	case html5.EventMouseEnter:
		w.state.Hovered = true
	case html5.EventMouseLeave:
		w.state.Hovered = false
	}
	w.mu.Unlock()

	switch et {
	case html5.EventMouseMove:
		if cb.cursorPos != nil {
			cb.cursorPos(float64(e.TargetX), float64(e.TargetY))
			return true
		}
	case html5.EventMouseDown, html5.EventMouseUp:
		if cb.mouseButton != nil {
			action := Press
			if et == html5.EventMouseUp {
				action = Release
			}
			cb.mouseButton(e.Button, action, e.Modifiers)
			return true
		}
	case html5.EventMouseEnter, html5.EventMouseLeave:
		if cb.cursorEnter != nil {
			cb.cursorEnter(et == html5.EventMouseEnter)
			return true
		}
	}
	return false
}

// Wheel deltas are reported in lines.
const pixelsPerLine = 100.0

func (w *Window) handleWheel(_ html5.EventType, e *html5.WheelEvent) bool {
	w.mu.Lock()
	fn := w.cb.scroll
	w.mu.Unlock()

	if fn == nil {
		return false
	}
	dx, dy := e.DeltaX, e.DeltaY
	if e.DeltaMode == html5.DeltaPixel {
		dx, dy = dx/pixelsPerLine, dy/pixelsPerLine
	}
	fn(-dx, -dy)
	return true
}

func (w *Window) handleKey(et html5.EventType, e *html5.KeyboardEvent) bool {
	w.mu.Lock()
	cb := w.cb
	w.mu.Unlock()

	if et == html5.EventKeyPress {
		if cb.char == nil || e.CharCode <= 0 {
			return false
		}
		r := rune(e.CharCode)
		if !utf8.ValidRune(r) {
			return false
		}
		cb.char(r)
		return true
	}

	if cb.key == nil {
		return false
	}
	action := Release
	if et == html5.EventKeyDown {
		action = Press
		if e.Repeat {
			action = Repeat
		}
	}
	cb.key(e.Key, e.Code, action, e.Modifiers)
	return true
}

func (w *Window) handleFocus(et html5.EventType, _ *html5.FocusEvent) bool {
	focused := et == html5.EventFocus

	w.mu.Lock()
	w.state.Focused = focused
	fn := w.cb.focus
	w.mu.Unlock()

	if fn == nil {
		return false
	}
	fn(focused)
	return true
}

func (w *Window) handleResize(_ html5.EventType, e *html5.UIEvent) bool {
	w.mu.Lock()
	w.state.Width, w.state.Height = e.WindowInnerWidth, e.WindowInnerHeight
	fn := w.cb.size
	w.mu.Unlock()

	if fn == nil {
		return false
	}
	fn(e.WindowInnerWidth, e.WindowInnerHeight)
	return true
}

func (w *Window) handleVisibility(_ html5.EventType, e *html5.VisibilityChangeEvent) bool {
	w.mu.Lock()
	w.state.Hidden = e.Hidden
	fn := w.cb.visibility
	w.mu.Unlock()

	if fn == nil {
		return false
	}
	fn(e.Hidden)
	return true
}
