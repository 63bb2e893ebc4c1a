package html5

// Mouse entry points.

func (rt *Runtime) SetClickCallback(target TargetRef, userData UserData, useCapture bool, cb Callback[MouseEvent], thread Thread) Result {
	return register(rt, target, EventClick, userData, useCapture, cb, thread)
}

func (rt *Runtime) SetMouseDownCallback(target TargetRef, userData UserData, useCapture bool, cb Callback[MouseEvent], thread Thread) Result {
	return register(rt, target, EventMouseDown, userData, useCapture, cb, thread)
}

func (rt *Runtime) SetMouseUpCallback(target TargetRef, userData UserData, useCapture bool, cb Callback[MouseEvent], thread Thread) Result {
	return register(rt, target, EventMouseUp, userData, useCapture, cb, thread)
}

func (rt *Runtime) SetDblClickCallback(target TargetRef, userData UserData, useCapture bool, cb Callback[MouseEvent], thread Thread) Result {
	return register(rt, target, EventDblClick, userData, useCapture, cb, thread)
}

func (rt *Runtime) SetMouseMoveCallback(target TargetRef, userData UserData, useCapture bool, cb Callback[MouseEvent], thread Thread) Result {
	return register(rt, target, EventMouseMove, userData, useCapture, cb, thread)
}

func (rt *Runtime) SetMouseEnterCallback(target TargetRef, userData UserData, useCapture bool, cb Callback[MouseEvent], thread Thread) Result {
	return register(rt, target, EventMouseEnter, userData, useCapture, cb, thread)
}

func (rt *Runtime) SetMouseLeaveCallback(target TargetRef, userData UserData, useCapture bool, cb Callback[MouseEvent], thread Thread) Result {
	return register(rt, target, EventMouseLeave, userData, useCapture, cb, thread)
}

func (rt *Runtime) SetWheelCallback(target TargetRef, userData UserData, useCapture bool, cb Callback[WheelEvent], thread Thread) Result {
	return register(rt, target, EventWheel, userData, useCapture, cb, thread)
}

// Keyboard entry points.

func (rt *Runtime) SetKeyPressCallback(target TargetRef, userData UserData, useCapture bool, cb Callback[KeyboardEvent], thread Thread) Result {
	return register(rt, target, EventKeyPress, userData, useCapture, cb, thread)
}

func (rt *Runtime) SetKeyDownCallback(target TargetRef, userData UserData, useCapture bool, cb Callback[KeyboardEvent], thread Thread) Result {
	return register(rt, target, EventKeyDown, userData, useCapture, cb, thread)
}

func (rt *Runtime) SetKeyUpCallback(target TargetRef, userData UserData, useCapture bool, cb Callback[KeyboardEvent], thread Thread) Result {
	return register(rt, target, EventKeyUp, userData, useCapture, cb, thread)
}

// Focus entry points.

func (rt *Runtime) SetFocusCallback(target TargetRef, userData UserData, useCapture bool, cb Callback[FocusEvent], thread Thread) Result {
	return register(rt, target, EventFocus, userData, useCapture, cb, thread)
}

func (rt *Runtime) SetBlurCallback(target TargetRef, userData UserData, useCapture bool, cb Callback[FocusEvent], thread Thread) Result {
	return register(rt, target, EventBlur, userData, useCapture, cb, thread)
}

func (rt *Runtime) SetFocusInCallback(target TargetRef, userData UserData, useCapture bool, cb Callback[FocusEvent], thread Thread) Result {
	return register(rt, target, EventFocusIn, userData, useCapture, cb, thread)
}

func (rt *Runtime) SetFocusOutCallback(target TargetRef, userData UserData, useCapture bool, cb Callback[FocusEvent], thread Thread) Result {
	return register(rt, target, EventFocusOut, userData, useCapture, cb, thread)
}

// UI entry points.

func (rt *Runtime) SetResizeCallback(target TargetRef, userData UserData, useCapture bool, cb Callback[UIEvent], thread Thread) Result {
	return register(rt, target, EventResize, userData, useCapture, cb, thread)
}

func (rt *Runtime) SetScrollCallback(target TargetRef, userData UserData, useCapture bool, cb Callback[UIEvent], thread Thread) Result {
	return register(rt, target, EventScroll, userData, useCapture, cb, thread)
}

// SetVisibilityChangeCallback registers on the implicit document target.
// Remove it with TargetDocument.
func (rt *Runtime) SetVisibilityChangeCallback(userData UserData, useCapture bool, cb Callback[VisibilityChangeEvent], thread Thread) Result {
	return register(rt, TargetDocument, EventVisibilityChange, userData, useCapture, cb, thread)
}

// Compile-time checks that the entry points conform to the call shapes.
var (
	_ RegisterFunc[MouseEvent]                    = (*Runtime)(nil).SetClickCallback
	_ RegisterFunc[WheelEvent]                    = (*Runtime)(nil).SetWheelCallback
	_ RegisterFunc[KeyboardEvent]                 = (*Runtime)(nil).SetKeyDownCallback
	_ RegisterFunc[FocusEvent]                    = (*Runtime)(nil).SetFocusCallback
	_ RegisterFunc[UIEvent]                       = (*Runtime)(nil).SetResizeCallback
	_ ImplicitRegisterFunc[VisibilityChangeEvent] = (*Runtime)(nil).SetVisibilityChangeCallback
	_ Remover                                     = (*Runtime)(nil)
)
