package html5

// MouseButton is the DOM button index.
type MouseButton int

const (
	ButtonLeft   MouseButton = 0
	ButtonMiddle MouseButton = 1
	ButtonRight  MouseButton = 2
)

// Buttons is the DOM pressed-buttons bit mask.
type Buttons uint16

const (
	ButtonsLeft   Buttons = 1
	ButtonsRight  Buttons = 2
	ButtonsMiddle Buttons = 4
)

// Modifiers carries modifier key state common to mouse and keyboard events.
type Modifiers struct {
	Ctrl  bool `msgpack:"ctrl"`
	Shift bool `msgpack:"shift"`
	Alt   bool `msgpack:"alt"`
	Meta  bool `msgpack:"meta"`
}

// MouseEvent is the payload of click, mousedown, mouseup, dblclick,
// mousemove, mouseenter and mouseleave.
type MouseEvent struct {
	Timestamp float64     `msgpack:"timestamp"`
	ScreenX   int         `msgpack:"screenX"`
	ScreenY   int         `msgpack:"screenY"`
	ClientX   int         `msgpack:"clientX"`
	ClientY   int         `msgpack:"clientY"`
	MovementX int         `msgpack:"movementX"`
	MovementY int         `msgpack:"movementY"`
	TargetX   int         `msgpack:"targetX"`
	TargetY   int         `msgpack:"targetY"`
	Button    MouseButton `msgpack:"button"`
	Buttons   Buttons     `msgpack:"buttons"`
	Modifiers
}

// DeltaMode is the unit of a wheel delta.
type DeltaMode int

const (
	DeltaPixel DeltaMode = 0
	DeltaLine  DeltaMode = 1
	DeltaPage  DeltaMode = 2
)

// WheelEvent is the payload of wheel.
type WheelEvent struct {
	Mouse     MouseEvent `msgpack:"mouse"`
	DeltaX    float64    `msgpack:"deltaX"`
	DeltaY    float64    `msgpack:"deltaY"`
	DeltaZ    float64    `msgpack:"deltaZ"`
	DeltaMode DeltaMode  `msgpack:"deltaMode"`
}

// KeyboardEvent is the payload of keypress, keydown and keyup.
type KeyboardEvent struct {
	Timestamp float64 `msgpack:"timestamp"`
	Location  int     `msgpack:"location"`
	Repeat    bool    `msgpack:"repeat"`
	Key       string  `msgpack:"key"`
	Code      string  `msgpack:"code"`
	CharCode  int     `msgpack:"charCode"`
	KeyCode   int     `msgpack:"keyCode"`
	Modifiers
}

// FocusEvent is the payload of focus, blur, focusin and focusout.
type FocusEvent struct {
	NodeName string `msgpack:"nodeName"`
	ID       string `msgpack:"id"`
}

// UIEvent is the payload of resize and scroll.
type UIEvent struct {
	Detail             int `msgpack:"detail"`
	DocumentBodyWidth  int `msgpack:"documentBodyWidth"`
	DocumentBodyHeight int `msgpack:"documentBodyHeight"`
	WindowInnerWidth   int `msgpack:"windowInnerWidth"`
	WindowInnerHeight  int `msgpack:"windowInnerHeight"`
	WindowOuterWidth   int `msgpack:"windowOuterWidth"`
	WindowOuterHeight  int `msgpack:"windowOuterHeight"`
	ScrollTop          int `msgpack:"scrollTop"`
	ScrollLeft         int `msgpack:"scrollLeft"`
}

// VisibilityState mirrors document.visibilityState.
type VisibilityState int

const (
	VisibilityHidden    VisibilityState = 0
	VisibilityVisible   VisibilityState = 1
	VisibilityPrerender VisibilityState = 2
	VisibilityUnloaded  VisibilityState = 3
)

// VisibilityChangeEvent is the payload of visibilitychange.
type VisibilityChangeEvent struct {
	Hidden          bool            `msgpack:"hidden"`
	VisibilityState VisibilityState `msgpack:"visibilityState"`
}

// NewPayload returns a pointer to a zero payload of the struct delivered
// with eventType, or false for an unknown event type.
func NewPayload(eventType EventType) (any, bool) {
	switch eventType {
	case EventClick, EventMouseDown, EventMouseUp, EventDblClick, EventMouseMove, EventMouseEnter, EventMouseLeave:
		return &MouseEvent{}, true
	case EventWheel:
		return &WheelEvent{}, true
	case EventKeyPress, EventKeyDown, EventKeyUp:
		return &KeyboardEvent{}, true
	case EventBlur, EventFocus, EventFocusIn, EventFocusOut:
		return &FocusEvent{}, true
	case EventResize, EventScroll:
		return &UIEvent{}, true
	case EventVisibilityChange:
		return &VisibilityChangeEvent{}, true
	default:
		return nil, false
	}
}
