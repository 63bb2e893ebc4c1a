package window

import "errors"

// Window errors.
var (
	// ErrAttached indicates the window is already attached to a runtime.
	ErrAttached = errors.New("window already attached")

	// ErrNotAttached indicates the window has no runtime.
	ErrNotAttached = errors.New("window not attached")

	// ErrChannels indicates some input channels could not be registered.
	// The window still works without them.
	ErrChannels = errors.New("input channels unavailable")

	// ErrUnknownGroup indicates an unknown listener group name.
	ErrUnknownGroup = errors.New("unknown listener group")
)
