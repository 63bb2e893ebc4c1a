// Package report is the error reporting sink for listener registration and
// removal failures.
//
// Failures never propagate as Go errors from the listener layer; they are
// turned into a Code plus a formatted message and handed to a Reporter. The
// default Handler logs the message, remembers the last error and forwards it
// to an optional user callback, the way glfwSetErrorCallback does.
package report

import (
	"fmt"
	"sync"

	"github.com/dshills/evbridge/internal/log"
)

// Code is an error category.
type Code int

const (
	NoError            Code = 0
	NotInitialized     Code = 0x00010001
	NoCurrentContext   Code = 0x00010002
	InvalidEnum        Code = 0x00010003
	InvalidValue       Code = 0x00010004
	OutOfMemory        Code = 0x00010005
	APIUnavailable     Code = 0x00010006
	VersionUnavailable Code = 0x00010007
	PlatformError      Code = 0x00010008
	FormatUnavailable  Code = 0x00010009
	NoWindowContext    Code = 0x0001000A
)

// String returns the symbolic name of the code.
func (c Code) String() string {
	switch c {
	case NoError:
		return "NO_ERROR"
	case NotInitialized:
		return "NOT_INITIALIZED"
	case NoCurrentContext:
		return "NO_CURRENT_CONTEXT"
	case InvalidEnum:
		return "INVALID_ENUM"
	case InvalidValue:
		return "INVALID_VALUE"
	case OutOfMemory:
		return "OUT_OF_MEMORY"
	case APIUnavailable:
		return "API_UNAVAILABLE"
	case VersionUnavailable:
		return "VERSION_UNAVAILABLE"
	case PlatformError:
		return "PLATFORM_ERROR"
	case FormatUnavailable:
		return "FORMAT_UNAVAILABLE"
	case NoWindowContext:
		return "NO_WINDOW_CONTEXT"
	default:
		return fmt.Sprintf("ERROR(0x%08X)", int(c))
	}
}

// Reporter receives diagnostics.
type Reporter interface {
	Report(code Code, format string, args ...any)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(code Code, format string, args ...any)

// Report implements Reporter.
func (f ReporterFunc) Report(code Code, format string, args ...any) {
	f(code, format, args...)
}

// Callback is a user error callback.
type Callback func(code Code, description string)

// Handler is the default Reporter.
type Handler struct {
	logger *log.Log

	mu          sync.Mutex
	callback    Callback
	lastCode    Code
	lastMessage string
}

// NewHandler creates a handler that logs through logger. A nil logger
// disables logging.
func NewHandler(logger *log.Log) *Handler {
	return &Handler{logger: logger}
}

// Report records the error, logs it and invokes the user callback.
func (h *Handler) Report(code Code, format string, args ...any) {
	message := fmt.Sprintf(format, args...)

	h.mu.Lock()
	h.lastCode = code
	h.lastMessage = message
	cb := h.callback
	h.mu.Unlock()

	if h.logger != nil {
		h.logger.Error("[%s] %s", code, message)
	}
	if cb != nil {
		cb(code, message)
	}
}

// SetCallback installs cb and returns the previous callback.
func (h *Handler) SetCallback(cb Callback) Callback {
	h.mu.Lock()
	defer h.mu.Unlock()

	prev := h.callback
	h.callback = cb
	return prev
}

// LastError returns the most recent error without clearing it.
func (h *Handler) LastError() (Code, string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.lastCode, h.lastMessage
}

// Consume returns the most recent error and clears it.
func (h *Handler) Consume() (Code, string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	code, message := h.lastCode, h.lastMessage
	h.lastCode, h.lastMessage = NoError, ""
	return code, message
}

var (
	defaultOnce    sync.Once
	defaultHandler *Handler
)

// Default returns the process-wide handler.
func Default() *Handler {
	defaultOnce.Do(func() {
		defaultHandler = NewHandler(log.NewLog("evbridge"))
	})
	return defaultHandler
}
