package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dshills/evbridge/internal/log"
)

func TestCodeString(t *testing.T) {
	tests := []struct {
		code     Code
		expected string
	}{
		{PlatformError, "PLATFORM_ERROR"},
		{InvalidValue, "INVALID_VALUE"},
		{NoError, "NO_ERROR"},
		{Code(0x42), "ERROR(0x00000042)"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.expected {
			t.Errorf("Code(%d).String() = %q, want %q", int(tt.code), got, tt.expected)
		}
	}
}

func TestHandler_Report(t *testing.T) {
	logger := log.NewLog("test")
	buf := new(bytes.Buffer)
	logger.SetOutput(buf)

	h := NewHandler(logger)

	var gotCode Code
	var gotMessage string
	h.SetCallback(func(code Code, description string) {
		gotCode = code
		gotMessage = description
	})

	h.Report(PlatformError, "Error [%d] while removing listener for [%s]", -3, "window")

	want := "Error [-3] while removing listener for [window]"
	if gotCode != PlatformError || gotMessage != want {
		t.Errorf("callback got (%v, %q), want (%v, %q)", gotCode, gotMessage, PlatformError, want)
	}
	if !strings.Contains(buf.String(), want) {
		t.Errorf("expected log output to contain %q, got %q", want, buf.String())
	}

	code, message := h.LastError()
	if code != PlatformError || message != want {
		t.Errorf("LastError() = (%v, %q)", code, message)
	}

	code, _ = h.Consume()
	if code != PlatformError {
		t.Errorf("Consume() code = %v, want %v", code, PlatformError)
	}
	if code, message = h.LastError(); code != NoError || message != "" {
		t.Errorf("expected cleared error after Consume, got (%v, %q)", code, message)
	}
}

func TestHandler_SetCallbackReturnsPrevious(t *testing.T) {
	h := NewHandler(nil)

	first := Callback(func(Code, string) {})
	if prev := h.SetCallback(first); prev != nil {
		t.Error("expected nil previous callback")
	}
	if prev := h.SetCallback(nil); prev == nil {
		t.Error("expected previous callback to be returned")
	}

	// Nil logger and nil callback must be safe.
	h.Report(InvalidEnum, "no sink")
}

func TestReporterFunc(t *testing.T) {
	var got string
	var r Reporter = ReporterFunc(func(code Code, format string, args ...any) {
		got = code.String()
	})
	r.Report(OutOfMemory, "x")
	if got != "OUT_OF_MEMORY" {
		t.Errorf("expected OUT_OF_MEMORY, got %q", got)
	}
}

func TestDefault(t *testing.T) {
	if Default() == nil || Default() != Default() {
		t.Error("expected a single default handler")
	}
}
