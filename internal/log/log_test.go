package log

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/gookit/color"
)

func TestLog(t *testing.T) {
	os.Setenv("DEBUG", "")
	enabled := color.Disable()
	defer func() { color.Enable = enabled }()

	_log := NewLog("evbridge:test")
	buf := new(bytes.Buffer)
	_log.SetOutput(buf)

	t.Run("prefix", func(t *testing.T) {
		if _log.Prefix() != "evbridge:test" {
			t.Fatalf(`*Log.Prefix() = %q, want match for %q`, _log.Prefix(), "evbridge:test")
		}
	})

	t.Run("debug disabled", func(t *testing.T) {
		buf.Reset()
		_log.Debug("Test")
		if buf.Len() > 0 {
			t.Fatal(`_log.Debug("Test") There should be no output here, but got the output.`)
		}
	})

	t.Run("error", func(t *testing.T) {
		buf.Reset()
		_log.Error("Error [%d] while registering listener for [%s]", -4, "#canvas")
		line := strings.TrimSpace(buf.String())
		want := "evbridge:test Error [-4] while registering listener for [#canvas]"
		if line != want {
			t.Errorf("log output = %q, want %q", line, want)
		}
	})

	t.Run("debug flag", func(t *testing.T) {
		buf.Reset()
		_log.DEBUG = true
		defer func() { _log.DEBUG = false }()
		_log.Debug("visible")
		if !strings.Contains(buf.String(), "visible") {
			t.Errorf("expected debug output, got %q", buf.String())
		}
	})
}

func TestLogNamespace(t *testing.T) {
	os.Setenv("DEBUG", "evbridge:*")
	defer os.Setenv("DEBUG", "")

	if !NewLog("evbridge:event").DebugEnabled() {
		t.Error("expected evbridge:event to match evbridge:*")
	}
	if NewLog("other").DebugEnabled() {
		t.Error("expected other not to match evbridge:*")
	}
}
