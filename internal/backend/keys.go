package backend

import (
	"fmt"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/evbridge/internal/html5"
)

// keyNames maps special keys to DOM key names.
var keyNames = map[tcell.Key]string{
	tcell.KeyEnter:      "Enter",
	tcell.KeyTab:        "Tab",
	tcell.KeyBacktab:    "Tab",
	tcell.KeyBackspace:  "Backspace",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyEscape:     "Escape",
	tcell.KeyDelete:     "Delete",
	tcell.KeyInsert:     "Insert",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "PageUp",
	tcell.KeyPgDn:       "PageDown",
	tcell.KeyUp:         "ArrowUp",
	tcell.KeyDown:       "ArrowDown",
	tcell.KeyLeft:       "ArrowLeft",
	tcell.KeyRight:      "ArrowRight",
	tcell.KeyF1:         "F1",
	tcell.KeyF2:         "F2",
	tcell.KeyF3:         "F3",
	tcell.KeyF4:         "F4",
	tcell.KeyF5:         "F5",
	tcell.KeyF6:         "F6",
	tcell.KeyF7:         "F7",
	tcell.KeyF8:         "F8",
	tcell.KeyF9:         "F9",
	tcell.KeyF10:        "F10",
	tcell.KeyF11:        "F11",
	tcell.KeyF12:        "F12",
}

// keyCodes holds legacy DOM key codes of special keys.
var keyCodes = map[string]int{
	"Backspace":  8,
	"Tab":        9,
	"Enter":      13,
	"Escape":     27,
	"PageUp":     33,
	"PageDown":   34,
	"End":        35,
	"Home":       36,
	"ArrowLeft":  37,
	"ArrowUp":    38,
	"ArrowRight": 39,
	"ArrowDown":  40,
	"Insert":     45,
	"Delete":     46,
}

// convertKey builds the keyboard payload for a tcell key event. ok is false
// for keys without a DOM equivalent.
func convertKey(ev *tcell.EventKey) (e html5.KeyboardEvent, ok bool) {
	mods := convertMod(ev.Modifiers())
	k := ev.Key()

	switch name, named := keyNames[k]; {
	case k == tcell.KeyRune:
		r := ev.Rune()
		e.Key = string(r)
		e.Code = runeCode(r)
		e.CharCode = int(r)
		e.KeyCode = int(unicode.ToUpper(r))
		// tcell folds shift into the rune itself
		if unicode.IsUpper(r) {
			mods.Shift = true
		}
	case named:
		e.Key = name
		e.Code = name
		e.KeyCode = keyCodes[name]
		if len(name) > 1 && name[0] == 'F' {
			var n int
			if _, err := fmt.Sscanf(name, "F%d", &n); err == nil {
				e.KeyCode = 111 + n
			}
		}
		if k == tcell.KeyEnter {
			e.CharCode = '\r'
		}
		if k == tcell.KeyBacktab {
			mods.Shift = true
		}
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		r := rune('a' + (k - tcell.KeyCtrlA))
		e.Key = string(r)
		e.Code = runeCode(r)
		e.KeyCode = int(unicode.ToUpper(r))
		mods.Ctrl = true
	default:
		return e, false
	}

	e.Modifiers = mods
	return e, true
}

// runeCode returns the DOM physical key code for a rune on a US layout.
func runeCode(r rune) string {
	switch {
	case r >= 'a' && r <= 'z':
		return "Key" + string(unicode.ToUpper(r))
	case r >= 'A' && r <= 'Z':
		return "Key" + string(r)
	case r >= '0' && r <= '9':
		return "Digit" + string(r)
	case r == ' ':
		return "Space"
	default:
		return ""
	}
}

func convertMod(m tcell.ModMask) html5.Modifiers {
	return html5.Modifiers{
		Shift: m&tcell.ModShift != 0,
		Ctrl:  m&tcell.ModCtrl != 0,
		Alt:   m&tcell.ModAlt != 0,
		Meta:  m&tcell.ModMeta != 0,
	}
}

// convertButtons converts the pressed tcell buttons to a DOM buttons mask.
func convertButtons(b tcell.ButtonMask) html5.Buttons {
	var result html5.Buttons
	if b&tcell.ButtonPrimary != 0 {
		result |= html5.ButtonsLeft
	}
	if b&tcell.ButtonSecondary != 0 {
		result |= html5.ButtonsRight
	}
	if b&tcell.ButtonMiddle != 0 {
		result |= html5.ButtonsMiddle
	}
	return result
}

// buttonOrder lists DOM buttons with their mask bit.
var buttonOrder = []struct {
	button html5.MouseButton
	mask   html5.Buttons
}{
	{html5.ButtonLeft, html5.ButtonsLeft},
	{html5.ButtonMiddle, html5.ButtonsMiddle},
	{html5.ButtonRight, html5.ButtonsRight},
}
