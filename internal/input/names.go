package input

import (
	"strings"
	"sync"
)

// evdevAliases maps browser-style key names, as ebiten uses them, to the
// suffix of Linux KEY_* codes.
var evdevAliases = map[string]string{
	"ARROWLEFT":    "LEFT",
	"ARROWRIGHT":   "RIGHT",
	"ARROWUP":      "UP",
	"ARROWDOWN":    "DOWN",
	"ESCAPE":       "ESC",
	"CONTROLLEFT":  "LEFTCTRL",
	"CONTROLRIGHT": "RIGHTCTRL",
	"SHIFTLEFT":    "LEFTSHIFT",
	"SHIFTRIGHT":   "RIGHTSHIFT",
	"ALTLEFT":      "LEFTALT",
	"ALTRIGHT":     "RIGHTALT",
	"METALEFT":     "LEFTMETA",
	"METARIGHT":    "RIGHTMETA",
	"BRACKETLEFT":  "LEFTBRACE",
	"BRACKETRIGHT": "RIGHTBRACE",
	"QUOTE":        "APOSTROPHE",
	"BACKQUOTE":    "GRAVE",
	"PAGEUP":       "PAGEUP",
	"PAGEDOWN":     "PAGEDOWN",
}

// evdevKeyName returns the KEY_* name for a key binding name.
func evdevKeyName(name string) string {
	n := strings.ToUpper(strings.TrimSpace(name))
	n = strings.TrimPrefix(n, "KEY_")
	if a, ok := evdevAliases[n]; ok {
		n = a
	} else if strings.HasPrefix(n, "DIGIT") && len(n) == 6 {
		n = n[5:]
	} else if strings.HasPrefix(n, "NUMPAD") && len(n) == 7 {
		n = "KP" + n[6:]
	}
	return "KEY_" + n
}

// pressTable tracks held codes as reported by a device reader goroutine.
type pressTable struct {
	mu   sync.RWMutex
	down map[uint16]bool
}

func newPressTable() *pressTable {
	return &pressTable{down: make(map[uint16]bool)}
}

// apply records one key event: 0 is release, 1 press, 2 autorepeat.
func (t *pressTable) apply(code uint16, value int32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if value == 0 {
		delete(t.down, code)
		return
	}
	t.down[code] = true
}

func (t *pressTable) pressed(code uint16) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.down[code]
}

func (t *pressTable) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.down)
}
