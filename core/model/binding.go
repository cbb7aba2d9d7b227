package model

import (
	"fmt"
	"strings"
)

// BindingKind tags which half of a Binding is set.
type BindingKind uint8

const (
	KeyboardBinding BindingKind = iota + 1
	MouseBinding
)

// MouseButton identifies a pointer button independently of any window toolkit.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

var mouseButtonNames = [...]string{"left", "right", "middle"}

func (b MouseButton) String() string {
	if int(b) < len(mouseButtonNames) {
		return mouseButtonNames[b]
	}
	return fmt.Sprintf("button%d", int(b))
}

// Binding is a tracked keyboard key or mouse button. Exactly one of the two is
// set and the value never changes after construction.
type Binding struct {
	kind   BindingKind
	key    string
	button MouseButton
}

// Key returns a keyboard binding. name is a key name such as "D", "Space" or
// "ArrowLeft"; resolution to a device code belongs to the input backend.
func Key(name string) Binding {
	return Binding{kind: KeyboardBinding, key: name}
}

// Mouse returns a mouse-button binding.
func Mouse(b MouseButton) Binding {
	return Binding{kind: MouseBinding, button: b}
}

func (b Binding) Kind() BindingKind { return b.kind }

// KeyName returns the key name of a keyboard binding.
func (b Binding) KeyName() (string, bool) {
	return b.key, b.kind == KeyboardBinding
}

// Button returns the button of a mouse binding.
func (b Binding) Button() (MouseButton, bool) {
	return b.button, b.kind == MouseBinding
}

// IsZero reports whether b was never constructed.
func (b Binding) IsZero() bool { return b.kind == 0 }

// String renders b in the form accepted by ParseBinding.
func (b Binding) String() string {
	switch b.kind {
	case KeyboardBinding:
		return "key:" + b.key
	case MouseBinding:
		return "mouse:" + b.button.String()
	default:
		return ""
	}
}

// ParseBinding parses "key:<name>" or "mouse:<left|right|middle>". A bare name
// is treated as a key.
func ParseBinding(s string) (Binding, error) {
	s = strings.TrimSpace(s)
	kind, name, found := strings.Cut(s, ":")
	if !found {
		kind, name = "key", s
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Binding{}, fmt.Errorf("binding %q: empty name", s)
	}
	switch strings.ToLower(kind) {
	case "key":
		return Key(name), nil
	case "mouse":
		for i, n := range mouseButtonNames {
			if strings.EqualFold(n, name) {
				return Mouse(MouseButton(i)), nil
			}
		}
		return Binding{}, fmt.Errorf("binding %q: unknown mouse button %q", s, name)
	default:
		return Binding{}, fmt.Errorf("binding %q: unknown kind %q", s, kind)
	}
}
