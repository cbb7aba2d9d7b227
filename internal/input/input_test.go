package input

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/keyoverlay/core/model"
)

func TestPollerResolvesBindings(t *testing.T) {
	restore := SetInputForTest(
		func(k ebiten.Key) bool { return k == ebiten.KeyD || k == ebiten.KeyArrowLeft },
		func(b ebiten.MouseButton) bool { return b == ebiten.MouseButtonRight },
	)
	defer restore()

	p := NewPoller(nil)
	cases := []struct {
		b    model.Binding
		want bool
	}{
		{model.Key("D"), true},
		{model.Key("d"), true},
		{model.Key("F"), false},
		{model.Key("ArrowLeft"), true},
		{model.Key("NotAKey"), false},
		{model.Mouse(model.MouseRight), true},
		{model.Mouse(model.MouseLeft), false},
		{model.Binding{}, false},
	}
	for _, c := range cases {
		if got := p.Pressed(c.b); got != c.want {
			t.Fatalf("Pressed(%v) = %v, want %v", c.b, got, c.want)
		}
	}
	if !p.bad["NotAKey"] {
		t.Fatalf("unknown key should be remembered")
	}
}

func TestResolveKey(t *testing.T) {
	if k, err := ResolveKey("space"); err != nil || k != ebiten.KeySpace {
		t.Fatalf("expected space, got %v %v", k, err)
	}
	if _, err := ResolveKey("Hyper"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestEvdevKeyName(t *testing.T) {
	cases := map[string]string{
		"D":           "KEY_D",
		"space":       "KEY_SPACE",
		"ArrowLeft":   "KEY_LEFT",
		"Digit1":      "KEY_1",
		"Numpad5":     "KEY_KP5",
		"ControlLeft": "KEY_LEFTCTRL",
		"KEY_Z":       "KEY_Z",
	}
	for in, want := range cases {
		if got := evdevKeyName(in); got != want {
			t.Fatalf("evdevKeyName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPressTable(t *testing.T) {
	tb := newPressTable()
	tb.apply(32, 1)
	if !tb.pressed(32) {
		t.Fatalf("expected code 32 held")
	}
	tb.apply(32, 2)
	if !tb.pressed(32) {
		t.Fatalf("autorepeat must keep the key held")
	}
	tb.apply(32, 0)
	if tb.pressed(32) {
		t.Fatalf("expected release")
	}
	tb.apply(33, 1)
	tb.reset()
	if tb.pressed(33) {
		t.Fatalf("reset must clear held keys")
	}
}
