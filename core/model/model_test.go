package model

import (
	"strings"
	"testing"
)

func TestParseBinding(t *testing.T) {
	cases := []struct {
		in   string
		want Binding
	}{
		{"key:D", Key("D")},
		{"Space", Key("Space")},
		{"mouse:left", Mouse(MouseLeft)},
		{"MOUSE:Right", Mouse(MouseRight)},
	}
	for _, c := range cases {
		got, err := ParseBinding(c.in)
		if err != nil {
			t.Fatalf("ParseBinding(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseBinding(%q) = %v, want %v", c.in, got, c.want)
		}
	}
	for _, bad := range []string{"", "key:", "mouse:side", "pad:A"} {
		if _, err := ParseBinding(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestBindingIsTaggedUnion(t *testing.T) {
	k := Key("J")
	if _, ok := k.Button(); ok {
		t.Fatalf("keyboard binding reported a mouse button")
	}
	if name, ok := k.KeyName(); !ok || name != "J" {
		t.Fatalf("expected key J, got %q %v", name, ok)
	}
	m := Mouse(MouseMiddle)
	if _, ok := m.KeyName(); ok {
		t.Fatalf("mouse binding reported a key name")
	}
	if m.String() != "mouse:middle" {
		t.Fatalf("unexpected string %q", m.String())
	}
}

func TestColorLerp(t *testing.T) {
	from := Color{255, 255, 255, 200}
	to := from.WithAlpha(0)
	mid := from.Lerp(to, 0.5)
	if mid.R != 255 || mid.G != 255 || mid.B != 255 || mid.A != 100 {
		t.Fatalf("unexpected midpoint %+v", mid)
	}
	if from.Lerp(to, 2) != to || from.Lerp(to, -1) != from {
		t.Fatalf("lerp must clamp t")
	}
}

func TestDefaultsValidate(t *testing.T) {
	if err := DefaultSkin().Validate(); err != nil {
		t.Fatalf("default skin invalid: %v", err)
	}
	if err := DefaultProfile().Validate(); err != nil {
		t.Fatalf("default profile invalid: %v", err)
	}
}

func TestProfileValidateCollectsErrors(t *testing.T) {
	p := DefaultProfile()
	p.KeySize = 0
	p.Keys = append(p.Keys, KeySpec{Label: "D", Binding: Key("X")})
	err := p.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "key-size") || !strings.Contains(msg, "duplicate label") {
		t.Fatalf("missing messages in %q", msg)
	}
}

func TestProfileValidateGlitchFrequencyFloor(t *testing.T) {
	for _, f := range []float64{0, 0.5, 0.99} {
		p := DefaultProfile()
		p.GlitchFrequency = f
		err := p.Validate()
		if err == nil || !strings.Contains(err.Error(), "glitch-frequency") {
			t.Fatalf("frequency %v: err = %v", f, err)
		}
	}
	p := DefaultProfile()
	p.GlitchFrequency = 1
	if err := p.Validate(); err != nil {
		t.Fatalf("frequency 1 rejected: %v", err)
	}
}

func TestProfileCloneDetachesKeys(t *testing.T) {
	p := DefaultProfile()
	c := p.Clone()
	c.Keys[0].Label = "Z"
	if p.Keys[0].Label != "D" {
		t.Fatalf("clone shares key slice")
	}
}
