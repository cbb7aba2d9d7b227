// Package easing maps normalized animation time onto normalized progress.
package easing

import (
	"math"
	"strings"
)

// Kind selects an easing curve.
type Kind int

const (
	Linear Kind = iota
	EaseOutCubic
	EaseOutExpo
)

func (k Kind) String() string {
	switch k {
	case EaseOutCubic:
		return "EaseOutCubic"
	case EaseOutExpo:
		return "EaseOutExpo"
	default:
		return "Linear"
	}
}

// Parse resolves an easing name as written in skin files. Unknown names
// resolve to Linear so skins written for newer builds still load.
func Parse(name string) Kind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "easeoutcubic":
		return EaseOutCubic
	case "easeoutexpo":
		return EaseOutExpo
	default:
		return Linear
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	*k = Parse(string(b))
	return nil
}

// Ease evaluates kind at t. t is clamped to [0,1] and so is the result.
func Ease(kind Kind, t float64) float64 {
	if math.IsNaN(t) || t <= 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	var p float64
	switch kind {
	case EaseOutCubic:
		p = 1 - math.Pow(1-t, 3)
	case EaseOutExpo:
		if t >= 1 {
			p = 1
		} else {
			p = 1 - math.Pow(2, -10*t)
		}
	default:
		p = t
	}
	return math.Max(0, math.Min(1, p))
}
