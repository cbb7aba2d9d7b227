package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// GlitchPalette selects how glitch bars are coloured.
type GlitchPalette uint8

const (
	// GlitchRandom picks an arbitrary colour per bar.
	GlitchRandom GlitchPalette = iota
	// GlitchSkin uses the skin's glitch colour with a random alpha.
	GlitchSkin
)

func (p GlitchPalette) String() string {
	if p == GlitchSkin {
		return "skin"
	}
	return "random"
}

// ParseGlitchPalette resolves "random" or "skin".
func ParseGlitchPalette(s string) (GlitchPalette, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "random":
		return GlitchRandom, nil
	case "skin":
		return GlitchSkin, nil
	}
	return GlitchRandom, fmt.Errorf("unknown glitch palette %q", s)
}

// KeySpec is one tracked input in layout order.
type KeySpec struct {
	Label   string
	Binding Binding
}

// Profile holds the behavioural settings that do not depend on the skin.
// Like Skin it is replaced wholesale between frames, never edited in place
// while a frame is running.
type Profile struct {
	Fading           bool
	Counter          bool
	KeySize          float64
	Margin           float64
	OutlineThickness float64
	FPS              int

	EnableTapEffects  bool
	TapEffectDuration time.Duration
	TapEffectScale    float64

	EnableGlitch    bool
	GlitchFrequency float64
	GlitchPalette   GlitchPalette

	EnablePixelation bool
	PixelSize        int

	AudioReactive bool
	BeatBPM       float64

	Keys []KeySpec
	Skin string
}

// DefaultKeys returns the stock D F J K + two mouse buttons layout.
func DefaultKeys() []KeySpec {
	return []KeySpec{
		{Label: "D", Binding: Key("D")},
		{Label: "F", Binding: Key("F")},
		{Label: "J", Binding: Key("J")},
		{Label: "K", Binding: Key("K")},
		{Label: "M1", Binding: Mouse(MouseLeft)},
		{Label: "M2", Binding: Mouse(MouseRight)},
	}
}

// DefaultProfile returns the settings used when no profile file exists.
func DefaultProfile() Profile {
	return Profile{
		Fading:            true,
		Counter:           true,
		KeySize:           70,
		Margin:            25,
		OutlineThickness:  5,
		FPS:               60,
		EnableTapEffects:  true,
		TapEffectDuration: 500 * time.Millisecond,
		TapEffectScale:    1.5,
		EnableGlitch:      true,
		GlitchFrequency:   5,
		EnablePixelation:  true,
		PixelSize:         8,
		BeatBPM:           120,
		Keys:              DefaultKeys(),
		Skin:              "Default (Built-in)",
	}
}

// Clone returns a copy that shares no slices with p.
func (p Profile) Clone() Profile {
	p.Keys = append([]KeySpec(nil), p.Keys...)
	return p
}

// Validate reports settings that would break layout or effects.
func (p Profile) Validate() error {
	var errs []error
	if p.KeySize <= 0 {
		errs = append(errs, fmt.Errorf("profile.key-size must be > 0 (got %v)", p.KeySize))
	}
	if p.Margin < 0 {
		errs = append(errs, fmt.Errorf("profile.margin must be >= 0 (got %v)", p.Margin))
	}
	if p.OutlineThickness < 0 {
		errs = append(errs, fmt.Errorf("profile.outline-thickness must be >= 0 (got %v)", p.OutlineThickness))
	}
	if p.FPS <= 0 {
		errs = append(errs, fmt.Errorf("profile.fps must be > 0 (got %d)", p.FPS))
	}
	if p.TapEffectDuration < 0 {
		errs = append(errs, fmt.Errorf("profile.tap-effect-duration must be >= 0 (got %v)", p.TapEffectDuration))
	}
	if p.GlitchFrequency < 1 {
		errs = append(errs, fmt.Errorf("profile.glitch-frequency must be >= 1 (got %v)", p.GlitchFrequency))
	}
	if p.BeatBPM < 0 {
		errs = append(errs, fmt.Errorf("profile.beat-bpm must be >= 0 (got %v)", p.BeatBPM))
	}
	seen := make(map[string]bool, len(p.Keys))
	for i, k := range p.Keys {
		if k.Binding.IsZero() {
			errs = append(errs, fmt.Errorf("profile.keys[%d]: missing binding", i))
		}
		if seen[k.Label] {
			errs = append(errs, fmt.Errorf("profile.keys[%d]: duplicate label %q", i, k.Label))
		}
		seen[k.Label] = true
	}
	return errors.Join(errs...)
}
