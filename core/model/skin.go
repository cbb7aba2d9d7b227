package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ingyamilmolinar/keyoverlay/core/easing"
)

// Shape selects how keys and tap pulses are drawn.
type Shape uint8

const (
	Rectangle Shape = iota
	Circle
)

func (s Shape) String() string {
	if s == Circle {
		return "Circle"
	}
	return "Rectangle"
}

// ParseShape resolves a shape name; anything but "circle" is a rectangle.
func ParseShape(name string) Shape {
	if strings.EqualFold(strings.TrimSpace(name), "circle") {
		return Circle
	}
	return Rectangle
}

// PanelTheme holds the colours of the settings panel.
type PanelTheme struct {
	Background        Color
	Text              Color
	HeaderText        Color
	ControlBackground Color
	ControlOutline    Color
	ControlText       Color
	ControlAccent     Color
	ButtonBackground  Color
	ButtonText        Color
	ButtonHover       Color
	DirtyIndicator    Color
}

// Animation describes the press/release scale animation of a key.
type Animation struct {
	Enabled          bool
	PressDuration    time.Duration
	ReleaseDuration  time.Duration
	TargetPressScale float64
	PressEasing      easing.Kind
	ReleaseEasing    easing.Kind
}

// Skin is an immutable bundle of style values. Callers replace a Skin
// wholesale; it is passed and stored by value.
type Skin struct {
	Name        string
	Author      string
	Description string
	FontFile    string

	KeyShape  Shape
	Animation Animation

	Background Color
	KeyDefault Color
	KeyPressed Color
	KeyOutline Color
	KeyLabel   Color
	Counter    Color
	Glitch     Color
	TapEffect  Color
	TapShape   Shape

	Panel PanelTheme
}

// DefaultSkin returns the built-in skin.
func DefaultSkin() Skin {
	return Skin{
		Name:        "Default",
		Author:      "KeyOverlay",
		Description: "Built-in dark skin.",
		KeyShape:    Rectangle,
		Animation: Animation{
			Enabled:          true,
			PressDuration:    150 * time.Millisecond,
			ReleaseDuration:  250 * time.Millisecond,
			TargetPressScale: 1.15,
			PressEasing:      easing.EaseOutCubic,
			ReleaseEasing:    easing.EaseOutCubic,
		},
		Background: RGB(0, 0, 0),
		KeyDefault: RGB(50, 50, 50),
		KeyPressed: RGB(150, 150, 150),
		KeyOutline: RGB(220, 220, 220),
		KeyLabel:   RGB(255, 255, 255),
		Counter:    RGB(0, 200, 200),
		Glitch:     Color{255, 0, 0, 150},
		TapEffect:  Color{255, 255, 255, 200},
		TapShape:   Circle,
		Panel: PanelTheme{
			Background:        Color{30, 30, 46, 235},
			Text:              RGB(205, 214, 244),
			HeaderText:        RGB(203, 166, 247),
			ControlBackground: RGB(49, 50, 68),
			ControlOutline:    RGB(88, 91, 112),
			ControlText:       RGB(186, 194, 222),
			ControlAccent:     RGB(137, 180, 250),
			ButtonBackground:  RGB(69, 71, 90),
			ButtonText:        RGB(205, 214, 244),
			ButtonHover:       RGB(88, 91, 112),
			DirtyIndicator:    RGB(243, 139, 168),
		},
	}
}

// Validate reports values no renderer can honour.
func (s Skin) Validate() error {
	var errs []error
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, errors.New("skin.name must not be empty"))
	}
	a := s.Animation
	if a.TargetPressScale <= 0 {
		errs = append(errs, fmt.Errorf("skin.animation.target_scale_press must be > 0 (got %v)", a.TargetPressScale))
	}
	if a.PressDuration < 0 {
		errs = append(errs, fmt.Errorf("skin.animation.press_duration must be >= 0 (got %v)", a.PressDuration))
	}
	if a.ReleaseDuration < 0 {
		errs = append(errs, fmt.Errorf("skin.animation.release_duration must be >= 0 (got %v)", a.ReleaseDuration))
	}
	return errors.Join(errs...)
}
