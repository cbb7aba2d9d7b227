package ui

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ingyamilmolinar/keyoverlay/core/model"
)

// theme is the resolved palette of the settings panel.
type theme struct {
	model.PanelTheme
	// ControlActive highlights a control being dragged or an open dropdown.
	ControlActive model.Color
	// ControlDisabled dims the off half of toggles.
	ControlDisabled model.Color
}

// shiftValue moves c's HSV value by dv, keeping alpha.
func shiftValue(c model.Color, dv float64) model.Color {
	cf := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	h, s, v := cf.Hsv()
	r, g, b := colorful.Hsv(h, s, min(1, max(0, v+dv))).Clamped().RGB255()
	return model.Color{R: r, G: g, B: b, A: c.A}
}

func themeFromSkin(p model.PanelTheme) theme {
	return theme{
		PanelTheme:      p,
		ControlActive:   shiftValue(p.ControlAccent, 0.15),
		ControlDisabled: shiftValue(p.ControlBackground, -0.1),
	}
}
