package ui

import (
	"github.com/ingyamilmolinar/keyoverlay/core/model"
	"github.com/ingyamilmolinar/keyoverlay/internal/overlay"
)

const (
	fadeSteps      = 255
	fadeStepHeight = 2
)

// drawFading paints a vertical band of the background colour, opaque at the
// top and clear at the bottom, ending just above the key row.
func drawFading(s overlay.Surface, bg model.Color, p model.Profile) {
	w, h := s.Size()
	bottom := float64(h) - p.KeySize - 2*p.Margin
	top := bottom - fadeSteps*fadeStepHeight
	for i := 0; i < fadeSteps; i++ {
		y := top + float64(i*fadeStepHeight)
		if y+fadeStepHeight <= 0 {
			continue
		}
		s.FillRect(0, y, float64(w), fadeStepHeight, bg.WithAlpha(uint8(fadeSteps-i)))
	}
}
