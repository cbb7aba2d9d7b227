package ui

import (
	"image"
	"math"

	"github.com/ingyamilmolinar/keyoverlay/internal/utils"
)

// Slider is a horizontal slider over [Min, Max], snapped to Step when Step
// is positive.
type Slider struct {
	r        image.Rectangle
	Min      float64
	Max      float64
	Step     float64
	Value    float64
	dragging bool
}

func NewSlider(min, max, step, v float64) *Slider {
	s := &Slider{Min: min, Max: max, Step: step}
	s.Set(v)
	return s
}

func (s *Slider) SetRect(r image.Rectangle) { s.r = r }

func (s *Slider) Rect() image.Rectangle { return s.r }

// Ratio is the knob position in [0,1]. An empty range reads as 0.
func (s *Slider) Ratio() float64 {
	return utils.Clamp(utils.Ratio(s.Value-s.Min, s.Max-s.Min), 0, 1)
}

// Set clamps and snaps v.
func (s *Slider) Set(v float64) {
	if s.Step > 0 {
		v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
	}
	s.Value = utils.Clamp(v, s.Min, s.Max)
}

// Handle processes mouse interaction and reports whether the slider
// consumed it.
func (s *Slider) Handle(mx, my int, pressed bool) bool {
	if pressed {
		if s.dragging || image.Pt(mx, my).In(s.r) {
			s.dragging = true
			s.setFromX(mx)
			return true
		}
	} else if s.dragging {
		s.dragging = false
		return true
	}
	return false
}

func (s *Slider) Dragging() bool { return s.dragging }

func (s *Slider) setFromX(mx int) {
	w := s.r.Dx() - 1
	if w <= 0 {
		s.Set(s.Min)
		return
	}
	pos := utils.Clamp(float64(mx-s.r.Min.X), 0, float64(w))
	s.Set(s.Min + pos/float64(w)*(s.Max-s.Min))
}

// knobX returns the knob's x position in pixels.
func (s *Slider) knobX() int {
	return s.r.Min.X + int(s.Ratio()*float64(s.r.Dx()-1))
}
