package ui

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ingyamilmolinar/keyoverlay/internal/overlay"
	"github.com/ingyamilmolinar/keyoverlay/internal/profile"
)

// ControlKind tags the variant held by a Control.
type ControlKind uint8

const (
	ControlButton ControlKind = iota
	ControlToggle
	ControlSlider
	ControlSkinSelector
)

func (k ControlKind) String() string {
	switch k {
	case ControlButton:
		return "Button"
	case ControlToggle:
		return "Toggle"
	case ControlSlider:
		return "Slider"
	case ControlSkinSelector:
		return "SkinSelector"
	}
	return fmt.Sprintf("ControlKind(%d)", int(k))
}

// Control is one settings-panel widget. Only the fields of its Kind are set.
type Control struct {
	Kind  ControlKind
	Label string
	rect  image.Rectangle

	// ControlButton
	OnClick func()

	// ControlToggle
	Get func(*profile.Settings) bool
	Put func(*profile.Settings, bool)

	// ControlSlider
	Slider *Slider
	Format string
	GetNum func(*profile.Settings) float64
	PutNum func(*profile.Settings, float64)

	// ControlSkinSelector
	Options  []string
	Selected string
	OnSelect func(string)
	open     bool
}

func newButton(label string, onClick func()) *Control {
	return &Control{Kind: ControlButton, Label: label, OnClick: onClick}
}

func newToggle(label string, get func(*profile.Settings) bool, put func(*profile.Settings, bool)) *Control {
	return &Control{Kind: ControlToggle, Label: label, Get: get, Put: put}
}

func newSliderControl(label, format string, min, max, step float64,
	get func(*profile.Settings) float64, put func(*profile.Settings, float64)) *Control {
	return &Control{
		Kind:   ControlSlider,
		Label:  label,
		Slider: NewSlider(min, max, step, min),
		Format: format,
		GetNum: get,
		PutNum: put,
	}
}

func newSkinSelector(label string, onSelect func(string)) *Control {
	return &Control{Kind: ControlSkinSelector, Label: label, OnSelect: onSelect}
}

func (c *Control) SetRect(r image.Rectangle) {
	c.rect = r
	if c.Kind == ControlSlider {
		c.Slider.SetRect(r)
	}
}

func (c *Control) Rect() image.Rectangle { return c.rect }

// optionRect is the rectangle of the i-th dropdown entry below the selector.
func (c *Control) optionRect(i int) image.Rectangle {
	h := c.rect.Dy()
	return image.Rect(c.rect.Min.X, c.rect.Max.Y+i*h, c.rect.Max.X, c.rect.Max.Y+(i+1)*h)
}

// sync pulls the control's value from the draft settings.
func (c *Control) sync(s *profile.Settings) {
	if c.Kind == ControlSlider && !c.Slider.Dragging() {
		c.Slider.Set(c.GetNum(s))
	}
}

// handle feeds one frame of pointer state. clicked is the press edge. It
// reports whether draft changed and whether the pointer was consumed.
func (c *Control) handle(mx, my int, down, clicked bool, draft *profile.Settings) (changed, consumed bool) {
	inside := image.Pt(mx, my).In(c.rect)
	switch c.Kind {
	case ControlButton:
		if clicked && inside {
			if c.OnClick != nil {
				c.OnClick()
			}
			return false, true
		}
	case ControlToggle:
		if clicked && inside {
			c.Put(draft, !c.Get(draft))
			return true, true
		}
	case ControlSlider:
		before := c.Slider.Value
		if !c.Slider.Dragging() && !(clicked && inside) {
			return false, false
		}
		consumed = c.Slider.Handle(mx, my, down)
		if c.Slider.Value != before {
			c.PutNum(draft, c.Slider.Value)
			return true, consumed
		}
		return false, consumed
	case ControlSkinSelector:
		if !clicked {
			return false, false
		}
		if inside {
			c.open = !c.open
			return false, true
		}
		if c.open {
			c.open = false
			for i, opt := range c.Options {
				if image.Pt(mx, my).In(c.optionRect(i)) {
					c.Selected = opt
					if c.OnSelect != nil {
						c.OnSelect(opt)
					}
					return false, true
				}
			}
			return false, true
		}
	}
	return false, false
}

func (c *Control) draw(s overlay.Surface, th theme, draft *profile.Settings, hover bool) {
	r := c.rect
	x, y := float64(r.Min.X), float64(r.Min.Y)
	w, h := float64(r.Dx()), float64(r.Dy())
	switch c.Kind {
	case ControlButton:
		fill := th.ButtonBackground
		if hover {
			fill = th.ButtonHover
		}
		s.FillRect(x, y, w, h, fill)
		s.StrokeRect(x, y, w, h, 1, th.ControlOutline)
		drawCentered(s, c.Label, r, panelTextSize, th.ButtonText)
	case ControlToggle:
		on := c.Get(draft)
		fill := th.ControlDisabled
		label := "OFF"
		if on {
			fill = th.ControlAccent
			label = "ON"
		}
		s.FillRect(x, y, w, h, fill)
		s.StrokeRect(x, y, w, h, 1, th.ControlOutline)
		drawCentered(s, label, r, panelTextSize, th.ControlText)
	case ControlSlider:
		trackY := y + h/2 - 2
		s.FillRect(x, trackY, w, 4, th.ControlBackground)
		s.FillRect(x, trackY, float64(c.Slider.knobX()-r.Min.X), 4, th.ControlAccent)
		knob := th.ControlText
		if c.Slider.Dragging() {
			knob = th.ControlActive
		}
		s.FillRect(float64(c.Slider.knobX()-3), y, 6, h, knob)
		s.DrawText(fmt.Sprintf(c.Format, c.Slider.Value), x+w+6, y+(h-panelTextSize)/2, panelTextSize, th.Text)
	case ControlSkinSelector:
		s.FillRect(x, y, w, h, th.ControlBackground)
		outline := th.ControlOutline
		if c.open {
			outline = th.ControlActive
		}
		s.StrokeRect(x, y, w, h, 1, outline)
		s.DrawText(c.Selected, x+6, y+(h-panelTextSize)/2, panelTextSize, th.ControlText)
		if !c.open {
			return
		}
		for i, opt := range c.Options {
			or := c.optionRect(i)
			ox, oy := float64(or.Min.X), float64(or.Min.Y)
			fill := th.ControlBackground
			if opt == c.Selected {
				fill = th.ButtonHover
			}
			s.FillRect(ox, oy, w, h, fill)
			s.DrawText(opt, ox+6, oy+(h-panelTextSize)/2, panelTextSize, th.ControlText)
		}
	}
}

func drawCentered(s overlay.Surface, str string, r image.Rectangle, size float64, c color.Color) {
	tw, th := s.MeasureText(str, size)
	x := float64(r.Min.X) + (float64(r.Dx())-tw)/2
	y := float64(r.Min.Y) + (float64(r.Dy())-th)/2
	s.DrawText(str, x, y, size, c)
}
