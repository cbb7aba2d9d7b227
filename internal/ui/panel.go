package ui

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/keyoverlay/core/model"
	game_log "github.com/ingyamilmolinar/keyoverlay/internal/log"
	"github.com/ingyamilmolinar/keyoverlay/internal/overlay"
	"github.com/ingyamilmolinar/keyoverlay/internal/profile"
)

const (
	panelPad      = 16
	panelHeader   = 36
	panelTextSize = 14
	rowHeight     = 22
	rowGap        = 8
	labelWidth    = 130
	toggleWidth   = 56
	sliderWidth   = 140
	selectorWidth = 180
	columnWidth   = labelWidth + sliderWidth + 70
	buttonWidth   = 120
)

// PanelHooks connects the panel to the rest of the application.
type PanelHooks struct {
	// Apply is called with the draft after every edit.
	Apply func(profile.Settings)
	// Save persists the draft.
	Save func(profile.Settings) error
	// ReloadSkins rescans the skins directory and returns the new names.
	ReloadSkins func() []string
}

// row pairs a caption with the control it describes.
type row struct {
	caption string
	ctrl    *Control
}

// Panel is the in-window settings editor toggled with F1. It edits a draft
// copy of the settings; every change is applied live and Save persists it.
type Panel struct {
	visible  bool
	draft    profile.Settings
	dirty    bool
	hooks    PanelHooks
	logger   *game_log.Logger
	th       theme
	left     []row
	right    []row
	skins    *Control
	save     *Control
	reload   *Control
	rect     image.Rectangle
	leftPrev bool
	hover    image.Point
}

func NewPanel(s profile.Settings, skinNames []string, th model.PanelTheme, hooks PanelHooks, logger *game_log.Logger) *Panel {
	if logger == nil {
		logger = game_log.Discard()
	}
	p := &Panel{draft: s, hooks: hooks, logger: logger, th: themeFromSkin(th)}
	p.build()
	p.SetSkins(skinNames)
	p.sync()
	return p
}

func (p *Panel) build() {
	pf := func(s *profile.Settings) *model.Profile { return &s.Profile }
	p.skins = newSkinSelector("Skin", func(name string) {
		p.draft.Profile.Skin = name
		p.changed()
	})
	p.left = []row{
		{"Skin", p.skins},
		{"Fading", newToggle("Fading",
			func(s *profile.Settings) bool { return pf(s).Fading },
			func(s *profile.Settings, v bool) { pf(s).Fading = v })},
		{"Counter", newToggle("Counter",
			func(s *profile.Settings) bool { return pf(s).Counter },
			func(s *profile.Settings, v bool) { pf(s).Counter = v })},
		{"Tap effects", newToggle("Tap effects",
			func(s *profile.Settings) bool { return pf(s).EnableTapEffects },
			func(s *profile.Settings, v bool) { pf(s).EnableTapEffects = v })},
		{"Glitch", newToggle("Glitch",
			func(s *profile.Settings) bool { return pf(s).EnableGlitch },
			func(s *profile.Settings, v bool) { pf(s).EnableGlitch = v })},
		{"Pixelation", newToggle("Pixelation",
			func(s *profile.Settings) bool { return pf(s).EnablePixelation },
			func(s *profile.Settings, v bool) { pf(s).EnablePixelation = v })},
		{"Audio reactive", newToggle("Audio reactive",
			func(s *profile.Settings) bool { return pf(s).AudioReactive },
			func(s *profile.Settings, v bool) { pf(s).AudioReactive = v })},
	}
	p.right = []row{
		{"Key size", newSliderControl("Key size", "%.0f", 30, 150, 1,
			func(s *profile.Settings) float64 { return pf(s).KeySize },
			func(s *profile.Settings, v float64) { pf(s).KeySize = v })},
		{"Margin", newSliderControl("Margin", "%.0f", 0, 60, 1,
			func(s *profile.Settings) float64 { return pf(s).Margin },
			func(s *profile.Settings, v float64) { pf(s).Margin = v })},
		{"Outline", newSliderControl("Outline", "%.0f", 0, 10, 1,
			func(s *profile.Settings) float64 { return pf(s).OutlineThickness },
			func(s *profile.Settings, v float64) { pf(s).OutlineThickness = v })},
		{"Glitch freq", newSliderControl("Glitch freq", "%.0f/s", 1, 30, 1,
			func(s *profile.Settings) float64 { return pf(s).GlitchFrequency },
			func(s *profile.Settings, v float64) { pf(s).GlitchFrequency = v })},
		{"Pixel size", newSliderControl("Pixel size", "%.0f px", 1, 32, 1,
			func(s *profile.Settings) float64 { return float64(pf(s).PixelSize) },
			func(s *profile.Settings, v float64) { pf(s).PixelSize = int(v) })},
		{"Tap duration", newSliderControl("Tap duration", "%.2f s", 0.1, 2, 0.05,
			func(s *profile.Settings) float64 { return pf(s).TapEffectDuration.Seconds() },
			func(s *profile.Settings, v float64) {
				pf(s).TapEffectDuration = time.Duration(v * float64(time.Second)).Round(time.Millisecond)
			})},
		{"Tap scale", newSliderControl("Tap scale", "%.2fx", 1, 3, 0.05,
			func(s *profile.Settings) float64 { return pf(s).TapEffectScale },
			func(s *profile.Settings, v float64) { pf(s).TapEffectScale = v })},
	}
	p.save = newButton("Save", p.doSave)
	p.reload = newButton("Reload skins", p.doReload)
}

// Layout places every control inside a w×h window.
func (p *Panel) Layout(w, h int) {
	x0 := panelPad * 2
	x1 := x0 + columnWidth
	y0 := panelPad + panelHeader
	place := func(rows []row, x int) int {
		y := y0
		for _, r := range rows {
			cx := x + labelWidth
			cw := sliderWidth
			switch r.ctrl.Kind {
			case ControlToggle:
				cw = toggleWidth
			case ControlSkinSelector:
				cw = selectorWidth
			}
			r.ctrl.SetRect(image.Rect(cx, y, cx+cw, y+rowHeight))
			y += rowHeight + rowGap
		}
		return y
	}
	bottom := max(place(p.left, x0), place(p.right, x1))
	p.save.SetRect(image.Rect(x0, bottom, x0+buttonWidth, bottom+rowHeight))
	p.reload.SetRect(image.Rect(x0+buttonWidth+rowGap, bottom, x0+2*buttonWidth+rowGap, bottom+rowHeight))
	p.rect = image.Rect(panelPad, panelPad, min(w-panelPad, x1+columnWidth), min(h-panelPad, bottom+rowHeight+panelPad))
}

func (p *Panel) Toggle()       { p.visible = !p.visible }
func (p *Panel) Visible() bool { return p.visible }
func (p *Panel) Dirty() bool   { return p.dirty }

// Draft returns the settings as currently edited.
func (p *Panel) Draft() profile.Settings {
	d := p.draft
	d.Profile = d.Profile.Clone()
	return d
}

// SetSettings replaces the draft, typically after the profile file changed
// on disk, and clears the dirty flag.
func (p *Panel) SetSettings(s profile.Settings) {
	p.draft = s
	p.dirty = false
	p.sync()
}

// SetTheme switches the panel palette.
func (p *Panel) SetTheme(t model.PanelTheme) { p.th = themeFromSkin(t) }

// SetSkins replaces the selector's options.
func (p *Panel) SetSkins(names []string) {
	p.skins.Options = append([]string(nil), names...)
	p.skins.Selected = p.draft.Profile.Skin
}

func (p *Panel) sync() {
	p.skins.Selected = p.draft.Profile.Skin
	for _, r := range p.right {
		r.ctrl.sync(&p.draft)
	}
}

func (p *Panel) changed() {
	p.dirty = true
	if p.hooks.Apply != nil {
		p.hooks.Apply(p.Draft())
	}
}

func (p *Panel) doSave() {
	if p.hooks.Save == nil {
		return
	}
	if err := p.hooks.Save(p.Draft()); err != nil {
		p.logger.Errorf("[PANEL] save failed: %v", err)
		return
	}
	p.dirty = false
}

func (p *Panel) doReload() {
	if p.hooks.ReloadSkins == nil {
		return
	}
	p.SetSkins(p.hooks.ReloadSkins())
}

// controls lists every control in hit-test order; an open dropdown wins.
func (p *Panel) controls() []*Control {
	out := make([]*Control, 0, len(p.left)+len(p.right)+2)
	if p.skins.open {
		out = append(out, p.skins)
	}
	for _, r := range p.left {
		if r.ctrl != p.skins || !p.skins.open {
			out = append(out, r.ctrl)
		}
	}
	for _, r := range p.right {
		out = append(out, r.ctrl)
	}
	return append(out, p.save, p.reload)
}

// Update processes one frame of mouse input. It reports whether the panel
// consumed the pointer.
func (p *Panel) Update() bool {
	if !p.visible {
		p.leftPrev = false
		return false
	}
	mx, my := cursorPosition()
	down := isMouseButtonPressed(ebiten.MouseButtonLeft)
	clicked := down && !p.leftPrev
	p.leftPrev = down
	p.hover = image.Pt(mx, my)

	for _, c := range p.controls() {
		changed, consumed := c.handle(mx, my, down, clicked, &p.draft)
		if changed {
			p.changed()
		}
		if consumed {
			return true
		}
	}
	return clicked && p.hover.In(p.rect)
}

// Draw renders the panel when visible.
func (p *Panel) Draw(s overlay.Surface) {
	if !p.visible {
		return
	}
	r := p.rect
	s.FillRect(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()), p.th.Background)
	s.StrokeRect(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()), 1, p.th.ControlOutline)
	s.DrawText("Settings", float64(r.Min.X+panelPad), float64(r.Min.Y+panelPad/2), panelTextSize+4, p.th.HeaderText)
	if p.dirty {
		s.DrawText("unsaved", float64(r.Max.X-panelPad-70), float64(r.Min.Y+panelPad/2), panelTextSize, p.th.DirtyIndicator)
	}

	for _, rows := range [][]row{p.left, p.right} {
		for _, rw := range rows {
			cr := rw.ctrl.Rect()
			s.DrawText(rw.caption, float64(cr.Min.X-labelWidth), float64(cr.Min.Y)+(rowHeight-panelTextSize)/2, panelTextSize, p.th.Text)
			if rw.ctrl != p.skins {
				rw.ctrl.draw(s, p.th, &p.draft, p.hover.In(cr))
			}
		}
	}
	p.save.Label = "Save"
	if p.dirty {
		p.save.Label = "Save*"
	}
	p.save.draw(s, p.th, &p.draft, p.hover.In(p.save.Rect()))
	p.reload.draw(s, p.th, &p.draft, p.hover.In(p.reload.Rect()))
	// drawn last so the open list covers the rows beneath it
	p.skins.draw(s, p.th, &p.draft, false)
}
