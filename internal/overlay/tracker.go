package overlay

import (
	"time"

	"github.com/ingyamilmolinar/keyoverlay/core/easing"
	"github.com/ingyamilmolinar/keyoverlay/core/model"
	"github.com/ingyamilmolinar/keyoverlay/internal/utils"
)

// Phase is the animation state of a tracker.
type Phase uint8

const (
	Idle Phase = iota
	AnimatingToPressed
	AnimatingToReleased
)

func (p Phase) String() string {
	switch p {
	case AnimatingToPressed:
		return "AnimatingToPressed"
	case AnimatingToReleased:
		return "AnimatingToReleased"
	default:
		return "Idle"
	}
}

// Handle indexes a tracker inside the overlay's arena. Handles are only valid
// until the next layout rebuild.
type Handle int

// Tracker owns the press state and scale animation of one binding. Its
// anchor (x, y, size) is fixed at layout time.
type Tracker struct {
	label   string
	binding model.Binding
	x, y    float64
	size    float64

	pressed    bool
	pressCount uint64
	fill       model.Color

	scale      float64
	phase      Phase
	elapsed    time.Duration
	startScale float64
}

func newTracker(spec model.KeySpec, x, y, size float64, skin *model.Skin) Tracker {
	return Tracker{
		label:      spec.Label,
		binding:    spec.Binding,
		x:          x,
		y:          y,
		size:       size,
		fill:       skin.KeyDefault,
		scale:      1,
		startScale: 1,
	}
}

func (t *Tracker) Label() string          { return t.label }
func (t *Tracker) Binding() model.Binding { return t.binding }
func (t *Tracker) Pressed() bool          { return t.pressed }
func (t *Tracker) PressCount() uint64     { return t.pressCount }
func (t *Tracker) Scale() float64         { return t.scale }
func (t *Tracker) Phase() Phase           { return t.phase }
func (t *Tracker) Fill() model.Color      { return t.fill }

// Center returns the visual centre, which scaling never moves.
func (t *Tracker) Center() (x, y float64) {
	return t.x + t.size/2, t.y + t.size/2
}

// Rect returns the scaled key rectangle.
func (t *Tracker) Rect() (x, y, w, h float64) {
	cx, cy := t.Center()
	side := t.size * t.scale
	return cx - side/2, cy - side/2, side, side
}

func phaseParams(a *model.Animation, p Phase) (time.Duration, float64, easing.Kind) {
	if p == AnimatingToPressed {
		return a.PressDuration, a.TargetPressScale, a.PressEasing
	}
	return a.ReleaseDuration, 1, a.ReleaseEasing
}

// advance feeds the current physical state and frame delta. It reports
// whether this frame is a false→true transition.
func (t *Tracker) advance(pressed bool, dt time.Duration, skin *model.Skin) bool {
	justPressed := pressed && !t.pressed
	justReleased := !pressed && t.pressed
	t.pressed = pressed

	switch {
	case justPressed:
		t.pressCount++
		t.fill = skin.KeyPressed
	case justReleased:
		t.fill = skin.KeyDefault
	}

	a := &skin.Animation
	if !a.Enabled {
		t.phase, t.elapsed = Idle, 0
		if pressed {
			t.scale = a.TargetPressScale
		} else {
			t.scale = 1
		}
		t.startScale = t.scale
		return justPressed
	}

	if justPressed || justReleased {
		t.phase = AnimatingToReleased
		if justPressed {
			t.phase = AnimatingToPressed
		}
		t.startScale = t.scale
		t.elapsed = 0
		if dur, target, _ := phaseParams(a, t.phase); dur <= 0 {
			t.settle(target)
		}
		return justPressed
	}

	if t.phase != Idle {
		t.elapsed += dt
		t.step(a)
	}
	return false
}

func (t *Tracker) step(a *model.Animation) {
	dur, target, kind := phaseParams(a, t.phase)
	progress := 1.0
	if dur > 0 {
		progress = utils.Clamp(float64(t.elapsed)/float64(dur), 0, 1)
	}
	if progress >= 1 {
		t.settle(target)
		return
	}
	t.scale = utils.Lerp(t.startScale, target, easing.Ease(kind, progress))
}

func (t *Tracker) settle(target float64) {
	t.scale = target
	t.phase = Idle
	t.elapsed = 0
}
