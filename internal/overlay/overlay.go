// Package overlay animates tracked keys and the short-lived effects their
// presses spawn. It draws only through Surface and reads configuration only
// from the Profile and Skin values handed to it.
package overlay

import (
	"math/rand/v2"
	"slices"
	"strconv"
	"time"

	"github.com/ingyamilmolinar/keyoverlay/core/beat"
	"github.com/ingyamilmolinar/keyoverlay/core/model"
	game_log "github.com/ingyamilmolinar/keyoverlay/internal/log"
)

const (
	labelScale      = 0.6
	counterTextSize = 12
	counterInset    = 5
)

// Options carries the collaborators of an Overlay. Any of them may be nil:
// no input means nothing is ever pressed, no beat source means no beats in
// audio-reactive mode, and no grabber disables pixelation.
type Options struct {
	Input   InputSource
	Beat    beat.Source
	Grabber FrameGrabber
	Rand    *rand.Rand
	Logger  *game_log.Logger
}

// Overlay owns the trackers and every live effect. It is driven from a single
// goroutine: Update, Render and the setters must not run concurrently.
type Overlay struct {
	profile model.Profile
	skin    model.Skin
	width   int
	height  int

	trackers []Tracker
	handles  map[string]Handle

	taps     []*TapEffect
	glitches []*GlitchBar
	pixels   []*PixelationEffect

	clock      time.Duration
	lastGlitch time.Duration

	input   InputSource
	beat    beat.Source
	grabber FrameGrabber
	rng     *rand.Rand
	logger  *game_log.Logger
}

// New lays out one tracker per profile key for a w×h screen.
func New(p model.Profile, s model.Skin, w, h int, opts Options) *Overlay {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x6b6579))
	}
	logger := opts.Logger
	if logger == nil {
		logger = game_log.Discard()
	}
	o := &Overlay{
		profile: p.Clone(),
		skin:    s,
		width:   w,
		height:  h,
		input:   opts.Input,
		beat:    opts.Beat,
		grabber: opts.Grabber,
		rng:     rng,
		logger:  logger,
	}
	o.rebuild()
	return o
}

func (o *Overlay) Profile() model.Profile { return o.profile.Clone() }
func (o *Overlay) Skin() model.Skin       { return o.skin }

// SetSkin swaps the skin and rebuilds every tracker. Live effects keep the
// colours they were spawned with.
func (o *Overlay) SetSkin(s model.Skin) {
	o.skin = s
	o.logger.Infof("[OVERLAY] skin %q applied", s.Name)
	o.rebuild()
}

// SetProfile swaps the settings. Trackers are rebuilt only when the layout
// changes; toggles and effect parameters apply from the next frame.
func (o *Overlay) SetProfile(p model.Profile) {
	relayout := p.KeySize != o.profile.KeySize ||
		p.Margin != o.profile.Margin ||
		!slices.Equal(p.Keys, o.profile.Keys)
	o.profile = p.Clone()
	if relayout {
		o.rebuild()
	}
}

// Resize rebuilds the layout for a new screen size.
func (o *Overlay) Resize(w, h int) {
	if w == o.width && h == o.height {
		return
	}
	o.width, o.height = w, h
	o.rebuild()
}

func (o *Overlay) rebuild() {
	p := &o.profile
	o.trackers = make([]Tracker, 0, len(p.Keys))
	o.handles = make(map[string]Handle, len(p.Keys))
	x := p.Margin
	y := float64(o.height) - p.KeySize - p.Margin
	for _, k := range p.Keys {
		o.handles[k.Label] = Handle(len(o.trackers))
		o.trackers = append(o.trackers, newTracker(k, x, y, p.KeySize, &o.skin))
		x += p.KeySize + p.Margin
	}
	o.logger.Debugf("[OVERLAY] layout rebuilt: %d trackers at %dx%d", len(o.trackers), o.width, o.height)
}

// Lookup returns the handle of the tracker with the given label.
func (o *Overlay) Lookup(label string) (Handle, bool) {
	h, ok := o.handles[label]
	return h, ok
}

// Tracker returns the tracker behind h. The pointer is invalidated by the
// next rebuild and must not be mutated.
func (o *Overlay) Tracker(h Handle) *Tracker {
	if h < 0 || int(h) >= len(o.trackers) {
		return nil
	}
	return &o.trackers[h]
}

// TrackerCount returns the number of trackers in layout order.
func (o *Overlay) TrackerCount() int { return len(o.trackers) }

// EffectCounts returns the number of live tap, glitch and pixelation effects.
func (o *Overlay) EffectCounts() (taps, glitches, pixels int) {
	return len(o.taps), len(o.glitches), len(o.pixels)
}

// Elapsed returns the effect clock: the sum of every dt seen by Update.
func (o *Overlay) Elapsed() time.Duration { return o.clock }

// Update advances one frame by dt.
func (o *Overlay) Update(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	o.clock += dt
	p := &o.profile

	beatOccurred := true
	if p.AudioReactive {
		beatOccurred = o.beat != nil && o.beat.OnBeat()
	}

	for i := range o.trackers {
		t := &o.trackers[i]
		pressed := o.input != nil && o.input.Pressed(t.binding)
		if !t.advance(pressed, dt, &o.skin) {
			continue
		}
		if p.AudioReactive && !beatOccurred {
			continue
		}
		o.spawn(t)
	}

	o.taps = cull(o.taps, o.clock)
	o.glitches = cull(o.glitches, o.clock)
	o.pixels = cull(o.pixels, o.clock)
}

// glitchCooldown is the minimum spacing between glitch bars. ok is false
// when the frequency allows no bars at all.
func (o *Overlay) glitchCooldown() (d time.Duration, ok bool) {
	f := o.profile.GlitchFrequency
	if f <= 0 {
		return 0, false
	}
	return time.Duration(float64(time.Second) / f), true
}

func (o *Overlay) spawn(t *Tracker) {
	p := &o.profile
	if p.EnableTapEffects {
		cx, cy := t.Center()
		o.taps = append(o.taps, newTapEffect(cx, cy, p.KeySize/2, o.skin.TapShape,
			o.skin.TapEffect, p.TapEffectScale, p.TapEffectDuration, o.clock))
	}
	if cd, ok := o.glitchCooldown(); p.EnableGlitch && ok && o.clock-o.lastGlitch >= cd {
		o.glitches = append(o.glitches, newGlitchBar(o.rng, float64(o.height), p.GlitchPalette, o.skin.Glitch, o.clock))
		o.lastGlitch = o.clock
	}
	if p.EnablePixelation && o.grabber != nil {
		fx, err := newPixelationEffect(o.grabber, o.width, o.height, p.PixelSize, o.clock)
		if err != nil {
			o.logger.Warnf("[OVERLAY] pixelation skipped for %s: %v", t.label, err)
			return
		}
		o.pixels = append(o.pixels, fx)
	}
}

// Render draws trackers in layout order, then tap effects, glitch bars and
// finally pixelation over everything else.
func (o *Overlay) Render(s Surface) {
	for i := range o.trackers {
		o.drawTracker(s, &o.trackers[i])
	}
	for _, e := range o.taps {
		e.draw(s, o.clock)
	}
	if o.profile.EnableGlitch {
		for _, g := range o.glitches {
			g.draw(s)
		}
	}
	if o.profile.EnablePixelation {
		for _, p := range o.pixels {
			p.draw(s)
		}
	}
}

func (o *Overlay) drawTracker(s Surface, t *Tracker) {
	sk := &o.skin
	outline := o.profile.OutlineThickness
	x, y, w, h := t.Rect()
	if sk.KeyShape == model.Circle {
		cx, cy := t.Center()
		s.FillCircle(cx, cy, w/2, t.fill)
		if outline > 0 {
			s.StrokeCircle(cx, cy, w/2, outline, sk.KeyOutline)
		}
	} else {
		s.FillRect(x, y, w, h, t.fill)
		if outline > 0 {
			s.StrokeRect(x, y, w, h, outline, sk.KeyOutline)
		}
	}

	size := t.size * labelScale
	lw, lh := s.MeasureText(t.label, size)
	s.DrawText(t.label, x+(w-lw)/2, y+(h-lh)/2, size, sk.KeyLabel)

	if o.profile.Counter {
		s.DrawText(strconv.FormatUint(t.pressCount, 10), x+counterInset, y+counterInset, counterTextSize, sk.Counter)
	}
}

// Close releases every live pixelation snapshot.
func (o *Overlay) Close() {
	for _, p := range o.pixels {
		p.release()
	}
	o.pixels = nil
}
