package overlay

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/ingyamilmolinar/keyoverlay/core/model"
	"github.com/ingyamilmolinar/keyoverlay/internal/utils"
)

const (
	glitchLifetime     = 200 * time.Millisecond
	pixelationLifetime = 300 * time.Millisecond

	glitchMinHeight = 5
	glitchMaxHeight = 20
)

// effect is the lifecycle shared by every effect kind. Visual parameters are
// copied in at spawn time and never re-read from the skin.
type effect interface {
	expired(now time.Duration) bool
	release()
}

// cull drops expired effects in place, releasing each exactly once.
func cull[E effect](list []E, now time.Duration) []E {
	kept := list[:0]
	for _, e := range list {
		if e.expired(now) {
			e.release()
			continue
		}
		kept = append(kept, e)
	}
	var zero E
	for i := len(kept); i < len(list); i++ {
		list[i] = zero
	}
	return kept
}

// TapEffect is a pulse at a key's centre that grows to its peak scale over
// the first half of its life and fades out linearly over the whole of it.
type TapEffect struct {
	cx, cy    float64
	base      float64
	shape     model.Shape
	from, to  model.Color
	peak      float64
	createdAt time.Duration
	lifetime  time.Duration
}

func newTapEffect(cx, cy, base float64, shape model.Shape, c model.Color, peak float64, lifetime, now time.Duration) *TapEffect {
	return &TapEffect{
		cx: cx, cy: cy,
		base:      base,
		shape:     shape,
		from:      c,
		to:        c.WithAlpha(0),
		peak:      peak,
		createdAt: now,
		lifetime:  lifetime,
	}
}

func (e *TapEffect) elapsed(now time.Duration) float64 {
	return (now - e.createdAt).Seconds()
}

// Scale is 1 at spawn and reaches peak at half the lifetime.
func (e *TapEffect) Scale(now time.Duration) float64 {
	r := utils.Ratio(e.elapsed(now), e.lifetime.Seconds()/2)
	return 1 + min(1, r)*(e.peak-1)
}

// Color fades from the spawn colour to the same colour at zero alpha.
func (e *TapEffect) Color(now time.Duration) model.Color {
	return e.from.Lerp(e.to, utils.Ratio(e.elapsed(now), e.lifetime.Seconds()))
}

func (e *TapEffect) expired(now time.Duration) bool { return now-e.createdAt >= e.lifetime }
func (e *TapEffect) release()                       {}

func (e *TapEffect) draw(s Surface, now time.Duration) {
	side := e.base * e.Scale(now)
	c := e.Color(now)
	if e.shape == model.Circle {
		s.FillCircle(e.cx, e.cy, side/2, c)
		return
	}
	s.FillRect(e.cx-side/2, e.cy-side/2, side, side, c)
}

// GlitchBar is a full-width horizontal bar that is visible for a fixed time.
type GlitchBar struct {
	y, height float64
	color     model.Color
	createdAt time.Duration
}

func newGlitchBar(rng *rand.Rand, screenH float64, palette model.GlitchPalette, base model.Color, now time.Duration) *GlitchBar {
	h := rng.Float64()*(glitchMaxHeight-glitchMinHeight) + glitchMinHeight
	y := rng.Float64() * screenH
	alpha := uint8(100 + rng.IntN(100))
	c := base.WithAlpha(alpha)
	if palette == model.GlitchRandom {
		c = model.Color{
			R: uint8(rng.IntN(255)),
			G: uint8(rng.IntN(255)),
			B: uint8(rng.IntN(255)),
			A: alpha,
		}
	}
	return &GlitchBar{y: y, height: h, color: c, createdAt: now}
}

func (g *GlitchBar) Height() float64    { return g.height }
func (g *GlitchBar) Color() model.Color { return g.color }

func (g *GlitchBar) expired(now time.Duration) bool { return now-g.createdAt >= glitchLifetime }
func (g *GlitchBar) release()                       {}

func (g *GlitchBar) draw(s Surface) {
	w, _ := s.Size()
	s.FillRect(0, g.y-g.height/2, float64(w), g.height, g.color)
}

var errNilFrame = errors.New("frame grabber returned no frame")

// PixelationEffect redraws a downsampled snapshot of the frame over the
// screen. It owns the snapshot until it expires.
type PixelationEffect struct {
	frame     Frame
	screenW   int
	screenH   int
	smallW    int
	smallH    int
	createdAt time.Duration
	released  bool
}

// pixelatedSize returns the intermediate buffer size for a block factor.
// Neither dimension is ever below 1.
func pixelatedSize(w, h, block int) (int, int) {
	block = utils.AtLeast(block, 1)
	return utils.AtLeast(w/block, 1), utils.AtLeast(h/block, 1)
}

// newPixelationEffect either returns a fully initialised effect or an error;
// a failed capture leaves nothing behind.
func newPixelationEffect(g FrameGrabber, screenW, screenH, block int, now time.Duration) (*PixelationEffect, error) {
	sw, sh := pixelatedSize(screenW, screenH, block)
	f, err := g.Capture(sw, sh)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, errNilFrame
	}
	return &PixelationEffect{
		frame:     f,
		screenW:   screenW,
		screenH:   screenH,
		smallW:    sw,
		smallH:    sh,
		createdAt: now,
	}, nil
}

func (p *PixelationEffect) expired(now time.Duration) bool {
	return now-p.createdAt >= pixelationLifetime
}

func (p *PixelationEffect) release() {
	if p.released {
		return
	}
	p.released = true
	p.frame.Release()
	p.frame = nil
}

func (p *PixelationEffect) draw(s Surface) {
	if p.released {
		return
	}
	s.Blit(p.frame, 0, 0, float64(p.screenW)/float64(p.smallW), float64(p.screenH)/float64(p.smallH))
}
