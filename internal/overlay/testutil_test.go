package overlay

import (
	"errors"
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/ingyamilmolinar/keyoverlay/core/model"
)

const frame = time.Second / 60

type drawOp struct {
	kind       string
	x, y, w, h float64
	text       string
	c          color.Color
}

// recordSurface captures draw calls in order.
type recordSurface struct {
	w, h int
	ops  []drawOp
}

func (r *recordSurface) Size() (int, int) { return r.w, r.h }
func (r *recordSurface) FillRect(x, y, w, h float64, c color.Color) {
	r.ops = append(r.ops, drawOp{kind: "fillrect", x: x, y: y, w: w, h: h, c: c})
}
func (r *recordSurface) StrokeRect(x, y, w, h, _ float64, c color.Color) {
	r.ops = append(r.ops, drawOp{kind: "strokerect", x: x, y: y, w: w, h: h, c: c})
}
func (r *recordSurface) FillCircle(cx, cy, rad float64, c color.Color) {
	r.ops = append(r.ops, drawOp{kind: "fillcircle", x: cx, y: cy, w: rad, c: c})
}
func (r *recordSurface) StrokeCircle(cx, cy, rad, _ float64, c color.Color) {
	r.ops = append(r.ops, drawOp{kind: "strokecircle", x: cx, y: cy, w: rad, c: c})
}
func (r *recordSurface) DrawText(s string, x, y, size float64, c color.Color) {
	r.ops = append(r.ops, drawOp{kind: "text", x: x, y: y, h: size, text: s, c: c})
}
func (r *recordSurface) MeasureText(s string, size float64) (float64, float64) {
	return float64(len(s)) * size / 2, size
}
func (r *recordSurface) Blit(_ Frame, x, y, sx, sy float64) {
	r.ops = append(r.ops, drawOp{kind: "blit", x: x, y: y, w: sx, h: sy})
}

func (r *recordSurface) kinds() []string {
	out := make([]string, len(r.ops))
	for i, op := range r.ops {
		out[i] = op.kind
	}
	return out
}

type fakeFrame struct {
	w, h     int
	releases int
}

func (f *fakeFrame) Size() (int, int) { return f.w, f.h }
func (f *fakeFrame) Release()         { f.releases++ }

type fakeGrabber struct {
	fail   bool
	frames []*fakeFrame
}

func (g *fakeGrabber) Capture(w, h int) (Frame, error) {
	if g.fail {
		return nil, errors.New("out of video memory")
	}
	f := &fakeFrame{w: w, h: h}
	g.frames = append(g.frames, f)
	return f, nil
}

// fakeInput reports the bindings in its set as held.
type fakeInput map[model.Binding]bool

func (f fakeInput) Pressed(b model.Binding) bool { return f[b] }

type fakeBeat struct {
	beats []bool
	polls int
}

func (f *fakeBeat) OnBeat() bool {
	f.polls++
	if len(f.beats) == 0 {
		return false
	}
	b := f.beats[0]
	f.beats = f.beats[1:]
	return b
}

func testRand() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

// quietProfile has every effect switched off.
func quietProfile() model.Profile {
	p := model.DefaultProfile()
	p.EnableTapEffects = false
	p.EnableGlitch = false
	p.EnablePixelation = false
	return p
}

func newTestOverlay(p model.Profile, s model.Skin, in fakeInput, opts Options) *Overlay {
	opts.Input = in
	if opts.Rand == nil {
		opts.Rand = testRand()
	}
	return New(p, s, 800, 600, opts)
}
