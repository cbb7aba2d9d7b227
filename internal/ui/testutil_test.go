package ui

import (
	"image"
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/keyoverlay/core/model"
	"github.com/ingyamilmolinar/keyoverlay/internal/overlay"
)

type drawOp struct {
	kind       string
	x, y, w, h float64
	text       string
	c          color.Color
}

// recordSurface is a Surface that only remembers what was drawn.
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
func (r *recordSurface) Blit(_ overlay.Frame, x, y, sx, sy float64) {
	r.ops = append(r.ops, drawOp{kind: "blit", x: x, y: y, w: sx, h: sy})
}

func (r *recordSurface) texts() []string {
	var out []string
	for _, op := range r.ops {
		if op.kind == "text" {
			out = append(out, op.text)
		}
	}
	return out
}

type fakeInput map[model.Binding]bool

func (f fakeInput) Pressed(b model.Binding) bool { return f[b] }

// pointer is the simulated mouse and keyboard state read by the ui package.
type pointer struct {
	x, y int
	down bool
	just map[ebiten.Key]bool
}

// stubInput routes ui input reads to ptr for the rest of the test.
func stubInput(t *testing.T) *pointer {
	t.Helper()
	ptr := &pointer{just: map[ebiten.Key]bool{}}
	restore := SetInputForTest(
		func() (int, int) { return ptr.x, ptr.y },
		func(b ebiten.MouseButton) bool { return b == ebiten.MouseButtonLeft && ptr.down },
		func(k ebiten.Key) bool { return ptr.just[k] },
	)
	oldTPS := setTPS
	setTPS = func(int) {}
	t.Cleanup(func() {
		restore()
		setTPS = oldTPS
	})
	return ptr
}

func center(r image.Rectangle) (int, int) {
	return (r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2
}

// click presses the left button over the centre of r for one frame and
// releases it on the next.
func click(p *Panel, ptr *pointer, r image.Rectangle) {
	clickAt(p, ptr, center(r))
}

func clickAt(p *Panel, ptr *pointer, x, y int) {
	ptr.x, ptr.y, ptr.down = x, y, true
	p.Update()
	ptr.down = false
	p.Update()
}

func findControl(t *testing.T, p *Panel, caption string) *Control {
	t.Helper()
	for _, rows := range [][]row{p.left, p.right} {
		for _, r := range rows {
			if r.caption == caption {
				return r.ctrl
			}
		}
	}
	t.Fatalf("no control %q", caption)
	return nil
}
