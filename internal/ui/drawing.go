package ui

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/ingyamilmolinar/keyoverlay/internal/overlay"
)

// Drawing primitives are variables so tests can capture draw calls.
var (
	drawFilledRect = func(dst *ebiten.Image, x, y, w, h float64, c color.Color) {
		vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), c, true)
	}
	drawStrokeRect = func(dst *ebiten.Image, x, y, w, h, thickness float64, c color.Color) {
		vector.StrokeRect(dst, float32(x), float32(y), float32(w), float32(h), float32(thickness), c, true)
	}
	drawFilledCircle = func(dst *ebiten.Image, cx, cy, r float64, c color.Color) {
		vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(r), c, true)
	}
	drawStrokeCircle = func(dst *ebiten.Image, cx, cy, r, thickness float64, c color.Color) {
		vector.StrokeCircle(dst, float32(cx), float32(cy), float32(r), float32(thickness), c, true)
	}
)

// imageSurface draws onto an ebiten image.
type imageSurface struct {
	dst   *ebiten.Image
	fonts *fontCache
}

var _ overlay.Surface = (*imageSurface)(nil)

func (s *imageSurface) Size() (int, int) {
	b := s.dst.Bounds()
	return b.Dx(), b.Dy()
}

func (s *imageSurface) FillRect(x, y, w, h float64, c color.Color) {
	drawFilledRect(s.dst, x, y, w, h, c)
}

func (s *imageSurface) StrokeRect(x, y, w, h, thickness float64, c color.Color) {
	drawStrokeRect(s.dst, x, y, w, h, thickness, c)
}

func (s *imageSurface) FillCircle(cx, cy, r float64, c color.Color) {
	drawFilledCircle(s.dst, cx, cy, r, c)
}

func (s *imageSurface) StrokeCircle(cx, cy, r, thickness float64, c color.Color) {
	drawStrokeCircle(s.dst, cx, cy, r, thickness, c)
}

func (s *imageSurface) DrawText(str string, x, y, size float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(s.dst, str, s.fonts.face(size), op)
}

func (s *imageSurface) MeasureText(str string, size float64) (float64, float64) {
	return s.fonts.measure(str, size)
}

func (s *imageSurface) Blit(f overlay.Frame, x, y, sx, sy float64) {
	fr, ok := f.(*imageFrame)
	if !ok || fr.img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterNearest}
	op.GeoM.Scale(sx, sy)
	op.GeoM.Translate(x, y)
	s.dst.DrawImage(fr.img, op)
}

// imageFrame is a GPU-side snapshot owned by a pixelation effect.
type imageFrame struct {
	img *ebiten.Image
}

func (f *imageFrame) Size() (int, int) {
	b := f.img.Bounds()
	return b.Dx(), b.Dy()
}

func (f *imageFrame) Release() {
	f.img.Deallocate()
}

var errNoFrame = errors.New("nothing rendered yet")

// canvasGrabber downsamples the last completed canvas.
type canvasGrabber struct {
	canvas func() *ebiten.Image
}

func (g canvasGrabber) Capture(w, h int) (overlay.Frame, error) {
	src := g.canvas()
	if src == nil {
		return nil, errNoFrame
	}
	if w <= 0 || h <= 0 {
		return nil, errors.New("empty capture size")
	}
	b := src.Bounds()
	small := ebiten.NewImage(w, h)
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
	small.DrawImage(src, op)
	return &imageFrame{img: small}, nil
}
