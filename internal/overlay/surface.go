package overlay

import (
	"image/color"

	"github.com/ingyamilmolinar/keyoverlay/core/model"
)

// Surface is the drawing target of a render pass. Every call completes
// synchronously. Text coordinates name the top-left corner of the line box.
type Surface interface {
	Size() (w, h int)
	FillRect(x, y, w, h float64, c color.Color)
	StrokeRect(x, y, w, h, thickness float64, c color.Color)
	FillCircle(cx, cy, r float64, c color.Color)
	StrokeCircle(cx, cy, r, thickness float64, c color.Color)
	DrawText(s string, x, y, size float64, c color.Color)
	MeasureText(s string, size float64) (w, h float64)
	// Blit draws f with its top-left corner at (x, y), scaled by (sx, sy)
	// using nearest-neighbour sampling.
	Blit(f Frame, x, y, sx, sy float64)
}

// Frame is a captured copy of the rendered output. Release frees the
// underlying buffer and must be called exactly once.
type Frame interface {
	Size() (w, h int)
	Release()
}

// FrameGrabber captures the most recently rendered frame downsampled into a
// w×h buffer.
type FrameGrabber interface {
	Capture(w, h int) (Frame, error)
}

// InputSource answers instantaneous physical state queries.
type InputSource interface {
	Pressed(b model.Binding) bool
}
