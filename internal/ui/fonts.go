package ui

import (
	"bytes"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomonobold"
)

// fontCache hands out faces of one font source, one per pixel size.
type fontCache struct {
	src   *text.GoTextFaceSource
	faces map[float64]*text.GoTextFace
}

func newFontCache(src *text.GoTextFaceSource) *fontCache {
	return &fontCache{src: src, faces: make(map[float64]*text.GoTextFace)}
}

// builtinFontSource parses the bundled Go Mono Bold font.
func builtinFontSource() (*text.GoTextFaceSource, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomonobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("load built-in font: %w", err)
	}
	return src, nil
}

// loadFontSource reads a TTF/OTF file.
func loadFontSource(path string) (*text.GoTextFaceSource, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("load font %s: %w", path, err)
	}
	return src, nil
}

func (f *fontCache) face(size float64) *text.GoTextFace {
	if size < 1 {
		size = 1
	}
	if fc, ok := f.faces[size]; ok {
		return fc
	}
	fc := &text.GoTextFace{Source: f.src, Size: size}
	f.faces[size] = fc
	return fc
}

func (f *fontCache) measure(s string, size float64) (float64, float64) {
	fc := f.face(size)
	return text.Measure(s, fc, fc.Size)
}
