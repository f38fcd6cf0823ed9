// Package fonts provides the parsed font faces used for raster output.
//
// The Go font family ships inside golang.org/x/image, so rasterizing text
// needs no fonts installed on the host. Fonts are parsed once on first use
// and shared; faces are created per call because a face is not safe for
// concurrent use.
package fonts

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// MinSize is the smallest face size handed out, in pixels. Smaller requests
// (degenerate canvases) are clamped to it.
const MinSize = 1.0

// FontFamily names the embedded family.
const FontFamily = "Go"

type parsedFont struct {
	once sync.Once
	data []byte
	font *opentype.Font
	err  error
}

func (p *parsedFont) get() (*opentype.Font, error) {
	p.once.Do(func() {
		p.font, p.err = opentype.Parse(p.data)
	})
	return p.font, p.err
}

var (
	regular = &parsedFont{data: goregular.TTF}
	bold    = &parsedFont{data: gobold.TTF}
)

// Face returns a new face of the given pixel size. The caller owns the face
// and should Close it when done.
func Face(size float64, isBold bool) (font.Face, error) {
	p := regular
	if isBold {
		p = bold
	}
	f, err := p.get()
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    max(size, MinSize),
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
