package sink

import (
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/stepwall/pkg/core/render"
	"github.com/matzehuels/stepwall/pkg/fonts"
)

type pngSurface struct {
	dc   *gg.Context
	face font.Face
}

// NewPNG creates a raster surface of width x height pixels.
func NewPNG(width, height int) (s render.Surface, err error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, allocationError(width, height, r)
		}
	}()
	return &pngSurface{dc: gg.NewContext(width, height)}, nil
}

func (p *pngSurface) Size() (float64, float64) {
	return float64(p.dc.Width()), float64(p.dc.Height())
}

func (p *pngSurface) FillRect(x, y, w, h float64, c color.Color) {
	p.dc.SetColor(c)
	p.dc.DrawRectangle(x, y, w, h)
	p.dc.Fill()
}

func (p *pngSurface) FillCircle(x, y, r float64, c color.Color) {
	if r <= 0 {
		return
	}
	p.dc.SetColor(c)
	p.dc.DrawCircle(x, y, r)
	p.dc.Fill()
}

func (p *pngSurface) SetFont(size float64, bold bool) error {
	face, err := fonts.Face(size, bold)
	if err != nil {
		return err
	}
	p.closeFace()
	p.face = face
	p.dc.SetFontFace(face)
	return nil
}

func (p *pngSurface) MeasureText(s string) float64 {
	if p.face == nil {
		return 0
	}
	w, _ := p.dc.MeasureString(s)
	return w
}

func (p *pngSurface) DrawText(s string, x, y, ax, ay float64, c color.Color) {
	if p.face == nil {
		return
	}
	p.dc.SetColor(c)
	p.dc.DrawStringAnchored(s, x, y, ax, ay)
}

// Encode writes the surface as PNG and releases the current font face.
func (p *pngSurface) Encode(w io.Writer) error {
	defer p.closeFace()
	return p.dc.EncodePNG(w)
}

func (p *pngSurface) closeFace() {
	if p.face != nil {
		_ = p.face.Close()
		p.face = nil
	}
}
