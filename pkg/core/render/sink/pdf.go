package sink

import (
	"image/color"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/matzehuels/stepwall/pkg/core/render"
	"github.com/matzehuels/stepwall/pkg/errors"
)

// pdfEpoch is stamped as the creation date of every document.
var pdfEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

const (
	pdfFontFamily = "Helvetica"

	// pdfCapHeight approximates Helvetica's cap height as a fraction of the
	// font size; DrawText anchors vertically on it.
	pdfCapHeight = 0.718
)

type pdfSurface struct {
	pdf      *fpdf.Fpdf
	width    float64
	height   float64
	fontSize float64
	tr       func(string) string
}

// NewPDF creates a single-page vector surface of width x height points.
func NewPDF(width, height int) (s render.Surface, err error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, allocationError(width, height, r)
		}
	}()

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: float64(width), Ht: float64(height)},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(pdfEpoch)
	pdf.SetModificationDate(pdfEpoch)
	pdf.SetCatalogSort(true)
	pdf.SetCreator("stepwall", true)
	pdf.AddPage()
	if err := pdf.Error(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSurfaceAllocation, err, "create %dx%d page", width, height)
	}

	return &pdfSurface{
		pdf:    pdf,
		width:  float64(width),
		height: float64(height),
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
	}, nil
}

func (p *pdfSurface) Size() (float64, float64) {
	return p.width, p.height
}

func (p *pdfSurface) FillRect(x, y, w, h float64, c color.Color) {
	p.pdf.SetFillColor(rgb8(c))
	p.pdf.Rect(x, y, w, h, "F")
}

func (p *pdfSurface) FillCircle(x, y, r float64, c color.Color) {
	if r <= 0 {
		return
	}
	p.pdf.SetFillColor(rgb8(c))
	p.pdf.Circle(x, y, r, "F")
}

func (p *pdfSurface) SetFont(size float64, bold bool) error {
	style := ""
	if bold {
		style = "B"
	}
	p.fontSize = size
	p.pdf.SetFont(pdfFontFamily, style, size)
	return p.pdf.Error()
}

func (p *pdfSurface) MeasureText(s string) float64 {
	if p.fontSize == 0 {
		return 0
	}
	return p.pdf.GetStringWidth(p.tr(s))
}

// DrawText positions text by its advance width and cap height; fpdf places
// text on the baseline.
func (p *pdfSurface) DrawText(s string, x, y, ax, ay float64, c color.Color) {
	if p.fontSize == 0 {
		return
	}
	s = p.tr(s)
	w := p.pdf.GetStringWidth(s)
	capHeight := p.fontSize * pdfCapHeight
	p.pdf.SetTextColor(rgb8(c))
	p.pdf.Text(x-w*ax, y-capHeight*ay+capHeight, s)
}

func (p *pdfSurface) Encode(w io.Writer) error {
	return p.pdf.Output(w)
}
