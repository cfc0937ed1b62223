package gofpdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/sirupsen/logrus"

	"coalo/go_backend/internal/domain/quote"
	"coalo/go_backend/internal/domain/quote/layout"
	"coalo/go_backend/internal/domain/quote/pdf"
)

const fontFamily = "Helvetica"

type Generator struct {
	opts pdf.Options
	log  logrus.FieldLogger
}

var (
	_ pdf.Generator  = (*Generator)(nil)
	_ quote.Renderer = (*Generator)(nil)
)

func New(opts pdf.Options, log logrus.FieldLogger) *Generator {
	if opts.Frame.PageWidth == 0 {
		opts.Frame = layout.A4()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Generator{opts: opts, log: log}
}

func (g *Generator) Generate(q quote.Quote) ([]byte, error) {
	f := g.opts.Frame
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: f.PageWidth, Ht: f.PageHeight},
	})
	doc.SetTitle("Quotation "+q.Number, true)
	doc.SetAuthor(q.Issuer.Name, true)
	doc.SetCreationDate(q.CreatedAt)
	doc.SetMargins(f.Margins.Left, f.Margins.Top, f.Margins.Right)
	doc.SetAutoPageBreak(false, f.Margins.Bottom)

	r := &pageRenderer{
		doc:    doc,
		frame:  f,
		tr:     doc.UnicodeTranslatorFromDescriptor(""),
		images: map[string]bool{},
		log:    g.log.WithField("quote_number", q.Number),
	}

	pages := layout.Paginate(f, pdf.BuildBlocks(q, r, g.opts))
	for _, p := range pages {
		doc.AddPage()
		for _, pl := range p.Lines {
			r.drawLine(pl)
		}
		r.pageFooter(q.Number, p.Number, len(pages))
	}

	if err := doc.Error(); err != nil {
		g.log.WithError(err).Error("quote pdf: layout failed")
		return nil, err
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		g.log.WithError(err).Error("quote pdf: output failed")
		return nil, err
	}
	return buf.Bytes(), nil
}

type pageRenderer struct {
	doc    *gofpdf.Fpdf
	frame  layout.Frame
	tr     func(string) string
	images map[string]bool
	log    logrus.FieldLogger
}

// TextWidth makes the renderer the layout measurer, so wrapping uses the
// real font metrics.
func (r *pageRenderer) TextWidth(text string, st layout.Style) float64 {
	r.setFont(st)
	return r.doc.GetStringWidth(r.tr(foldText(text)))
}

func (r *pageRenderer) setFont(st layout.Style) {
	style := ""
	if st.Bold {
		style = "B"
	}
	size := st.Size
	if size == 0 {
		size = 10
	}
	r.doc.SetFont(fontFamily, style, size)
}

func (r *pageRenderer) drawLine(pl layout.Placed) {
	left := r.frame.Margins.Left
	minX, maxX := -1.0, -1.0
	for _, s := range pl.Line.Spans {
		x := left + s.X
		if minX < 0 || x < minX {
			minX = x
		}
		if x+s.Width > maxX {
			maxX = x + s.Width
		}
		if s.Image != "" && r.drawImage(s, x, pl.Y, pl.Line.Height) {
			continue
		}
		if s.Text == "" {
			continue
		}
		r.setFont(s.Style)
		align := "L"
		if s.Align == layout.AlignRight {
			align = "R"
		}
		r.doc.SetXY(x, pl.Y)
		r.doc.CellFormat(s.Width, pl.Line.Height, r.tr(foldText(s.Text)), "", 0, align+"M", false, 0, "")
	}
	if pl.Line.RuleBelow && minX >= 0 {
		y := pl.Y + pl.Line.Height
		r.doc.SetDrawColor(170, 170, 170)
		r.doc.SetLineWidth(0.2)
		r.doc.Line(minX, y, maxX, y)
	}
}

// drawImage reports whether the asset was drawn. A missing or unreadable
// asset is logged as a RenderError and the caller falls back to text.
func (r *pageRenderer) drawImage(s layout.Span, x, y, h float64) bool {
	ok, seen := r.images[s.Image]
	if !seen {
		ok = r.registerImage(s.Image)
		r.images[s.Image] = ok
	}
	if !ok {
		return false
	}
	opts := gofpdf.ImageOptions{ImageType: imageType(s.Image), ReadDpi: true}
	r.doc.ImageOptions(s.Image, x, y+1, 0, h-2, false, opts, 0, "")
	return true
}

func (r *pageRenderer) registerImage(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		r.log.WithError(&pdf.RenderError{Asset: path, Err: err}).Warn("quote pdf: logo unavailable, using placeholder")
		return false
	}
	opts := gofpdf.ImageOptions{ImageType: imageType(path), ReadDpi: true}
	r.doc.RegisterImageOptionsReader(path, opts, bytes.NewReader(data))
	if err := r.doc.Error(); err != nil {
		r.doc.ClearError()
		r.log.WithError(&pdf.RenderError{Asset: path, Err: err}).Warn("quote pdf: logo unreadable, using placeholder")
		return false
	}
	return true
}

func (r *pageRenderer) pageFooter(number string, page, total int) {
	r.setFont(layout.Style{Size: 7.5})
	r.doc.SetTextColor(120, 120, 120)
	y := r.frame.PageHeight - r.frame.Margins.Bottom + 4
	r.doc.SetXY(r.frame.Margins.Left, y)
	r.doc.CellFormat(r.frame.ContentWidth(), 4, fmt.Sprintf("%s - Page %d of %d", number, page, total), "", 0, "R", false, 0, "")
	r.doc.SetTextColor(0, 0, 0)
}

func imageType(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "jpeg" {
		return "jpg"
	}
	return ext
}
