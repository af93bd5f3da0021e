package fpdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/zeptools/invoicer/pdfs"
)

// Writer implements pdfs.Writer[gofpdf.Template] over jung-kurt/gofpdf.
// Text is translated to cp1252 for the core fonts.
type Writer struct {
	pdf       *gofpdf.Fpdf
	paperSize pdfs.PaperSize
	orient    string
	tr        func(string) string
	store     *pdfs.TemplateStore[gofpdf.Template]
	pageTpl   gofpdf.Template
	out       []byte // set once the document is closed
}

var _ pdfs.Writer[gofpdf.Template] = (*Writer)(nil)

// NewWriter starts a document in pt units. orientation is "P" or "L".
func NewWriter(paperSize pdfs.PaperSize, orientation string) *Writer {
	if orientation != "L" {
		orientation = "P"
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: paperSize.Width, Ht: paperSize.Height},
	})
	w := &Writer{
		pdf:       pdf,
		paperSize: paperSize,
		orient:    orientation,
		tr:        pdf.UnicodeTranslatorFromDescriptor(""),
		store:     pdfs.NewTemplateStore[gofpdf.Template](),
	}
	pdf.SetHeaderFunc(func() {
		if w.pageTpl != nil {
			pdf.UseTemplate(w.pageTpl)
		}
	})
	return w
}

// SetInfo fills the document information dictionary
func (w *Writer) SetInfo(title string, author string, creator string) {
	w.pdf.SetTitle(title, true)
	w.pdf.SetAuthor(author, true)
	w.pdf.SetCreator(creator, true)
}

func (w *Writer) PaperSize() pdfs.PaperSize {
	return w.paperSize
}

func (w *Writer) Orientation() string {
	return w.orient
}

func (w *Writer) TemplateStore() *pdfs.TemplateStore[gofpdf.Template] {
	return w.store
}

func (w *Writer) DefineTemplate(storeKey string, paint func(d pdfs.Drawer)) {
	t := w.pdf.CreateTemplate(func(tpl *gofpdf.Tpl) {
		paint(&drawer{pdf: &tpl.Fpdf, tr: w.tr})
	})
	w.store.Store(storeKey, t)
}

func (w *Writer) SetPageTemplate(storeKey string) bool {
	if storeKey == "" {
		w.pageTpl = nil
		return true
	}
	t, ok := w.store.Get(storeKey)
	if !ok {
		return false
	}
	w.pageTpl = t
	return true
}

func (w *Writer) AddBlankPage() {
	w.pdf.AddPage()
}

func (w *Writer) AddTemplatePage(storeKey string) bool {
	t, ok := w.store.Get(storeKey)
	if !ok {
		return false
	}
	w.pdf.AddPage()
	w.pdf.UseTemplate(t)
	return true
}

func (w *Writer) SetMargins(left float64, top float64, right float64, bottom float64) {
	w.pdf.SetMargins(left, top, right)
	w.pdf.SetAutoPageBreak(true, bottom)
}

func (w *Writer) GetXY() (float64, float64) {
	return w.pdf.GetXY()
}

func (w *Writer) SetXY(x float64, y float64) {
	w.pdf.SetXY(x, y)
}

func (w *Writer) Ln(h float64) {
	w.pdf.Ln(h)
}

func (w *Writer) Cell(width float64, h float64, text string, opts pdfs.CellOpts) {
	ln := 0
	if opts.NewLine {
		ln = 1
	}
	align := opts.Align
	if align == "" {
		align = "L"
	}
	w.pdf.CellFormat(width, h, w.text(text), opts.Border, ln, align+"M", opts.Fill, 0, "")
}

func (w *Writer) MultiCell(width float64, h float64, text string, align string) {
	if align == "" {
		align = "L"
	}
	w.pdf.MultiCell(width, h, w.text(text), "", align, false)
}

func (w *Writer) StringWidth(text string) float64 {
	return w.pdf.GetStringWidth(w.text(text))
}

func (w *Writer) Image(name string, data []byte, x float64, width float64, h float64) error {
	imgType, clean, err := normalizeImage(data)
	if err != nil {
		return err
	}
	opts := gofpdf.ImageOptions{ImageType: imgType}
	w.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(clean))
	if w.pdf.Err() {
		return w.pdf.Error()
	}
	w.pdf.ImageOptions(name, x, 0, width, h, true, opts, 0, "")
	return w.pdf.Error()
}

func (w *Writer) PageNo() int {
	return w.pdf.PageNo()
}

func (w *Writer) PageCount() int {
	return w.pdf.PageCount()
}

func (w *Writer) Err() error {
	return w.pdf.Error()
}

// ProduceBytes closes the document on first call; later calls return the same bytes
func (w *Writer) ProduceBytes() ([]byte, error) {
	if w.out != nil {
		return w.out, nil
	}
	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("fpdf: output: %w", err)
	}
	if buf.Len() == 0 {
		return nil, errors.New("fpdf: empty document")
	}
	w.out = buf.Bytes()
	return w.out, nil
}

// WriteTo implements io.WriterTo
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	b, err := w.ProduceBytes()
	if err != nil {
		return 0, err
	}
	n, err := dst.Write(b)
	return int64(n), err
}

func (w *Writer) WriteToFile(filepath string) error {
	f, err := os.Create(filepath)
	if err != nil {
		return err
	}
	if _, err = w.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Drawer methods delegate to the page surface

func (w *Writer) page() *drawer {
	return &drawer{pdf: w.pdf, tr: w.tr}
}

func (w *Writer) SetFont(family string, style string, size float64) {
	w.page().SetFont(family, style, size)
}

func (w *Writer) SetTextColor(hex string) {
	w.page().SetTextColor(hex)
}

func (w *Writer) SetFillColor(hex string) {
	w.page().SetFillColor(hex)
}

func (w *Writer) SetDrawColor(hex string) {
	w.page().SetDrawColor(hex)
}

func (w *Writer) SetLineWidth(width float64) {
	w.page().SetLineWidth(width)
}

func (w *Writer) SetAlpha(alpha float64) {
	w.page().SetAlpha(alpha)
}

func (w *Writer) Text(x float64, y float64, text string) {
	w.page().Text(x, y, text)
}

func (w *Writer) Line(x1 float64, y1 float64, x2 float64, y2 float64) {
	w.page().Line(x1, y1, x2, y2)
}

func (w *Writer) Rect(x float64, y float64, width float64, h float64, style string) {
	w.page().Rect(x, y, width, h, style)
}

func (w *Writer) text(s string) string {
	return w.tr(latinize(s))
}

type drawer struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (d *drawer) SetFont(family string, style string, size float64) {
	d.pdf.SetFont(family, style, size)
}

func (d *drawer) SetTextColor(hex string) {
	c := pdfs.MustHex(hex)
	d.pdf.SetTextColor(c.R, c.G, c.B)
}

func (d *drawer) SetFillColor(hex string) {
	c := pdfs.MustHex(hex)
	d.pdf.SetFillColor(c.R, c.G, c.B)
}

func (d *drawer) SetDrawColor(hex string) {
	c := pdfs.MustHex(hex)
	d.pdf.SetDrawColor(c.R, c.G, c.B)
}

func (d *drawer) SetLineWidth(width float64) {
	d.pdf.SetLineWidth(width)
}

func (d *drawer) SetAlpha(alpha float64) {
	d.pdf.SetAlpha(alpha, "Normal")
}

func (d *drawer) Text(x float64, y float64, text string) {
	d.pdf.Text(x, y, d.tr(latinize(text)))
}

func (d *drawer) Line(x1 float64, y1 float64, x2 float64, y2 float64) {
	d.pdf.Line(x1, y1, x2, y2)
}

func (d *drawer) Rect(x float64, y float64, w float64, h float64, style string) {
	d.pdf.Rect(x, y, w, h, style)
}

// cp1252 has no rupee sign
var latinReplacer = strings.NewReplacer("₹", "Rs.")

func latinize(s string) string {
	return latinReplacer.Replace(s)
}
