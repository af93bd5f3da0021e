package document

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/zeptools/invoicer/invoice"
	"github.com/zeptools/invoicer/layout"
	"github.com/zeptools/invoicer/pdfs"
	"github.com/zeptools/invoicer/pdfs/impls/fpdf"
	"github.com/zeptools/invoicer/styles"
)

var ErrRender = errors.New("document: render failed")

// Artifact is a finished export
type Artifact struct {
	FileName string
	Bytes    []byte
	Pages    int
}

const (
	margin      = 40.0
	bodySize    = 10.0
	lineH       = 15.0
	rowH        = 22.0
	logoWidth   = 120.0
	totalsWidth = 250.0
	metaLabelW  = 80.0
	metaWidth   = 200.0
	qtyW        = 60.0
	moneyW      = 80.0

	frameKey = "frame"
)

// Render exports rec as an A4 PDF. The record is only read.
func Render(ctx context.Context, rec *invoice.Record, desc styles.Descriptor, symbol string) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c := layout.Build(rec, symbol)

	w := fpdf.NewWriter(pdfs.A4Size, "P")
	w.SetInfo(c.FileName, c.FooterCompany, "invoicer")
	if err := Paint[gofpdf.Template](w, c, desc.PDF); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := w.ProduceBytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return &Artifact{FileName: c.FileName, Bytes: b, Pages: w.PageCount()}, nil
}

// Paint draws c onto any pdfs.Writer with the template's PDF parameters, starting a new page
func Paint[T any](w pdfs.Writer[T], c *layout.Content, st styles.PDF) error {
	p := painter[T]{w: w, l: c, st: st}
	p.setup()
	p.header()
	p.parties()
	p.items()
	p.totals()
	p.notes()
	p.footer()
	return w.Err()
}

type painter[T any] struct {
	w  pdfs.Writer[T]
	l  *layout.Content
	st styles.PDF
}

func (p *painter[T]) contentWidth() float64 {
	return p.w.PaperSize().Width - 2*margin
}

func (p *painter[T]) pageBottom() float64 {
	return p.w.PaperSize().Height - margin
}

func (p *painter[T]) font(style string, size float64) {
	p.w.SetFont(p.st.FontFamily, style, size)
}

// ensure starts a new page unless h more points fit above the bottom margin
func (p *painter[T]) ensure(h float64) {
	if _, y := p.w.GetXY(); y+h > p.pageBottom() {
		p.w.AddBlankPage()
	}
}

func (p *painter[T]) rule(y float64, color string, width float64) {
	p.w.SetDrawColor(color)
	p.w.SetLineWidth(width)
	p.w.Line(margin, y, margin+p.contentWidth(), y)
}

func (p *painter[T]) setup() {
	size := p.w.PaperSize()
	st := p.st
	p.w.DefineTemplate(frameKey, func(d pdfs.Drawer) {
		if st.FrameRule > 0 {
			d.SetFillColor(st.Colors.Primary)
			d.Rect(0, 0, st.FrameRule, size.Height, "F")
		}
		if st.FrameBox {
			d.SetDrawColor(st.Colors.Border)
			d.SetLineWidth(0.75)
			d.Rect(margin/2, margin/2, size.Width-margin, size.Height-margin, "D")
		}
	})
	p.w.SetPageTemplate(frameKey)
	p.w.SetMargins(margin, margin, margin, margin)
	p.w.AddBlankPage()
	p.font("", bodySize)
	p.w.SetTextColor(st.Colors.Text)
}

func (p *painter[T]) header() {
	cw := p.contentWidth()
	if p.l.Logo != nil {
		p.logo(cw)
	}

	_, top := p.w.GetXY()
	p.font(p.st.TitleStyle, p.st.TitleSize)
	p.w.SetTextColor(p.st.Colors.Primary)
	p.w.Cell(cw/2, p.st.TitleSize*1.3, p.l.Title, pdfs.CellOpts{NewLine: true})
	_, leftBottom := p.w.GetXY()

	y := top
	for i, line := range p.l.Issuer {
		if i == 0 {
			p.font("B", 14)
			p.w.SetTextColor(p.st.Colors.Text)
		} else {
			p.font("", 12)
			p.w.SetTextColor(p.st.Colors.Muted)
		}
		p.w.SetXY(margin+cw/2, y)
		p.w.Cell(cw/2, lineH+2, line, pdfs.CellOpts{Align: "R"})
		y += lineH + 2
	}

	bottom := max(leftBottom, y) + 10
	p.rule(bottom, p.st.Colors.Border, 1)
	p.w.SetXY(margin, bottom+20)
	p.font("", bodySize)
	p.w.SetTextColor(p.st.Colors.Text)
}

func (p *painter[T]) logo(cw float64) {
	data, err := decodeDataURI(p.l.Logo.DataURI)
	if err == nil {
		x := margin
		switch p.l.Logo.Position {
		case invoice.LogoCenter:
			x = margin + (cw-logoWidth)/2
		case invoice.LogoRight:
			x = margin + cw - logoWidth
		}
		err = p.w.Image("logo", data, x, logoWidth, 0)
	}
	if err != nil {
		log.Printf("[WARN][PDF] logo omitted: %v", err)
		return
	}
	p.w.Ln(10)
}

func (p *painter[T]) parties() {
	cw := p.contentWidth()
	_, top := p.w.GetXY()

	p.font("B", bodySize)
	p.w.Cell(cw-metaWidth, lineH+3, "Bill To:", pdfs.CellOpts{NewLine: true})
	p.font("", bodySize)
	for _, line := range p.l.BillTo {
		p.w.Cell(cw-metaWidth, lineH, line, pdfs.CellOpts{NewLine: true})
	}
	_, leftBottom := p.w.GetXY()

	y := top
	x := margin + cw - metaWidth
	for _, row := range p.l.Meta {
		p.w.SetXY(x, y)
		p.font("B", bodySize)
		p.w.Cell(metaLabelW, lineH, row.Label+":", pdfs.CellOpts{})
		p.font("", bodySize)
		p.w.Cell(metaWidth-metaLabelW, lineH, row.Value, pdfs.CellOpts{})
		y += lineH + 4
	}
	p.w.SetXY(margin, max(leftBottom, y)+30)
}

func (p *painter[T]) columnWidths() [4]float64 {
	return [4]float64{p.contentWidth() - qtyW - 2*moneyW, qtyW, moneyW, moneyW}
}

func (p *painter[T]) tableHeader() {
	widths := p.columnWidths()
	_, y := p.w.GetXY()
	p.w.SetFillColor(p.st.Colors.Primary)
	p.w.SetAlpha(p.st.HeaderTint)
	p.w.Rect(margin, y, p.contentWidth(), rowH, "F")
	p.w.SetAlpha(1)

	p.font("B", bodySize)
	p.w.SetTextColor(p.st.Colors.Primary)
	for i, title := range p.l.Columns {
		align := "R"
		if i == 0 {
			align = "L"
		}
		p.w.Cell(widths[i], rowH, title, pdfs.CellOpts{Align: align, NewLine: i == len(widths)-1})
	}
	p.w.Ln(4)
	p.font("", bodySize)
	p.w.SetTextColor(p.st.Colors.Text)
}

func (p *painter[T]) items() {
	widths := p.columnWidths()
	p.ensure(2 * rowH)
	p.tableHeader()

	p.w.SetDrawColor(p.st.Colors.Border)
	p.w.SetLineWidth(0.75)
	for _, item := range p.l.Items {
		if _, y := p.w.GetXY(); y+rowH > p.pageBottom() {
			p.w.AddBlankPage()
			p.tableHeader()
			p.w.SetDrawColor(p.st.Colors.Border)
			p.w.SetLineWidth(0.75)
		}
		cells := [4]string{p.fit(item.Description, widths[0]-4), item.Quantity, item.Rate, item.Amount}
		for i, text := range cells {
			align := "R"
			if i == 0 {
				align = "L"
			}
			p.w.Cell(widths[i], rowH, text, pdfs.CellOpts{Align: align, Border: "B", NewLine: i == len(cells)-1})
		}
	}
	p.w.Ln(20)
}

// fit trims text with an ellipsis so it stays inside one table cell
func (p *painter[T]) fit(text string, width float64) string {
	if p.w.StringWidth(text) <= width {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && p.w.StringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

func (p *painter[T]) totals() {
	rows := p.l.Totals
	p.ensure(float64(len(rows))*rowH + 12)

	x := margin + p.contentWidth() - totalsWidth
	_, top := p.w.GetXY()
	y := top
	for _, row := range rows {
		if row.Grand {
			y += 4
			p.w.SetDrawColor(p.st.Colors.Primary)
			p.w.SetLineWidth(p.st.TotalRuleWide)
			p.w.Line(x, y, x+totalsWidth, y)
			y += 4
			p.font("B", bodySize+1)
		} else {
			p.font("", bodySize)
		}
		p.w.SetXY(x, y)
		p.w.Cell(totalsWidth-100, rowH, row.Label+":", pdfs.CellOpts{})
		p.w.Cell(100, rowH, row.Value, pdfs.CellOpts{Align: "R"})
		y += rowH
	}
	if p.st.TotalsBox {
		p.w.SetDrawColor(p.st.Colors.Border)
		p.w.SetLineWidth(0.75)
		p.w.Rect(x-8, top-6, totalsWidth+16, y-top+12, "D")
	}
	p.w.SetXY(margin, y)
	p.font("", bodySize)
}

func (p *painter[T]) notes() {
	if len(p.l.Notes) == 0 {
		return
	}
	p.w.Ln(30)
	p.ensure(3 * lineH)
	_, y := p.w.GetXY()
	p.rule(y, p.st.Colors.Border, 1)
	p.w.SetXY(margin, y+15)

	p.font("B", bodySize)
	p.w.SetTextColor(p.st.Colors.Text)
	p.w.Cell(p.contentWidth(), lineH+4, "Notes:", pdfs.CellOpts{NewLine: true})
	p.font("", bodySize)
	p.w.SetTextColor(p.st.Colors.Muted)
	p.w.MultiCell(p.contentWidth(), lineH, strings.Join(p.l.Notes, "\n"), "L")
	p.w.SetTextColor(p.st.Colors.Text)
}

func (p *painter[T]) footer() {
	p.w.Ln(40)
	p.ensure(3 * lineH)
	_, y := p.w.GetXY()
	p.rule(y, p.st.Colors.Border, 1)
	p.w.SetXY(margin, y+15)

	p.w.SetTextColor(p.st.Colors.Muted)
	p.font("", bodySize)
	p.w.Cell(p.contentWidth(), lineH, p.l.FooterCompany, pdfs.CellOpts{Align: "C", NewLine: true})
	p.font("", 8)
	p.w.Cell(p.contentWidth(), lineH, p.l.FooterMessage, pdfs.CellOpts{Align: "C", NewLine: true})
}

// decodeDataURI accepts "data:<mime>;base64,<payload>"
func decodeDataURI(uri string) ([]byte, error) {
	head, payload, ok := strings.Cut(uri, ",")
	if !ok || !strings.HasPrefix(head, "data:") || !strings.HasSuffix(head, ";base64") {
		return nil, errors.New("logo is not a base64 data URI")
	}
	return base64.StdEncoding.DecodeString(payload)
}
