package preview

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"

	"github.com/zeptools/invoicer/invoice"
	"github.com/zeptools/invoicer/layout"
	"github.com/zeptools/invoicer/styles"
	"github.com/zeptools/invoicer/tpl"
)

//go:embed views
var viewsFS embed.FS

const pageKey = "page"

var ErrPreview = errors.New("preview: render failed")

// Renderer turns a record into a standalone HTML page.
// Content comes from the layout package and styling from the descriptor's tokens.
type Renderer struct {
	store *tpl.HTMLTemplateStore
}

// New loads the embedded views, or the .gohtml files under dir when dir is set
func New(dir string) (*Renderer, error) {
	store := tpl.NewHTMLTemplateStore(funcs)
	var err error
	if dir != "" {
		err = store.LoadBaseTemplatesFromDir(dir)
	} else {
		err = store.LoadBaseTemplates(viewsFS, "views")
	}
	if err != nil {
		return nil, err
	}
	if err = store.Combine(pageKey, "page", "invoice"); err != nil {
		return nil, err
	}
	return &Renderer{store: store}, nil
}

var funcs = template.FuncMap{
	// tokens come from fixed tables and colors are validated hex, so they are trusted CSS
	"css": func(s string) template.CSS { return template.CSS(s) },
}

type view struct {
	DocTitle   string
	TemplateID string
	FontFamily string
	Tokens     styles.Tokens
	Colors     invoice.TemplateColors

	Logo      template.URL
	LogoAlign string

	Title   string
	Issuer  []string
	BillTo  []string
	Meta    []layout.LabelRow
	Columns [4]string
	Items   []layout.ItemRow
	Totals  []layout.TotalRow
	Notes   string

	FooterCompany string
	FooterMessage string
}

func (r *Renderer) Render(w io.Writer, rec *invoice.Record, desc styles.Descriptor, symbol string) error {
	t, ok := r.store.Lookup(pageKey)
	if !ok {
		return fmt.Errorf("%w: template %s not loaded", ErrPreview, pageKey)
	}
	if err := t.Execute(w, buildView(rec, desc, symbol)); err != nil {
		return fmt.Errorf("%w: %v", ErrPreview, err)
	}
	return nil
}

func (r *Renderer) RenderString(rec *invoice.Record, desc styles.Descriptor, symbol string) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, rec, desc, symbol); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildView(rec *invoice.Record, desc styles.Descriptor, symbol string) view {
	l := layout.Build(rec, symbol)
	t := invoice.ComputeTotals(rec.LineItems, rec.TaxRate)

	v := view{
		DocTitle:   "Invoice " + l.Meta[0].Value,
		TemplateID: desc.TemplateID,
		FontFamily: desc.FontFamily,
		Tokens:     desc.Tokens,
		Colors:     desc.Colors,

		Title:   l.Title,
		Issuer:  l.Issuer,
		BillTo:  l.BillTo,
		Meta:    l.Meta,
		Columns: l.Columns,
		Items:   l.Items,
		// the preview always carries the tax row
		Totals: []layout.TotalRow{
			{Label: "Subtotal", Value: invoice.FormatMoney(symbol, t.Subtotal)},
			layout.TaxRow(rec.TaxRate, symbol, t.TaxAmount),
			{Label: "Total", Value: invoice.FormatMoney(symbol, t.Total), Grand: true},
		},
		FooterCompany: l.FooterCompany,
		FooterMessage: l.FooterMessage,
	}
	if len(l.Notes) > 0 {
		v.Notes = rec.Notes
	}
	if l.Logo != nil && invoice.IsImageDataURI(l.Logo.DataURI) {
		v.Logo = template.URL(l.Logo.DataURI)
		v.LogoAlign = LogoAlign(l.Logo.Position)
	}
	return v
}

// LogoAlign maps a logo position to a flex justify-content value
func LogoAlign(pos invoice.LogoPosition) string {
	switch pos {
	case invoice.LogoCenter:
		return "center"
	case invoice.LogoRight:
		return "flex-end"
	}
	return "flex-start"
}
