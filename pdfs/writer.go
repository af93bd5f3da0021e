package pdfs

import "io"

// Drawer is the drawing surface shared by pages and page templates.
// Colors are hex strings ("#RRGGBB" or "#RGB"); coordinates are in pt from the top-left.
type Drawer interface {
	SetFont(family string, style string, size float64)
	SetTextColor(hex string)
	SetFillColor(hex string)
	SetDrawColor(hex string)
	SetLineWidth(width float64)
	SetAlpha(alpha float64)

	Text(x float64, y float64, text string)
	Line(x1 float64, y1 float64, x2 float64, y2 float64)
	Rect(x float64, y float64, w float64, h float64, style string) // style: "D", "F" or "FD"
}

// Writer is a minimal, stream-style, append-only PDF writer. No page navigation
// T: Concrete Template Type -> depends on each implementation
type Writer[T any] interface {
	Drawer

	PaperSize() PaperSize
	Orientation() string

	TemplateStore() *TemplateStore[T]
	DefineTemplate(storeKey string, paint func(d Drawer))

	// SetPageTemplate stamps the stored template on every page added afterwards,
	// automatic page breaks included. Empty key clears it.
	SetPageTemplate(storeKey string) bool

	AddBlankPage()
	AddTemplatePage(storeKey string) bool

	// Flow layout: a cursor moves through cells, breaking pages at the bottom margin
	SetMargins(left float64, top float64, right float64, bottom float64)
	GetXY() (float64, float64)
	SetXY(x float64, y float64)
	Ln(h float64)
	Cell(w float64, h float64, text string, opts CellOpts)
	MultiCell(w float64, h float64, text string, align string)
	StringWidth(text string) float64

	// Image places a JPEG, PNG or GIF at x on the cursor line and moves the cursor below it.
	// h == 0 keeps the aspect ratio.
	Image(name string, data []byte, x float64, w float64, h float64) error

	PageNo() int
	PageCount() int
	Err() error

	WriteTo(w io.Writer) (int64, error)
	WriteToFile(filepath string) error
	ProduceBytes() ([]byte, error)
}

type CellOpts struct {
	Align   string // "L", "C", "R"
	Border  string // "", "1", or any of "LTRB"
	Fill    bool
	NewLine bool // move the cursor below the cell instead of to its right
}
