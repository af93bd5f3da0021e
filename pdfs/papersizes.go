package pdfs

type PaperSize struct {
	Name   string
	Width  float64 // in `pt` (1" = 72pts)
	Height float64 // in `pt`
}

var (
	LetterSize = PaperSize{Name: "Letter", Width: 612, Height: 792}         // 8.5" x 11"
	A4Size     = PaperSize{Name: "A4", Width: 595.27559, Height: 841.88976} // 210mm x 297mm
)

// Landscape swaps the sides
func (p PaperSize) Landscape() PaperSize {
	return PaperSize{Name: p.Name, Width: p.Height, Height: p.Width}
}

// PaperSizeByName resolves a config value. Unknown names get A4.
func PaperSizeByName(name string) PaperSize {
	switch name {
	case "Letter", "letter":
		return LetterSize
	}
	return A4Size
}
