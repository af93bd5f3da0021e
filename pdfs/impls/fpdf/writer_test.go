package fpdf

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeptools/invoicer/pdfs"
)

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	img.Set(1, 1, color.NRGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestWriterProducesPDF(t *testing.T) {
	w := NewWriter(pdfs.A4Size, "P")
	w.SetMargins(40, 40, 40, 40)
	w.DefineTemplate("frame", func(d pdfs.Drawer) {
		d.SetFillColor("#3b82f6")
		d.Rect(0, 0, 4, pdfs.A4Size.Height, "F")
	})
	require.True(t, w.SetPageTemplate("frame"))
	assert.False(t, w.SetPageTemplate("missing"))
	w.AddBlankPage()
	w.SetFont("Helvetica", "", 10)
	w.Cell(100, 14, "Total: ₹10.00 €5", pdfs.CellOpts{NewLine: true})
	require.NoError(t, w.Image("logo", tinyPNG(t), 40, 120, 0))

	_, y := w.GetXY()
	assert.Greater(t, y, 80.0, "image flows the cursor down")

	b, err := w.ProduceBytes()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF-")))
	assert.Equal(t, 1, w.PageCount())

	again, err := w.ProduceBytes()
	require.NoError(t, err)
	assert.Equal(t, b, again)

	var out bytes.Buffer
	n, err := w.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, int64(len(b)), n)
}

func TestWriterAutoPageBreak(t *testing.T) {
	w := NewWriter(pdfs.A4Size, "P")
	w.SetMargins(40, 40, 40, 40)
	w.AddBlankPage()
	w.SetFont("Helvetica", "", 10)
	for i := 0; i < 120; i++ {
		w.Cell(0, 15, "row", pdfs.CellOpts{NewLine: true})
	}
	assert.Greater(t, w.PageCount(), 1)
	assert.NoError(t, w.Err())
}

func TestImageRejectsGarbage(t *testing.T) {
	w := NewWriter(pdfs.A4Size, "P")
	w.AddBlankPage()
	err := w.Image("x", []byte("<svg/>"), 0, 10, 0)
	assert.ErrorIs(t, err, ErrUnsupportedImage)
	assert.NoError(t, w.Err(), "rejected image must not poison the document")
}

func TestLatinize(t *testing.T) {
	assert.Equal(t, "Rs.12.00", latinize("₹12.00"))
	assert.Equal(t, "C$1", latinize("C$1"))
}
