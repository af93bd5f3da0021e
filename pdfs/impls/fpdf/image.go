package fpdf

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
)

var ErrUnsupportedImage = errors.New("fpdf: unsupported image")

// normalizeImage checks the bytes decode before gofpdf sees them; a parse
// failure inside gofpdf poisons the whole document. JPEGs pass through,
// everything else is re-encoded as a plain 8-bit PNG.
func normalizeImage(data []byte) (imgType string, out []byte, err error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if format == "jpeg" {
		return "JPG", data, nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	b := img.Bounds()
	rgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			rgba.Set(x-b.Min.X, y-b.Min.Y, img.At(x, y))
		}
	}
	var buf bytes.Buffer
	if err = png.Encode(&buf, rgba); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	return "PNG", buf.Bytes(), nil
}
