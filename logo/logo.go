package logo

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxBytes is the largest accepted upload, 2 MiB
const MaxBytes = 2 << 20

var (
	ErrTooLarge = errors.New("logo: file larger than 2MB")
	ErrNotImage = errors.New("logo: not an image")
	ErrEmpty    = errors.New("logo: empty file")
)

// Ingest reads an upload and returns it as "data:<mime>;base64,<payload>".
// The content type is sniffed; a declared image/* type is used only when sniffing finds nothing more specific.
func Ingest(r io.Reader, declared string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxBytes+1))
	if err != nil {
		return "", fmt.Errorf("logo: read upload: %w", err)
	}
	return IngestBytes(data, declared)
}

func IngestBytes(data []byte, declared string) (string, error) {
	if len(data) > MaxBytes {
		return "", ErrTooLarge
	}
	if len(data) == 0 {
		return "", ErrEmpty
	}
	typ, err := detect(data, declared)
	if err != nil {
		return "", err
	}
	return "data:" + typ + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func detect(data []byte, declared string) (string, error) {
	sniffed := mimetype.Detect(data)
	if isImage(sniffed.String()) {
		return baseType(sniffed.String()), nil
	}
	// text/plain and octet-stream mean "unknown": trust the declared type for formats the sniffer misses
	if d := baseType(declared); isImage(d) && (sniffed.Is("application/octet-stream") || sniffed.Is("text/plain")) {
		return d, nil
	}
	return "", fmt.Errorf("%w: detected %s", ErrNotImage, sniffed.String())
}

func isImage(t string) bool {
	return strings.HasPrefix(t, "image/")
}

func baseType(t string) string {
	mt, _, err := mime.ParseMediaType(t)
	if err != nil {
		return ""
	}
	return mt
}
