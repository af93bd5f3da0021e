package pdfs

import (
	"fmt"
	"strconv"
	"strings"
)

type RGB struct {
	R, G, B int
}

// ParseHex accepts "#RRGGBB" and "#RGB"
func ParseHex(hex string) (RGB, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("pdfs: bad hex color %q", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("pdfs: bad hex color %q: %w", hex, err)
	}
	return RGB{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, nil
}

// MustHex falls back to black on bad input; drawing code never fails on a color
func MustHex(hex string) RGB {
	c, err := ParseHex(hex)
	if err != nil {
		return RGB{}
	}
	return c
}
