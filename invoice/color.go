package invoice

import "regexp"

var hexColorRe = regexp.MustCompile(`^#([0-9a-fA-F]{3}){1,2}$`)

// IsHexColor accepts `#RGB` and `#RRGGBB`
func IsHexColor(s string) bool {
	return hexColorRe.MatchString(s)
}

// ValidColors reports whether every slot of c is a valid hex color
func ValidColors(c TemplateColors) bool {
	return IsHexColor(c.Primary) && IsHexColor(c.Accent) && IsHexColor(c.Background)
}
