package templates

// Colors is a color triple in `#RRGGBB` or `#RGB` form
type Colors struct {
	Primary    string `json:"primary" validate:"required,hexrgb"`
	Accent     string `json:"accent" validate:"required,hexrgb"`
	Background string `json:"background" validate:"required,hexrgb"`
}

// Style-variant tags. Each template row names one tag per axis.
// The style resolver joins them against its token lookup tables.

type Frame string

const (
	FrameAccentBar Frame = "accent-bar" // colored bar on the left edge
	FrameBordered  Frame = "bordered"   // thin full border, square corners
	FrameFlat      Frame = "flat"       // no border
	FrameGradient  Frame = "gradient"   // tinted gradient background
)

type Heading string

const (
	HeadingBold     Heading = "bold-xl"
	HeadingSerif    Heading = "serif"
	HeadingCompact  Heading = "compact"
	HeadingGradient Heading = "gradient"
)

type TotalsFrame string

const (
	TotalsPlain TotalsFrame = "plain"
	TotalsRuled TotalsFrame = "ruled" // top rule above the whole block
	TotalsBoxed TotalsFrame = "boxed" // thin rule, compact grand total
	TotalsPanel TotalsFrame = "panel" // translucent rounded panel
)

type Template struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Colors      Colors      `json:"colors"`
	FontFamily  string      `json:"font_family"`
	Frame       Frame       `json:"frame"`
	Heading     Heading     `json:"heading"`
	Totals      TotalsFrame `json:"totals"`
}

// registry is immutable reference data. Order matters: the first row is the fallback.
var registry = []Template{
	{
		ID:          "modern",
		Name:        "Modern",
		Description: "Clean and professional with a colored accent bar",
		Colors:      Colors{Primary: "#3b82f6", Accent: "#2563eb", Background: "#ffffff"},
		FontFamily:  "'Inter', sans-serif",
		Frame:       FrameAccentBar,
		Heading:     HeadingBold,
		Totals:      TotalsPlain,
	},
	{
		ID:          "classic",
		Name:        "Classic",
		Description: "Traditional business style with elegant borders",
		Colors:      Colors{Primary: "#1e293b", Accent: "#475569", Background: "#f8fafc"},
		FontFamily:  "'Georgia', serif",
		Frame:       FrameBordered,
		Heading:     HeadingSerif,
		Totals:      TotalsRuled,
	},
	{
		ID:          "minimal",
		Name:        "Minimal",
		Description: "Simple and elegant with clean typography",
		Colors:      Colors{Primary: "#18181b", Accent: "#71717a", Background: "#fafafa"},
		FontFamily:  "'Inter', sans-serif",
		Frame:       FrameFlat,
		Heading:     HeadingCompact,
		Totals:      TotalsBoxed,
	},
	{
		ID:          "creative",
		Name:        "Creative",
		Description: "Colorful and modern with gradient accents",
		Colors:      Colors{Primary: "#8b5cf6", Accent: "#7c3aed", Background: "#f5f3ff"},
		FontFamily:  "'Poppins', sans-serif",
		Frame:       FrameGradient,
		Heading:     HeadingGradient,
		Totals:      TotalsPanel,
	},
}

// DefaultID is the id of the first registry row
var DefaultID = registry[0].ID

// All returns a copy of the registry rows in catalog order
func All() []Template {
	return append([]Template(nil), registry...)
}

// IDs returns the registered ids in catalog order
func IDs() []string {
	ids := make([]string, len(registry))
	for i, t := range registry {
		ids[i] = t.ID
	}
	return ids
}

// Lookup finds a template by id.
// Unknown ids resolve to the first registry row. found reports whether id was registered.
func Lookup(id string) (t Template, found bool) {
	for _, t := range registry {
		if t.ID == id {
			return t, true
		}
	}
	return registry[0], false
}

// Get is Lookup without the found flag
func Get(id string) Template {
	t, _ := Lookup(id)
	return t
}

func Has(id string) bool {
	_, found := Lookup(id)
	return found
}
