package styles

import (
	"github.com/zeptools/invoicer/invoice"
	"github.com/zeptools/invoicer/templates"
)

// Palette is the document renderer's color set.
// Primary and Accent follow the record's colors; the rest are shared neutrals.
type Palette struct {
	Text       string `json:"text"`
	Background string `json:"background"`
	Primary    string `json:"primary"`
	Accent     string `json:"accent"`
	Border     string `json:"border"`
	Muted      string `json:"muted"`
}

var neutralPalette = Palette{
	Text:       "#1f2937",
	Background: "#ffffff",
	Primary:    "#3b82f6",
	Accent:     "#2563eb",
	Border:     "#e5e7eb",
	Muted:      "#6b7280",
}

// NeutralPalette returns the defaults shared by every template
func NeutralPalette() Palette {
	return neutralPalette
}

// Tokens are CSS declaration lists for the preview, one per layout slot
type Tokens struct {
	Container    string `json:"container"`
	Header       string `json:"header"`
	Title        string `json:"title"`
	CompanyName  string `json:"company_name"`
	SectionTitle string `json:"section_title"`
	Table        string `json:"table"`
	TableHeader  string `json:"table_header"`
	TableRow     string `json:"table_row"`
	TableCell    string `json:"table_cell"`
	TotalSection string `json:"total_section"`
	TotalRow     string `json:"total_row"`
	GrandTotal   string `json:"grand_total"`
	Notes        string `json:"notes"`
}

// PDF holds what the document renderer needs beyond the palette
type PDF struct {
	FontFamily string  `json:"font_family"` // core PDF font name
	Colors     Palette `json:"colors"`

	// sizes in pt
	TitleSize     float64 `json:"title_size"`
	TitleStyle    string  `json:"title_style"`     // "B", "BI", ...
	HeaderTint    float64 `json:"header_tint"`     // alpha of the primary fill behind the item header row
	FrameRule     float64 `json:"frame_rule"`      // left bar width, 0 = none
	FrameBox      bool    `json:"frame_box"`       // thin border around the page body
	TotalRuleWide float64 `json:"total_rule_wide"` // grand total top rule width
	TotalsBox     bool    `json:"totals_box"`      // frame the totals block
}

// Variants echoes the template's style-variant tags
type Variants struct {
	Frame   templates.Frame       `json:"frame"`
	Heading templates.Heading     `json:"heading"`
	Totals  templates.TotalsFrame `json:"totals"`
}

// Descriptor is the resolved, immutable style bundle.
// Every template yields the same shape; only values and variant tags differ.
type Descriptor struct {
	TemplateID string                `json:"template_id"`
	FontFamily string                `json:"font_family"`
	Colors     invoice.TemplateColors `json:"colors"`
	Variants   Variants              `json:"variants"`
	Tokens     Tokens                `json:"tokens"`
	PDF        PDF                   `json:"pdf"`
}

// Resolve maps a template id and optional color override to a Descriptor.
// It is total: unknown ids fall back to the first template, and an override
// slot that is empty or not a valid hex color falls back to the template default.
func Resolve(templateID string, override *invoice.TemplateColors) Descriptor {
	tpl := templates.Get(templateID)
	colors := mergeColors(tpl.Colors, override)

	tokens := Tokens{
		Table:     "width:100%;border-collapse:collapse",
		TableCell: "padding:12px 0",
	}
	frameTokens[tpl.Frame](&tokens, colors)
	headingTokens[tpl.Heading](&tokens, colors)
	totalsTokens[tpl.Totals](&tokens, colors)

	palette := neutralPalette
	palette.Primary = colors.Primary
	palette.Accent = colors.Accent

	pdf := PDF{FontFamily: "Helvetica", Colors: palette, HeaderTint: 0.06}
	framePDF[tpl.Frame](&pdf)
	headingPDF[tpl.Heading](&pdf)
	totalsPDF[tpl.Totals](&pdf)

	return Descriptor{
		TemplateID: tpl.ID,
		FontFamily: tpl.FontFamily,
		Colors:     colors,
		Variants:   Variants{Frame: tpl.Frame, Heading: tpl.Heading, Totals: tpl.Totals},
		Tokens:     tokens,
		PDF:        pdf,
	}
}

// ForRecord resolves with the record's own template and colors
func ForRecord(r *invoice.Record) Descriptor {
	colors := r.TemplateColors
	return Resolve(r.Template, &colors)
}

func mergeColors(defaults invoice.TemplateColors, override *invoice.TemplateColors) invoice.TemplateColors {
	if override == nil {
		return defaults
	}
	out := defaults
	if invoice.IsHexColor(override.Primary) {
		out.Primary = override.Primary
	}
	if invoice.IsHexColor(override.Accent) {
		out.Accent = override.Accent
	}
	if invoice.IsHexColor(override.Background) {
		out.Background = override.Background
	}
	return out
}
