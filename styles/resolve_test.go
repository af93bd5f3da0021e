package styles

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zeptools/invoicer/invoice"
	"github.com/zeptools/invoicer/templates"
)

func TestEveryVariantHasTokens(t *testing.T) {
	for _, tpl := range templates.All() {
		assert.Contains(t, frameTokens, tpl.Frame, tpl.ID)
		assert.Contains(t, headingTokens, tpl.Heading, tpl.ID)
		assert.Contains(t, totalsTokens, tpl.Totals, tpl.ID)
		assert.Contains(t, framePDF, tpl.Frame, tpl.ID)
		assert.Contains(t, headingPDF, tpl.Heading, tpl.ID)
		assert.Contains(t, totalsPDF, tpl.Totals, tpl.ID)
	}
}

func TestResolveShapeIsUniform(t *testing.T) {
	for _, id := range templates.IDs() {
		d := Resolve(id, nil)
		assert.Equal(t, id, d.TemplateID)

		v := reflect.ValueOf(d.Tokens)
		for i := 0; i < v.NumField(); i++ {
			assert.NotEmpty(t, v.Field(i).String(), "%s: token %s", id, v.Type().Field(i).Name)
		}
		assert.NotEmpty(t, d.PDF.FontFamily, id)
		assert.Positive(t, d.PDF.TitleSize, id)
		assert.Positive(t, d.PDF.TotalRuleWide, id)
		assert.Positive(t, d.PDF.HeaderTint, id)
		assert.Equal(t, "#1f2937", d.PDF.Colors.Text, id)
	}
}

func TestResolveDefaultsAndVariants(t *testing.T) {
	classic := Resolve("classic", nil)
	assert.Equal(t, "#1e293b", classic.Colors.Primary)
	assert.Equal(t, templates.FrameBordered, classic.Variants.Frame)
	assert.Equal(t, "Times", classic.PDF.FontFamily)
	assert.True(t, classic.PDF.FrameBox)
	assert.Contains(t, classic.Tokens.Title, "serif")

	modern := Resolve("modern", nil)
	assert.Contains(t, modern.Tokens.Container, "border-left:4px solid #3b82f6")
	assert.NotEqual(t, modern.Tokens, classic.Tokens)
}

func TestResolveUnknownFallsBack(t *testing.T) {
	got := Resolve("neon", nil)
	assert.Equal(t, Resolve(templates.DefaultID, nil), got)
	assert.Equal(t, Resolve(templates.DefaultID, nil), Resolve("", nil))
}

func TestResolveOverride(t *testing.T) {
	d := Resolve("minimal", &invoice.TemplateColors{Primary: "#ff0000", Accent: "bad", Background: ""})
	assert.Equal(t, "#ff0000", d.Colors.Primary)
	assert.Equal(t, "#71717a", d.Colors.Accent)
	assert.Equal(t, "#fafafa", d.Colors.Background)
	assert.Equal(t, "#ff0000", d.PDF.Colors.Primary)
	assert.Contains(t, d.Tokens.GrandTotal, "#ff0000")
}

func TestForRecord(t *testing.T) {
	r := &invoice.Record{Template: "creative", TemplateColors: invoice.TemplateColors{Primary: "#123456", Accent: "#abcdef", Background: "#fff"}}
	d := ForRecord(r)
	assert.Equal(t, "creative", d.TemplateID)
	assert.Equal(t, r.TemplateColors, d.Colors)
	assert.True(t, d.PDF.TotalsBox)
}

func TestResolveIsPure(t *testing.T) {
	assert.Equal(t, Resolve("creative", nil), Resolve("creative", nil))
}
