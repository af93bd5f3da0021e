package styles

import (
	"github.com/zeptools/invoicer/invoice"
	"github.com/zeptools/invoicer/templates"
)

// Variant → token tables. Each registered tag must have a row in every table;
// TestEveryVariantHasTokens guards that.

type tokenFn func(t *Tokens, c invoice.TemplateColors)

type pdfFn func(p *PDF)

var frameTokens = map[templates.Frame]tokenFn{
	templates.FrameAccentBar: func(t *Tokens, c invoice.TemplateColors) {
		t.Container = "background:" + c.Background + ";border-left:4px solid " + c.Primary + ";border-radius:2px;box-shadow:0 4px 6px rgba(0,0,0,.1)"
		t.Header = "margin-bottom:32px"
		t.TableRow = "border-bottom:1px solid #e5e7eb"
		t.Notes = "margin-top:32px"
	},
	templates.FrameBordered: func(t *Tokens, c invoice.TemplateColors) {
		t.Container = "background:" + c.Background + ";border:1px solid #cbd5e1;border-radius:0;box-shadow:0 4px 6px rgba(0,0,0,.1)"
		t.Header = "margin-bottom:32px;border-bottom:2px solid " + c.Primary + ";padding-bottom:16px"
		t.TableRow = "border-bottom:1px solid #e2e8f0"
		t.Notes = "margin-top:32px;border-top:2px solid " + c.Primary + ";padding-top:16px"
	},
	templates.FrameFlat: func(t *Tokens, c invoice.TemplateColors) {
		t.Container = "background:" + c.Background + ";border-radius:2px;box-shadow:0 1px 2px rgba(0,0,0,.05)"
		t.Header = "margin-bottom:32px"
		t.TableRow = "border-bottom:1px solid #f4f4f5"
		t.Notes = "margin-top:32px;padding-top:16px;border-top:1px solid #e4e4e7"
	},
	templates.FrameGradient: func(t *Tokens, c invoice.TemplateColors) {
		t.Container = "background:linear-gradient(to bottom right," + c.Background + ",#fdf4ff);border-radius:8px;box-shadow:0 10px 15px rgba(0,0,0,.1)"
		t.Header = "margin-bottom:32px"
		t.TableRow = "border-bottom:1px solid #ede9fe"
		t.Notes = "margin-top:32px;padding:16px;background:rgba(255,255,255,.5);border-radius:8px"
	},
}

var headingTokens = map[templates.Heading]tokenFn{
	templates.HeadingBold: func(t *Tokens, c invoice.TemplateColors) {
		t.Title = "font-size:36px;font-weight:700;margin-bottom:8px"
		t.CompanyName = "font-size:24px;font-weight:700"
		t.SectionTitle = "font-size:18px;font-weight:600;margin-bottom:8px"
		t.TableHeader = "border-bottom:2px solid " + c.Primary + ";text-align:left;padding:12px 0;font-weight:600"
	},
	templates.HeadingSerif: func(t *Tokens, c invoice.TemplateColors) {
		t.Title = "font-size:30px;font-family:Georgia,serif;font-weight:700;margin-bottom:8px"
		t.CompanyName = "font-size:24px;font-family:Georgia,serif;font-weight:700"
		t.SectionTitle = "font-size:18px;font-family:Georgia,serif;font-weight:600;margin-bottom:8px;border-bottom:1px solid #cbd5e1;padding-bottom:4px"
		t.TableHeader = "border-bottom:2px solid " + c.Primary + ";text-align:left;padding:12px 0;font-weight:600"
	},
	templates.HeadingCompact: func(t *Tokens, c invoice.TemplateColors) {
		t.Title = "font-size:30px;font-weight:700;margin-bottom:16px"
		t.CompanyName = "font-size:20px;font-weight:700"
		t.SectionTitle = "font-size:16px;font-weight:500;margin-bottom:8px"
		t.TableHeader = "border-bottom:1px solid " + c.Primary + ";text-align:left;padding:12px 0;font-weight:500"
	},
	templates.HeadingGradient: func(t *Tokens, c invoice.TemplateColors) {
		t.Title = "font-size:36px;font-weight:700;margin-bottom:8px;background:linear-gradient(to right," + c.Accent + ",#a21caf);-webkit-background-clip:text;background-clip:text;-webkit-text-fill-color:transparent"
		t.CompanyName = "font-size:24px;font-weight:700;background:linear-gradient(to right," + c.Primary + ",#c026d3);-webkit-background-clip:text;background-clip:text;-webkit-text-fill-color:transparent"
		t.SectionTitle = "font-size:18px;font-weight:600;margin-bottom:8px;color:" + c.Accent
		t.TableHeader = "border-bottom:2px solid #ddd6fe;text-align:left;padding:12px 0;font-weight:600;color:#5b21b6"
	},
}

var totalsTokens = map[templates.TotalsFrame]tokenFn{
	templates.TotalsPlain: func(t *Tokens, c invoice.TemplateColors) {
		t.TotalSection = "width:256px"
		t.TotalRow = "display:flex;justify-content:space-between;padding:8px 0"
		t.GrandTotal = "display:flex;justify-content:space-between;padding:8px 0;border-top:2px solid " + c.Primary + ";font-weight:700;font-size:18px"
	},
	templates.TotalsRuled: func(t *Tokens, c invoice.TemplateColors) {
		t.TotalSection = "width:256px;border-top:2px solid " + c.Primary + ";margin-top:16px;padding-top:8px"
		t.TotalRow = "display:flex;justify-content:space-between;padding:8px 0"
		t.GrandTotal = "display:flex;justify-content:space-between;padding:8px 0;border-top:2px solid " + c.Primary + ";font-weight:700;font-size:18px"
	},
	templates.TotalsBoxed: func(t *Tokens, c invoice.TemplateColors) {
		t.TotalSection = "width:256px"
		t.TotalRow = "display:flex;justify-content:space-between;padding:8px 0"
		t.GrandTotal = "display:flex;justify-content:space-between;padding:8px 0;border-top:1px solid " + c.Primary + ";font-weight:700;font-size:16px"
	},
	templates.TotalsPanel: func(t *Tokens, c invoice.TemplateColors) {
		t.TotalSection = "width:256px;background:rgba(255,255,255,.5);padding:16px;border-radius:8px"
		t.TotalRow = "display:flex;justify-content:space-between;padding:8px 0"
		t.GrandTotal = "display:flex;justify-content:space-between;padding:8px 0;border-top:2px solid #c4b5fd;font-weight:700;font-size:18px;color:#5b21b6"
	},
}

var framePDF = map[templates.Frame]pdfFn{
	templates.FrameAccentBar: func(p *PDF) { p.FrameRule = 6 },
	templates.FrameBordered:  func(p *PDF) { p.FrameBox = true },
	templates.FrameFlat:      func(p *PDF) {},
	templates.FrameGradient:  func(p *PDF) { p.HeaderTint = 0.15 },
}

var headingPDF = map[templates.Heading]pdfFn{
	templates.HeadingBold:    func(p *PDF) { p.TitleSize, p.TitleStyle = 24, "B" },
	templates.HeadingSerif:   func(p *PDF) { p.FontFamily, p.TitleSize, p.TitleStyle = "Times", 22, "B" },
	templates.HeadingCompact: func(p *PDF) { p.TitleSize, p.TitleStyle = 20, "B" },
	templates.HeadingGradient: func(p *PDF) {
		p.TitleSize, p.TitleStyle = 26, "BI"
		p.HeaderTint = 0.15
	},
}

var totalsPDF = map[templates.TotalsFrame]pdfFn{
	templates.TotalsPlain: func(p *PDF) { p.TotalRuleWide = 1 },
	templates.TotalsRuled: func(p *PDF) { p.TotalRuleWide = 1.5 },
	templates.TotalsBoxed: func(p *PDF) { p.TotalRuleWide = 0.5 },
	templates.TotalsPanel: func(p *PDF) {
		p.TotalRuleWide = 1
		p.TotalsBox = true
	},
}
