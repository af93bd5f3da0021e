package layout

import (
	"strings"

	"github.com/zeptools/invoicer/invoice"
)

const (
	Title         = "INVOICE"
	FooterMessage = "Thank you for your business!"

	PlaceholderCompany     = "Your Company Name"
	PlaceholderClient      = "Client Name"
	PlaceholderNumber      = "N/A"
	PlaceholderDescription = "Item description"

	untitledFileName = "invoice-untitled.pdf"
)

var Columns = [4]string{"Description", "Qty", "Rate", "Amount"}

// Content is what an invoice shows, formatted and in reading order.
// It knows nothing about how a renderer draws it.
type Content struct {
	FileName string

	Logo   *LogoBlock // nil: no logo
	Title  string
	Issuer []string // company name first, one entry per printed line

	BillTo []string   // client name first, one entry per printed line
	Meta   []LabelRow // invoice #, date, due date

	Columns [4]string
	Items   []ItemRow

	Totals []TotalRow // tax row only when the rate is positive

	Notes []string // nil: no notes section

	FooterCompany string
	FooterMessage string
}

type LogoBlock struct {
	DataURI  string
	Position invoice.LogoPosition
}

type LabelRow struct {
	Label string
	Value string
}

type ItemRow struct {
	Description string
	Quantity    string
	Rate        string
	Amount      string
}

type TotalRow struct {
	Label string
	Value string
	Grand bool
}

// FileName derives the artifact name from the invoice number
func FileName(invoiceNumber string) string {
	n := strings.TrimSpace(invoiceNumber)
	if n == "" {
		return untitledFileName
	}
	return "invoice-" + n + ".pdf"
}

// Build lays out the record. It reads but never mutates rec.
// Totals are recomputed from the items so a stale record cannot print wrong sums.
func Build(rec *invoice.Record, symbol string) *Content {
	c := &Content{
		FileName:      FileName(rec.InvoiceNumber),
		Title:         Title,
		Columns:       Columns,
		FooterCompany: orDefault(rec.CompanyName, PlaceholderCompany),
		FooterMessage: FooterMessage,
	}

	if rec.HasLogo() {
		c.Logo = &LogoBlock{DataURI: rec.LogoData(), Position: rec.LogoPosition}
	}

	c.Issuer = append([]string{orDefault(rec.CompanyName, PlaceholderCompany)}, Lines(rec.CompanyAddress)...)
	c.Issuer = append(c.Issuer, Lines(rec.CompanyEmail)...)
	c.Issuer = append(c.Issuer, Lines(rec.CompanyPhone)...)
	c.BillTo = append([]string{orDefault(rec.ClientName, PlaceholderClient)}, Lines(rec.ClientAddress)...)
	c.BillTo = append(c.BillTo, Lines(rec.ClientEmail)...)
	c.Meta = []LabelRow{
		{Label: "Invoice #", Value: orDefault(rec.InvoiceNumber, PlaceholderNumber)},
		{Label: "Date", Value: invoice.FormatDate(rec.Date)},
		{Label: "Due Date", Value: invoice.FormatDate(rec.DueDate)},
	}

	c.Items = make([]ItemRow, 0, len(rec.LineItems))
	for _, item := range rec.LineItems {
		c.Items = append(c.Items, ItemRow{
			Description: orDefault(item.Description, PlaceholderDescription),
			Quantity:    invoice.FormatQuantity(item.Quantity),
			Rate:        invoice.FormatMoney(symbol, item.Rate),
			Amount:      invoice.FormatMoney(symbol, item.Amount),
		})
	}

	t := invoice.ComputeTotals(rec.LineItems, rec.TaxRate)
	c.Totals = append(c.Totals, TotalRow{Label: "Subtotal", Value: invoice.FormatMoney(symbol, t.Subtotal)})
	if rec.TaxRate > 0 {
		c.Totals = append(c.Totals, TaxRow(rec.TaxRate, symbol, t.TaxAmount))
	}
	c.Totals = append(c.Totals, TotalRow{Label: "Total", Value: invoice.FormatMoney(symbol, t.Total), Grand: true})

	if strings.TrimSpace(rec.Notes) != "" {
		c.Notes = strings.Split(normalizeNewlines(rec.Notes), "\n")
	}
	return c
}

func TaxRow(rate float64, symbol string, amount float64) TotalRow {
	return TotalRow{
		Label: "Tax (" + invoice.FormatPercent(rate) + "%)",
		Value: invoice.FormatMoney(symbol, amount),
	}
}

// Lines splits a multi-line field into its non-blank lines
func Lines(v string) []string {
	var out []string
	for _, line := range strings.Split(normalizeNewlines(v), "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\r", "\n")
}

func orDefault(v string, placeholder string) string {
	if strings.TrimSpace(v) == "" {
		return placeholder
	}
	return v
}
