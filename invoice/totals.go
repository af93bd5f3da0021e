package invoice

// Totals are the derived money fields of a record.
// Values are unrounded; rounding happens only when formatting for display.
type Totals struct {
	Subtotal  float64 `json:"subtotal"`
	TaxAmount float64 `json:"taxAmount"`
	Total     float64 `json:"total"`
}

// ComputeTotals derives subtotal, tax and total from the stored item amounts.
// Item order does not matter.
func ComputeTotals(items []LineItem, taxRate float64) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Amount
	}
	taxAmount := subtotal * taxRate / 100
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     subtotal + taxAmount,
	}
}

func (r *Record) Totals() Totals {
	return Totals{Subtotal: r.Subtotal, TaxAmount: r.TaxAmount, Total: r.Total}
}
