package invoice

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/zeptools/invoicer/orm"
	"github.com/zeptools/invoicer/templates"
)

var (
	ErrItemNotFound = errors.New("invoice: line item not found")
	ErrInvalidColor = errors.New("invoice: invalid hex color")
	ErrInvalidField = errors.New("invoice: invalid field")
)

// ItemField names the editable fields of a line item. Amount is not one of them.
type ItemField string

const (
	FieldDescription ItemField = "description"
	FieldQuantity    ItemField = "quantity"
	FieldRate        ItemField = "rate"
)

// ParseNumber coerces raw editor input into a model number.
// Non-numeric, negative, NaN and infinite input all become 0.
func ParseNumber(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return Coerce(v)
}

// Coerce clamps v into the model's numeric domain
func Coerce(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Recalculate refreshes every derived field: item amounts, then totals
func (r *Record) Recalculate() {
	for i := range r.LineItems {
		r.LineItems[i].Amount = LineAmount(r.LineItems[i].Quantity, r.LineItems[i].Rate)
	}
	r.applyTotals()
}

func (r *Record) applyTotals() {
	t := ComputeTotals(r.LineItems, r.TaxRate)
	r.Subtotal, r.TaxAmount, r.Total = t.Subtotal, t.TaxAmount, t.Total
}

// AddItem appends a blank item (quantity 1, rate 0) and returns it
func (r *Record) AddItem() LineItem {
	item := LineItem{ID: NewLineItemID(), Quantity: 1}
	for r.LineItems.Has(item.ID) {
		item.ID = NewLineItemID()
	}
	r.LineItems, _ = r.LineItems.Append(item)
	r.applyTotals()
	return item
}

// UpdateItem sets one field from raw editor input.
// Quantity and rate are coerced and the item amount recomputed.
func (r *Record) UpdateItem(id string, field ItemField, raw string) error {
	item, ok := r.LineItems.Find(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	switch field {
	case FieldDescription:
		item.Description = raw
	case FieldQuantity:
		item.Quantity = ParseNumber(raw)
	case FieldRate:
		item.Rate = ParseNumber(raw)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidField, field)
	}
	item.Amount = LineAmount(item.Quantity, item.Rate)
	items, err := r.LineItems.Replace(item)
	if err != nil {
		return err
	}
	r.LineItems = items
	r.applyTotals()
	return nil
}

func (r *Record) RemoveItem(id string) error {
	items, err := r.LineItems.Remove(id)
	if errors.Is(err, orm.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	if err != nil {
		return err
	}
	r.LineItems = items
	r.applyTotals()
	return nil
}

// MoveItem reorders for display. Totals are recomputed and stay equal.
func (r *Record) MoveItem(from int, to int) error {
	items, err := r.LineItems.Move(from, to)
	if err != nil {
		return err
	}
	r.LineItems = items
	r.applyTotals()
	return nil
}

func (r *Record) SetTaxRate(raw string) {
	r.TaxRate = ParseNumber(raw)
	r.applyTotals()
}

// SetTemplate switches template and resets the colors to its defaults.
// Unknown ids resolve to the first registry row.
func (r *Record) SetTemplate(id string) {
	tpl := templates.Get(id)
	r.Template = tpl.ID
	r.TemplateColors = tpl.Colors
}

// SetColor validates value before committing it to one slot of the triple
func (r *Record) SetColor(slot string, value string) error {
	if !IsHexColor(value) {
		return fmt.Errorf("%w: %q", ErrInvalidColor, value)
	}
	switch slot {
	case "primary":
		r.TemplateColors.Primary = value
	case "accent":
		r.TemplateColors.Accent = value
	case "background":
		r.TemplateColors.Background = value
	default:
		return fmt.Errorf("%w: color slot %q", ErrInvalidField, slot)
	}
	return nil
}

// SetColors commits a whole triple or nothing
func (r *Record) SetColors(colors TemplateColors) error {
	for _, v := range []string{colors.Primary, colors.Accent, colors.Background} {
		if !IsHexColor(v) {
			return fmt.Errorf("%w: %q", ErrInvalidColor, v)
		}
	}
	r.TemplateColors = colors
	return nil
}

func (r *Record) SetCurrency(code string) error {
	if _, ok := LookupCurrency(code); !ok {
		return fmt.Errorf("%w: currency %q", ErrInvalidField, code)
	}
	r.Currency = code
	return nil
}

// SetLogo attaches an embeddable image reference and shows it
func (r *Record) SetLogo(dataURI string) {
	r.Logo = &dataURI
	r.ShowLogo = dataURI != ""
}

func (r *Record) ClearLogo() {
	r.Logo = nil
	r.ShowLogo = false
}

func (r *Record) SetLogoPosition(pos LogoPosition) error {
	if !pos.Valid() {
		return fmt.Errorf("%w: logo position %q", ErrInvalidField, pos)
	}
	r.LogoPosition = pos
	return nil
}

// SetText sets one of the free-text fields by its saved-file name
func (r *Record) SetText(field string, value string) error {
	switch field {
	case "invoiceNumber":
		r.InvoiceNumber = value
	case "date":
		r.Date = value
	case "dueDate":
		r.DueDate = value
	case "companyName":
		r.CompanyName = value
	case "companyAddress":
		r.CompanyAddress = value
	case "companyEmail":
		r.CompanyEmail = value
	case "companyPhone":
		r.CompanyPhone = value
	case "clientName":
		r.ClientName = value
	case "clientAddress":
		r.ClientAddress = value
	case "clientEmail":
		r.ClientEmail = value
	case "notes":
		r.Notes = value
	default:
		return fmt.Errorf("%w: %q", ErrInvalidField, field)
	}
	return nil
}
